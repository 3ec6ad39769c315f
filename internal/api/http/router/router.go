package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/handler"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/middleware"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Services groups the application services exposed over REST.
type Services struct {
	Users         handler.UserService
	Keys          handler.KeysService
	Conversations handler.ConversationService
	Messages      handler.MessageService
	Attachments   handler.AttachmentService
}

// RateLimit configures the per-client limit on signup and signin.
type RateLimit struct {
	RPS   float64
	Burst int
}

// Router builds the HTTP routing table for REST endpoints and the websocket upgrade.
type Router struct {
	services       Services
	socket         http.Handler
	online         handler.OnlineCounter
	conversations  handler.ConversationCounter
	tokens         middleware.TokenParser
	contextManager model.ContextManager
	rateLimit      RateLimit
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	services Services,
	socket http.Handler,
	online handler.OnlineCounter,
	conversations handler.ConversationCounter,
	tokens middleware.TokenParser,
	contextManager model.ContextManager,
	rateLimit RateLimit,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		socket:         socket,
		online:         online,
		conversations:  conversations,
		tokens:         tokens,
		contextManager: contextManager,
		rateLimit:      rateLimit,
		logger:         logger,
	}
}

// Register wires every route and returns the root handler.
func (r *Router) Register() http.Handler {
	root := mux.NewRouter()
	root.Use(middleware.NewLogging(r.logger).Handle)

	root.Handle("/ws", r.socket)
	root.HandleFunc("/health", handler.NewHealth(r.online, r.conversations).Get).Methods(http.MethodGet)

	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	protected := root.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)

	r.registerUserRoutes(root, protected)
	r.registerKeyRoutes(protected)
	r.registerConversationRoutes(protected)
	r.registerMessageRoutes(protected)
	r.registerAttachmentRoutes(protected)

	return root
}

func (r *Router) registerUserRoutes(public, protected *mux.Router) {
	users := handler.NewUser(r.services.Users, r.logger)
	limiter := middleware.NewRateLimit(r.rateLimit.RPS, r.rateLimit.Burst, r.logger)

	auth := public.PathPrefix("/user").Subrouter()
	auth.Use(limiter.Handle)
	auth.HandleFunc("/signup", users.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/signin", users.Signin).Methods(http.MethodPost)

	public.HandleFunc("/user/user/{username}", users.GetByUsername).Methods(http.MethodGet)
	protected.HandleFunc("/user/search/{key}", users.Search).Methods(http.MethodGet)
}

func (r *Router) registerKeyRoutes(protected *mux.Router) {
	keys := handler.NewKeys(r.services.Keys)
	protected.HandleFunc("/keys/{userId}", keys.Get).Methods(http.MethodGet)
}

func (r *Router) registerConversationRoutes(protected *mux.Router) {
	conversations := handler.NewConversation(r.services.Conversations, r.contextManager, r.logger)
	protected.HandleFunc("/conversations/new", conversations.Open).Methods(http.MethodPost)
}

func (r *Router) registerMessageRoutes(protected *mux.Router) {
	messages := handler.NewMessage(r.services.Messages, r.contextManager, r.logger)
	protected.HandleFunc("/message", messages.Post).Methods(http.MethodPost)
	protected.HandleFunc("/message/unseen", messages.Unseen).Methods(http.MethodGet)
}

func (r *Router) registerAttachmentRoutes(protected *mux.Router) {
	attachments := handler.NewAttachment(r.services.Attachments, r.contextManager, r.logger)
	protected.HandleFunc("/attachments/{id}", attachments.Upload).Methods(http.MethodPut)
	protected.HandleFunc("/attachments/{id}", attachments.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/attachments/{userId}/{id}", attachments.Download).Methods(http.MethodGet)
}
