package handler

import (
	"time"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	PublicKey string `json:"publicKey"`
	Username  string `json:"username"`
}

type signupResponse struct {
	Success  bool   `json:"success"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
	UserID   string `json:"userID"`
	Message  string `json:"message"`
}

type signinRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
	PublicKey       string `json:"publicKey"`
}

type signinResponse struct {
	Success   bool   `json:"success"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"`
	Token     string `json:"token"`
}

type userProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type searchResponse struct {
	Users []userSummary `json:"users"`
}

type publicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

type openConversationRequest struct {
	User1ID string `json:"user1Id"`
	User2ID string `json:"user2Id"`
}

type conversationDTO struct {
	ID        string    `json:"id"`
	User1ID   string    `json:"user1Id"`
	User2ID   string    `json:"user2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

type openConversationResponse struct {
	Message        string          `json:"message"`
	Conversation   conversationDTO `json:"conversation"`
	User1PublicKey string          `json:"user1PublicKey,omitempty"`
	User2PublicKey string          `json:"user2PublicKey,omitempty"`
}

type postMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	ConvID     string `json:"convId"`
	CipherText string `json:"cipherText"`
}

type messageDTO struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"senderId"`
	RecipientID    string    `json:"recipientId"`
	ConversationID string    `json:"conversationId"`
	Ciphertext     string    `json:"ciphertext"`
	Timestamp      time.Time `json:"timestamp"`
}

type postMessageResponse struct {
	Message messageDTO `json:"message"`
}

type unseenResponse struct {
	Messages []messageDTO `json:"messages"`
}

type attachmentResponse struct {
	ID string `json:"id"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Online        int    `json:"online"`
	Conversations int    `json:"conversations"`
}

func toConversationDTO(c model.Conversation) conversationDTO {
	return conversationDTO{
		ID:        c.ID.String(),
		User1ID:   c.User1ID.String(),
		User2ID:   c.User2ID.String(),
		CreatedAt: c.CreatedAt,
	}
}

func toMessageDTO(m model.Message) messageDTO {
	return messageDTO{
		ID:             m.ID.String(),
		SenderID:       m.SenderID.String(),
		RecipientID:    m.RecipientID.String(),
		ConversationID: m.ConversationID.String(),
		Ciphertext:     m.Ciphertext,
		Timestamp:      m.Timestamp.UTC(),
	}
}
