package realtime

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

var errSendFailed = errors.New("send failed")

// fakeConn records frames and close calls.
type fakeConn struct {
	mu      sync.Mutex
	frames  [][]byte
	sendErr error
	closed  int
	code    int
	reason  string
}

func (c *fakeConn) Send(frame any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	raw, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	c.frames = append(c.frames, raw)
	return nil
}

func (c *fakeConn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	c.code = code
	c.reason = reason
	return nil
}

func (c *fakeConn) sent() []map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]string, 0, len(c.frames))
	for _, raw := range c.frames {
		var m map[string]string
		_ = json.Unmarshal(raw, &m)
		out = append(out, m)
	}
	return out
}

func (c *fakeConn) closeInfo() (int, int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.code, c.reason
}

// recordingQueue is an Enqueuer that remembers every job.
type recordingQueue struct {
	mu     sync.Mutex
	jobs   []model.PostMessageParams
	reject bool
}

func (q *recordingQueue) Enqueue(params model.PostMessageParams) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, params)
	return !q.reject
}

func (q *recordingQueue) all() []model.PostMessageParams {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.PostMessageParams(nil), q.jobs...)
}
