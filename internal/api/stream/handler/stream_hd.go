package streamHandler

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"PokerVision/internal/api/stream"
	"PokerVision/pkg/framegrab"
)

// socketSink pushes session envelopes back to the browser. Writes come from
// session goroutines, so they are serialized here.
type socketSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socketSink) PushUpdate(msg stream.UpdateMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *socketSink) PushStatus(msg stream.StatusMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (h *StreamHandler) handleStreamSocket(c *websocket.Conn) {
	h.log.Info("Stream client connected")
	defer h.log.Info("Stream client disconnected")

	mailbox := framegrab.NewMailbox()
	sink := &socketSink{conn: c}

	sess, err := h.sessionService.NewSession(mailbox, sink)
	if err != nil {
		h.log.Errorf("Error creating stream session: %v", err)
		_ = c.WriteJSON(map[string]string{"error": "failed to create session"})
		return
	}
	defer sess.Close()

	if err := sess.Connect(); err != nil {
		// Terminal status was already pushed to the client.
		h.log.Errorf("Connect failed for session %s: %v", sess.ID(), err)
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Stream socket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			if dropped := mailbox.Offer(message); dropped {
				h.log.Debugf("Dropped a stale frame for session %s", sess.ID())
			}

		case websocket.TextMessage:
			var msg stream.ClientMessage
			if err := json.Unmarshal(message, &msg); err != nil || msg.Type != stream.ClientMessageFrame {
				h.log.Warnf("Unexpected message on stream socket for session %s", sess.ID())
				continue
			}

			if err := h.utils.ValidateFrame(msg.Data); err != nil {
				h.log.Warnf("Rejected frame for session %s: %v", sess.ID(), err)
				continue
			}

			raw, err := h.utils.DecodeFrame(msg.Data)
			if err != nil {
				continue
			}

			if dropped := mailbox.Offer(raw); dropped {
				h.log.Debugf("Dropped a stale frame for session %s", sess.ID())
			}
		}
	}
}
