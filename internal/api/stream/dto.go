package stream

import (
	"PokerVision/internal/api/insight"
	"PokerVision/internal/entity"
)

const (
	ClientMessageFrame = "frame"

	ServerMessageUpdate = "update"
	ServerMessageStatus = "status"
)

// ClientMessage is what the browser sends over the gateway websocket.
type ClientMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

// UpdateMessage carries the latest faces, primary-face emotions, and the
// derived read after each upstream reply.
type UpdateMessage struct {
	Type      string                `json:"type"`
	SessionID string                `json:"session_id"`
	Faces     []entity.TrackedFace  `json:"faces"`
	Emotions  []entity.EmotionScore `json:"emotions"`
	Top       []entity.EmotionScore `json:"top"`
	Widgets   []insight.Widget      `json:"widgets"`
	Read      insight.Read          `json:"read"`
}

// StatusMessage carries session state transitions and human-readable status
// strings (warnings, reconnect notices, fatal errors).
type StatusMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Message   string `json:"message,omitempty"`
}

type SessionStatusResponse struct {
	Data entity.SessionSnapshot `json:"data"`
}
