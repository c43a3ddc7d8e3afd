package entity

import "time"

type SessionState uint8

const (
	SessionStateUnknown      SessionState = 0
	SessionStateConnecting   SessionState = 1
	SessionStateStreaming    SessionState = 2
	SessionStateReconnecting SessionState = 3
	SessionStateFailed       SessionState = 4
)

var SessionStateMap = map[SessionState]string{
	SessionStateConnecting:   "connecting",
	SessionStateStreaming:    "streaming",
	SessionStateReconnecting: "reconnecting",
	SessionStateFailed:       "failed",
}

func (s SessionState) String() string {
	name, ok := SessionStateMap[s]
	if !ok {
		return "unknown"
	}
	return name
}

func (s SessionState) Value() uint8 {
	return uint8(s)
}

type StreamSession struct {
	ID          string       `json:"id"`
	State       SessionState `json:"-"`
	Status      string       `json:"status"`
	Environment string       `json:"environment"`
	Retries     int          `json:"retries"`
	StartedAt   time.Time    `json:"started_at"`
}

// SessionSnapshot is the ephemeral, TTL-bound view of a session kept in the
// registry for the status endpoint. Nothing here survives its TTL.
type SessionSnapshot struct {
	ID          string         `json:"id"`
	State       string         `json:"state"`
	Status      string         `json:"status"`
	Environment string         `json:"environment"`
	TopEmotions []EmotionScore `json:"top_emotions,omitempty"`
	ReadLabel   string         `json:"read_label,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
