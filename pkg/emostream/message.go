package emostream

import (
	"PokerVision/internal/entity"
)

// FrameEnvelope is the outbound message, one per captured frame.
type FrameEnvelope struct {
	Data   string     `json:"data"`
	Models ModelsSpec `json:"models"`
}

type ModelsSpec struct {
	Face FaceModel `json:"face"`
}

type FaceModel struct{}

// StreamResult is the inbound message. Either Error is set, or Face carries
// the predictions for the frame that was just sent.
type StreamResult struct {
	Face  *FaceResult `json:"face,omitempty"`
	Error string      `json:"error,omitempty"`
}

type FaceResult struct {
	Predictions []Prediction `json:"predictions"`
	Warning     string       `json:"warning,omitempty"`
}

type Prediction struct {
	BBox     entity.BoundingBox    `json:"bbox"`
	Emotions []entity.EmotionScore `json:"emotions"`
}
