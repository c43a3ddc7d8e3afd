package insight

import "PokerVision/internal/entity"

type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OverlayBox is a bounding box scaled from video coordinates to display
// coordinates.
type OverlayBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Widget is one named intensity gauge.
type Widget struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Read is the derived poker action label with the raw tell score behind it.
type Read struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type ReadRequest struct {
	Emotions []entity.EmotionScore `json:"emotions" validate:"required,min=1"`
	Faces    []entity.TrackedFace  `json:"faces,omitempty"`
	Video    *Viewport             `json:"video,omitempty"`
	Display  *Viewport             `json:"display,omitempty"`
}

type ReadResult struct {
	Top     []entity.EmotionScore `json:"top"`
	Widgets []Widget              `json:"widgets"`
	Read    Read                  `json:"read"`
	Overlay []OverlayBox          `json:"overlay,omitempty"`
}

type ReadResponse struct {
	Data ReadResult `json:"data"`
}
