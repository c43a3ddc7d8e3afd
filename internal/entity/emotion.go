package entity

type EmotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type TrackedFace struct {
	BBox     BoundingBox    `json:"bbox"`
	Emotions []EmotionScore `json:"emotions"`
}
