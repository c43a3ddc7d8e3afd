package insightService

import (
	"sort"

	"PokerVision/internal/api/insight"
	"PokerVision/internal/entity"
)

// readWeights is the hand-picked linear combination behind the poker read.
// Positive weight means the emotion leaks a tell, negative means composure.
// The numbers are untuned; treat them as a starting point.
var readWeights = map[string]float64{
	"Anxiety":       0.35,
	"Fear":          0.30,
	"Distress":      0.20,
	"Surprise":      0.15,
	"Calmness":      -0.40,
	"Concentration": -0.30,
	"Determination": -0.30,
}

const (
	labelNervous    = "Nerves showing. Keep the bets small."
	labelStoneFaced = "Stone-faced. Good spot to bet big."
	labelUnreadable = "Unreadable. Play the cards, not the face."
)

// TopEmotions returns the k highest-intensity emotions, sorted descending.
// The input slice is never modified.
func (s *insightService) TopEmotions(emotions []entity.EmotionScore, k int) []entity.EmotionScore {
	if len(emotions) == 0 || k <= 0 {
		return nil
	}

	sorted := make([]entity.EmotionScore, len(emotions))
	copy(sorted, emotions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if k > len(sorted) {
		k = len(sorted)
	}

	return sorted[:k]
}

// Widgets maps the emotion list onto the fixed set of named gauges. Emotions
// missing from the list render as zero.
func (s *insightService) Widgets(emotions []entity.EmotionScore) []insight.Widget {
	scores := make(map[string]float64, len(emotions))
	for _, emotion := range emotions {
		scores[emotion.Name] = emotion.Score
	}

	widgets := make([]insight.Widget, 0, len(s.cfg.WidgetNames))
	for _, name := range s.cfg.WidgetNames {
		widgets = append(widgets, insight.Widget{
			Name:  name,
			Score: scores[name],
		})
	}

	return widgets
}

// Overlay scales each face box from video coordinates to display coordinates.
func (s *insightService) Overlay(faces []entity.TrackedFace, video, display insight.Viewport) []insight.OverlayBox {
	if len(faces) == 0 || video.Width <= 0 || video.Height <= 0 {
		return nil
	}

	scaleX := display.Width / video.Width
	scaleY := display.Height / video.Height

	boxes := make([]insight.OverlayBox, 0, len(faces))
	for _, face := range faces {
		boxes = append(boxes, insight.OverlayBox{
			X: face.BBox.X * scaleX,
			Y: face.BBox.Y * scaleY,
			W: face.BBox.W * scaleX,
			H: face.BBox.H * scaleY,
		})
	}

	return boxes
}

// Read computes the weighted tell score and compares it against the
// symmetric thresholds.
func (s *insightService) Read(emotions []entity.EmotionScore) insight.Read {
	var score float64
	for _, emotion := range emotions {
		if weight, ok := readWeights[emotion.Name]; ok {
			score += weight * emotion.Score
		}
	}

	label := labelUnreadable
	switch {
	case score > s.cfg.TellThreshold:
		label = labelNervous
	case score < -s.cfg.TellThreshold:
		label = labelStoneFaced
	}

	return insight.Read{
		Score: score,
		Label: label,
	}
}

func (s *insightService) Result(req insight.ReadRequest) insight.ReadResult {
	result := insight.ReadResult{
		Top:     s.TopEmotions(req.Emotions, s.cfg.TopK),
		Widgets: s.Widgets(req.Emotions),
		Read:    s.Read(req.Emotions),
	}

	if len(req.Faces) > 0 && req.Video != nil && req.Display != nil {
		result.Overlay = s.Overlay(req.Faces, *req.Video, *req.Display)
	}

	return result
}
