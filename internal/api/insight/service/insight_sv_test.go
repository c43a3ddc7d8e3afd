package insightService_test

import (
	"math"
	"testing"

	"PokerVision/internal/api/insight"
	insightService "PokerVision/internal/api/insight/service"
	"PokerVision/internal/entity"
)

func newService() insightService.IInsightService {
	return insightService.NewInsightService(insightService.ReadConfig{
		TopK:          3,
		TellThreshold: 0.15,
		WidgetNames:   []string{"Anxiety", "Calmness"},
	})
}

func TestTopEmotions(t *testing.T) {
	svc := newService()

	emotions := []entity.EmotionScore{
		{Name: "Boredom", Score: 0.10},
		{Name: "Calmness", Score: 0.82},
		{Name: "Anxiety", Score: 0.40},
		{Name: "Joy", Score: 0.55},
	}

	top := svc.TopEmotions(emotions, 3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 emotions, got %d", len(top))
	}
	expected := []string{"Calmness", "Joy", "Anxiety"}
	for i, name := range expected {
		if top[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, top[i].Name)
		}
	}
}

func TestTopEmotionsDoesNotModifyInput(t *testing.T) {
	svc := newService()

	emotions := []entity.EmotionScore{
		{Name: "Boredom", Score: 0.10},
		{Name: "Calmness", Score: 0.82},
		{Name: "Anxiety", Score: 0.40},
	}

	svc.TopEmotions(emotions, 2)

	if emotions[0].Name != "Boredom" || emotions[2].Name != "Anxiety" {
		t.Errorf("Input slice was reordered: %+v", emotions)
	}
}

func TestTopEmotionsShortList(t *testing.T) {
	svc := newService()

	emotions := []entity.EmotionScore{{Name: "Calmness", Score: 0.5}}

	top := svc.TopEmotions(emotions, 3)
	if len(top) != 1 {
		t.Errorf("Expected 1 emotion when k exceeds list length, got %d", len(top))
	}

	if got := svc.TopEmotions(nil, 3); got != nil {
		t.Errorf("Expected nil for empty input, got %+v", got)
	}
}

func TestWidgetsFillMissingWithZero(t *testing.T) {
	svc := newService()

	widgets := svc.Widgets([]entity.EmotionScore{{Name: "Anxiety", Score: 0.61}})
	if len(widgets) != 2 {
		t.Fatalf("Expected 2 widgets, got %d", len(widgets))
	}
	if widgets[0].Name != "Anxiety" || widgets[0].Score != 0.61 {
		t.Errorf("Unexpected anxiety widget: %+v", widgets[0])
	}
	if widgets[1].Name != "Calmness" || widgets[1].Score != 0 {
		t.Errorf("Expected zero-score calmness widget, got %+v", widgets[1])
	}
}

func TestReadLabels(t *testing.T) {
	svc := newService()

	tests := []struct {
		name     string
		emotions []entity.EmotionScore
		label    string
	}{
		{
			name:     "high anxiety reads nervous",
			emotions: []entity.EmotionScore{{Name: "Anxiety", Score: 0.9}, {Name: "Fear", Score: 0.7}},
			label:    "Nerves showing. Keep the bets small.",
		},
		{
			name:     "high calmness reads stone-faced",
			emotions: []entity.EmotionScore{{Name: "Calmness", Score: 0.9}},
			label:    "Stone-faced. Good spot to bet big.",
		},
		{
			name:     "mixed signals read unreadable",
			emotions: []entity.EmotionScore{{Name: "Anxiety", Score: 0.4}, {Name: "Calmness", Score: 0.35}},
			label:    "Unreadable. Play the cards, not the face.",
		},
		{
			name:     "unweighted emotions read unreadable",
			emotions: []entity.EmotionScore{{Name: "Joy", Score: 0.99}},
			label:    "Unreadable. Play the cards, not the face.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := svc.Read(tt.emotions)
			if read.Label != tt.label {
				t.Errorf("Read(%+v) label = %q, expected %q (score %.3f)", tt.emotions, read.Label, tt.label, read.Score)
			}
		})
	}
}

func TestReadScoreWeighting(t *testing.T) {
	svc := newService()

	// Anxiety weight 0.35, Calmness weight -0.40.
	read := svc.Read([]entity.EmotionScore{
		{Name: "Anxiety", Score: 0.5},
		{Name: "Calmness", Score: 0.5},
	})

	expected := 0.35*0.5 - 0.40*0.5
	if math.Abs(read.Score-expected) > 1e-9 {
		t.Errorf("Score = %.4f, expected %.4f", read.Score, expected)
	}
}

func TestOverlayScaling(t *testing.T) {
	svc := newService()

	faces := []entity.TrackedFace{
		{BBox: entity.BoundingBox{X: 64, Y: 48, W: 320, H: 240}},
	}
	video := insight.Viewport{Width: 640, Height: 480}
	display := insight.Viewport{Width: 1280, Height: 720}

	boxes := svc.Overlay(faces, video, display)
	if len(boxes) != 1 {
		t.Fatalf("Expected 1 overlay box, got %d", len(boxes))
	}

	box := boxes[0]
	if box.X != 128 || box.Y != 72 || box.W != 640 || box.H != 360 {
		t.Errorf("Unexpected scaled box: %+v", box)
	}
}

func TestOverlayDegenerateViewport(t *testing.T) {
	svc := newService()

	faces := []entity.TrackedFace{{BBox: entity.BoundingBox{X: 1, Y: 1, W: 1, H: 1}}}

	if got := svc.Overlay(faces, insight.Viewport{}, insight.Viewport{Width: 100, Height: 100}); got != nil {
		t.Errorf("Expected nil for zero-size video viewport, got %+v", got)
	}
	if got := svc.Overlay(nil, insight.Viewport{Width: 10, Height: 10}, insight.Viewport{Width: 10, Height: 10}); got != nil {
		t.Errorf("Expected nil for no faces, got %+v", got)
	}
}

func TestResultSkipsOverlayWithoutViewports(t *testing.T) {
	svc := newService()

	result := svc.Result(insight.ReadRequest{
		Emotions: []entity.EmotionScore{{Name: "Anxiety", Score: 0.9}},
		Faces:    []entity.TrackedFace{{BBox: entity.BoundingBox{X: 1, Y: 1, W: 1, H: 1}}},
	})

	if result.Overlay != nil {
		t.Errorf("Expected no overlay without viewports, got %+v", result.Overlay)
	}
	if len(result.Top) != 1 {
		t.Errorf("Expected 1 top emotion, got %d", len(result.Top))
	}
	if len(result.Widgets) != 2 {
		t.Errorf("Expected 2 widgets, got %d", len(result.Widgets))
	}
}
