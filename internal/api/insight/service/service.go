package insightService

import (
	"os"
	"strconv"

	"PokerVision/internal/api/insight"
	"PokerVision/internal/entity"
)

type IInsightService interface {
	TopEmotions(emotions []entity.EmotionScore, k int) []entity.EmotionScore
	Widgets(emotions []entity.EmotionScore) []insight.Widget
	Overlay(faces []entity.TrackedFace, video, display insight.Viewport) []insight.OverlayBox
	Read(emotions []entity.EmotionScore) insight.Read
	Result(req insight.ReadRequest) insight.ReadResult
}

// ReadConfig holds the tuning knobs of the poker read. The weights and
// threshold are provisional and overridable through the environment; only the
// shape (weighted sum against symmetric thresholds) is fixed.
type ReadConfig struct {
	TopK          int
	TellThreshold float64
	WidgetNames   []string
}

func DefaultReadConfig() ReadConfig {
	cfg := ReadConfig{
		TopK:          3,
		TellThreshold: 0.15,
		WidgetNames:   []string{"Anxiety", "Fear", "Calmness", "Concentration", "Determination", "Surprise"},
	}

	if raw := os.Getenv("READ_TELL_THRESHOLD"); raw != "" {
		if threshold, err := strconv.ParseFloat(raw, 64); err == nil && threshold > 0 {
			cfg.TellThreshold = threshold
		}
	}

	return cfg
}

type insightService struct {
	cfg ReadConfig
}

func NewInsightService(cfg ReadConfig) IInsightService {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.TellThreshold <= 0 {
		cfg.TellThreshold = 0.15
	}

	return &insightService{cfg: cfg}
}
