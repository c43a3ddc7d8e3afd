package advisorService

import (
	"golang.org/x/net/context"

	"PokerVision/internal/api/advisor"
	"PokerVision/pkg/gemini"
)

type IAdvisorService interface {
	Ask(ctx context.Context, req advisor.AskRequest) (*advisor.Advice, error)
}

type advisorService struct {
	gemini gemini.IGemini
}

func NewAdvisorService(gemini gemini.IGemini) IAdvisorService {
	return &advisorService{
		gemini: gemini,
	}
}
