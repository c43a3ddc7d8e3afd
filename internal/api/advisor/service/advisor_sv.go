package advisorService

import (
	"fmt"
	"strings"

	"golang.org/x/net/context"

	"PokerVision/internal/api/advisor"
)

const advisorPrompt = `
You are a poker coach. Answer the player's question in at most three short
sentences of practical, actionable advice. Do not explain poker rules unless
asked. If the question is not about poker, say you only answer poker questions.
`

func (s *advisorService) Ask(ctx context.Context, req advisor.AskRequest) (*advisor.Advice, error) {
	var sb strings.Builder
	sb.WriteString(advisorPrompt)
	sb.WriteString("\n")

	if req.Hand != "" {
		sb.WriteString(fmt.Sprintf("The player holds: %s.\n", req.Hand))
	}
	if req.Position != "" {
		sb.WriteString(fmt.Sprintf("The player is in %s position.\n", req.Position))
	}

	sb.WriteString("Question: ")
	sb.WriteString(req.Question)

	answer, err := s.gemini.Advise(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	return &advisor.Advice{
		Answer: strings.TrimSpace(answer),
	}, nil
}
