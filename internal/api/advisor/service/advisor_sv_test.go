package advisorService_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/context"

	"PokerVision/internal/api/advisor"
	advisorService "PokerVision/internal/api/advisor/service"
)

type fakeGemini struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGemini) Advise(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestAskBuildsPromptWithContext(t *testing.T) {
	gemini := &fakeGemini{answer: "Fold it."}
	svc := advisorService.NewAdvisorService(gemini)

	advice, err := svc.Ask(context.Background(), advisor.AskRequest{
		Question: "Should I call this raise?",
		Hand:     "7-2 offsuit",
		Position: "early",
	})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if advice.Answer != "Fold it." {
		t.Errorf("Unexpected answer: %q", advice.Answer)
	}

	if len(gemini.prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(gemini.prompts))
	}
	prompt := gemini.prompts[0]
	if !strings.Contains(prompt, "7-2 offsuit") {
		t.Errorf("Prompt missing hand context: %s", prompt)
	}
	if !strings.Contains(prompt, "early position") {
		t.Errorf("Prompt missing position context: %s", prompt)
	}
	if !strings.Contains(prompt, "Should I call this raise?") {
		t.Errorf("Prompt missing the question: %s", prompt)
	}
}

func TestAskOmitsEmptyContext(t *testing.T) {
	gemini := &fakeGemini{answer: "Raise."}
	svc := advisorService.NewAdvisorService(gemini)

	if _, err := svc.Ask(context.Background(), advisor.AskRequest{Question: "Open or fold?"}); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	prompt := gemini.prompts[0]
	if strings.Contains(prompt, "The player holds") {
		t.Errorf("Prompt mentions a hand that was not given: %s", prompt)
	}
	if strings.Contains(prompt, "position.") {
		t.Errorf("Prompt mentions a position that was not given: %s", prompt)
	}
}

func TestAskTrimsAnswer(t *testing.T) {
	gemini := &fakeGemini{answer: "  Bet half pot.\n"}
	svc := advisorService.NewAdvisorService(gemini)

	advice, err := svc.Ask(context.Background(), advisor.AskRequest{Question: "Bet sizing?"})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if advice.Answer != "Bet half pot." {
		t.Errorf("Expected trimmed answer, got %q", advice.Answer)
	}
}

func TestAskPropagatesModelError(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("model unavailable")}
	svc := advisorService.NewAdvisorService(gemini)

	if _, err := svc.Ask(context.Background(), advisor.AskRequest{Question: "Call or fold?"}); err == nil {
		t.Error("Expected error from model to propagate")
	}
}
