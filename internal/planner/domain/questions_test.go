package domain

import (
	"context"
	"testing"
)

func TestDefaultCatalogWalksInOrder(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	history := make([]Exchange, 0, len(baseQuestions))
	for i, want := range baseQuestions {
		got, err := catalog.NextQuestion(context.Background(), history)
		if err != nil {
			t.Fatalf("NextQuestion(%d) returned error: %v", i, err)
		}
		if got != want {
			t.Fatalf("NextQuestion(%d) = %q, want %q", i, got, want)
		}
		history = append(history, Exchange{Question: Question{Text: got}})
	}
}

func TestCatalogFallsBackToFollowUp(t *testing.T) {
	t.Parallel()

	catalog := NewQuestionCatalog([]string{"Only question?"})
	history := []Exchange{{Question: Question{Text: "Only question?"}}}
	got, err := catalog.NextQuestion(context.Background(), history)
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if got != followUpQuestion {
		t.Fatalf("NextQuestion = %q, want the follow-up", got)
	}
}
