package notify

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
	"golang.org/x/text/language"
)

const testPlanJSON = `{
	"event_name": "Lake Trip",
	"date": "2025-03-08",
	"time": "2:00 PM - 5:00 PM",
	"location": "Central Park",
	"activities": ["Picnic", "Board Games"],
	"notes": "Bring a water bottle."
}`

func TestRenderOutreach(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:          domain.MessageOutreach,
		EventName:     "Lake Trip",
		OrganizerName: "Dana",
		Recipient:     domain.Recipient{Name: "Alex", Contact: "alex@example.com"},
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(content.Body, "Dana is planning Lake Trip") {
		t.Fatalf("Body = %q, want organizer and event mention", content.Body)
	}
	if !strings.Contains(content.Body, "1 for text, 2 for email, or 3 for a phone call") {
		t.Fatalf("Body = %q, want channel menu", content.Body)
	}
	if content.Subject != "Help Plan: Lake Trip with Dana" {
		t.Fatalf("Subject = %q", content.Subject)
	}
}

func TestRenderQuestionScript(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:         domain.MessageQuestion,
		QuestionText: "What dates work for you?",
		Recipient:    domain.Recipient{Name: "Alex", Contact: "+15550100"},
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if content.Body != "What dates work for you?" {
		t.Fatalf("Body = %q, want the bare question", content.Body)
	}
	if !strings.HasPrefix(content.Script, "Hello, I have a question") {
		t.Fatalf("Script = %q, want spoken framing", content.Script)
	}
}

func TestRenderPlanProposedIncludesPlanBlock(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:      domain.MessagePlanProposed,
		EventName: "Lake Trip",
		Recipient: domain.Recipient{Name: "Dana", Contact: "dana@example.com"},
		PlanJSON:  testPlanJSON,
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for _, want := range []string{
		"PLAN FOR: Lake Trip",
		"DATE: 2025-03-08",
		"ACTIVITIES: Picnic, Board Games",
		"ADDITIONAL NOTES:\nBring a water bottle.",
		"reply with APPROVE",
	} {
		if !strings.Contains(content.Body, want) {
			t.Fatalf("Body missing %q:\n%s", want, content.Body)
		}
	}
}

func TestRenderPlanApprovedVariants(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:          domain.MessagePlanApproved,
		EventName:     "Lake Trip",
		OrganizerName: "Dana",
		Recipient:     domain.Recipient{Name: "Alex", Contact: "+15550100", Method: domain.CommMethodPhone},
		PlanJSON:      testPlanJSON,
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(content.Body, "Dana has approved the plan for Lake Trip") {
		t.Fatalf("Body = %q", content.Body)
	}
	if !strings.HasPrefix(content.Script, "Hello Alex, I'm calling about the plan for Lake Trip.") {
		t.Fatalf("Script = %q", content.Script)
	}
}

func TestRenderPlanRejected(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:         domain.MessagePlanRejected,
		EventName:    "Lake Trip",
		Recipient:    domain.Recipient{Name: "Dana", Contact: "dana@example.com"},
		FeedbackFrom: "Alex",
		FeedbackText: "The time is too early.",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(content.Body, "Alex has concerns about the plan for Lake Trip") {
		t.Fatalf("Body = %q", content.Body)
	}
	if !strings.Contains(content.Body, "Their feedback: The time is too early.") {
		t.Fatalf("Body = %q", content.Body)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	if _, err := renderer.Render(domain.Message{Kind: "bogus"}); err == nil {
		t.Fatal("Render accepted an unknown message kind")
	}
}

func TestRenderPortuguese(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.MustParse("pt-BR"))
	content, err := renderer.Render(domain.Message{
		Kind:          domain.MessageOutreach,
		EventName:     "Passeio no Lago",
		OrganizerName: "Dana",
		Recipient:     domain.Recipient{Name: "Alex", Contact: "alex@example.com"},
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(content.Body, "está planejando Passeio no Lago") {
		t.Fatalf("Body = %q, want Portuguese template", content.Body)
	}
}

func TestRenderMalformedPlanFallsBackToRaw(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(language.English)
	content, err := renderer.Render(domain.Message{
		Kind:      domain.MessagePlanProposed,
		EventName: "Lake Trip",
		Recipient: domain.Recipient{Name: "Dana", Contact: "dana@example.com"},
		PlanJSON:  "{not json",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(content.Body, "{not json") {
		t.Fatalf("Body = %q, want raw payload fallback", content.Body)
	}
}

func TestLogNotifierChannelSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		recipient domain.Recipient
		want      string
	}{
		{
			name:      "explicit email method",
			recipient: domain.Recipient{Name: "Alex", Contact: "alex@example.com", Method: domain.CommMethodEmail},
			want:      "email to alex@example.com",
		},
		{
			name:      "explicit phone method",
			recipient: domain.Recipient{Name: "Alex", Contact: "+15550100", Method: domain.CommMethodPhone},
			want:      "call to +15550100",
		},
		{
			name:      "fallback by contact shape",
			recipient: domain.Recipient{Name: "Alex", Contact: "+15550100"},
			want:      "sms to +15550100",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			notifier := NewLogNotifier(NewRenderer(language.English), log.New(&buf, "", 0))
			notifier.Notify(context.Background(), domain.Message{
				Kind:          domain.MessageOutreach,
				EventName:     "Lake Trip",
				OrganizerName: "Dana",
				Recipient:     tc.recipient,
			})
			if got := buf.String(); !strings.Contains(got, tc.want) {
				t.Fatalf("log output = %q, want substring %q", got, tc.want)
			}
		})
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	t.Parallel()

	short := "olá"
	if got := truncate(short, 80); got != short {
		t.Fatalf("truncate(%q, 80) = %q, want unchanged", short, got)
	}

	// Accented copy long enough to force a cut through multibyte runes.
	long := strings.Repeat("ação ", 30)
	for limit := 1; limit <= 12; limit++ {
		got := truncate(long, limit)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(limit=%d) = %q, not valid UTF-8", limit, got)
		}
		trimmed := strings.TrimSuffix(got, "...")
		if len(trimmed) > limit {
			t.Fatalf("truncate(limit=%d) kept %d bytes", limit, len(trimmed))
		}
		if !strings.HasPrefix(long, trimmed) {
			t.Fatalf("truncate(limit=%d) = %q, not a prefix of the input", limit, got)
		}
	}
}
