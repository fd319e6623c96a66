package synth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func decodePayload(t *testing.T, raw string) Payload {
	t.Helper()
	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestSynthesizeFreshPlan(t *testing.T) {
	t.Parallel()

	// 2025-03-05 is a Wednesday.
	generator := NewGenerator(WithClock(fixedClock(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))))
	raw, err := generator.Synthesize(context.Background(), domain.SynthesisContext{
		SessionID: "sess-1",
		EventName: "Lake Trip",
	})
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}

	payload := decodePayload(t, raw)
	if payload.EventName != "Lake Trip" {
		t.Fatalf("EventName = %q, want Lake Trip", payload.EventName)
	}
	if payload.Date != "2025-03-08" {
		t.Fatalf("Date = %q, want upcoming Saturday 2025-03-08", payload.Date)
	}
	if payload.Location != "Central Park" {
		t.Fatalf("Location = %q, want Central Park", payload.Location)
	}
	if len(payload.Activities) != 3 {
		t.Fatalf("Activities = %v, want three entries", payload.Activities)
	}
	if payload.RevisionReason != "" {
		t.Fatalf("RevisionReason = %q, want empty for a fresh plan", payload.RevisionReason)
	}
}

func TestSynthesizeOnSaturdayKeepsDate(t *testing.T) {
	t.Parallel()

	// 2025-03-08 is a Saturday.
	generator := NewGenerator(WithClock(fixedClock(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC))))
	raw, err := generator.Synthesize(context.Background(), domain.SynthesisContext{EventName: "Lake Trip"})
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if payload := decodePayload(t, raw); payload.Date != "2025-03-08" {
		t.Fatalf("Date = %q, want same-day Saturday 2025-03-08", payload.Date)
	}
}

func TestSynthesizeRevision(t *testing.T) {
	t.Parallel()

	generator := NewGenerator(WithClock(fixedClock(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))))
	prior, err := generator.Synthesize(context.Background(), domain.SynthesisContext{EventName: "Lake Trip"})
	if err != nil {
		t.Fatalf("fresh Synthesize returned error: %v", err)
	}

	cases := []struct {
		name     string
		feedback string
		check    func(t *testing.T, payload Payload)
	}{
		{
			name:     "time keyword adjusts the slot",
			feedback: "the time is too early for us",
			check: func(t *testing.T, payload Payload) {
				if payload.Time != "3:00 PM - 6:00 PM" {
					t.Fatalf("Time = %q, want 3:00 PM - 6:00 PM", payload.Time)
				}
			},
		},
		{
			name:     "location keyword moves the venue",
			feedback: "could we pick another location?",
			check: func(t *testing.T, payload Payload) {
				if payload.Location != "Riverside Park" {
					t.Fatalf("Location = %q, want Riverside Park", payload.Location)
				}
			},
		},
		{
			name:     "activity keyword swaps the activities",
			feedback: "not a fan of that activity list",
			check: func(t *testing.T, payload Payload) {
				want := []string{"Picnic", "Frisbee", "Card Games"}
				if len(payload.Activities) != len(want) {
					t.Fatalf("Activities = %v, want %v", payload.Activities, want)
				}
				for i := range want {
					if payload.Activities[i] != want[i] {
						t.Fatalf("Activities = %v, want %v", payload.Activities, want)
					}
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw, err := generator.Synthesize(context.Background(), domain.SynthesisContext{
				EventName:           "Lake Trip",
				PriorPlanJSON:       prior,
				ParticipantFeedback: []string{tc.feedback},
			})
			if err != nil {
				t.Fatalf("revision Synthesize returned error: %v", err)
			}
			payload := decodePayload(t, raw)
			tc.check(t, payload)
			if payload.RevisionReason == "" {
				t.Fatal("RevisionReason is empty, want revision marker")
			}
		})
	}
}

func TestSynthesizeRevisionUsesOrganizerFeedback(t *testing.T) {
	t.Parallel()

	generator := NewGenerator(WithClock(fixedClock(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))))
	prior, err := generator.Synthesize(context.Background(), domain.SynthesisContext{EventName: "Lake Trip"})
	if err != nil {
		t.Fatalf("fresh Synthesize returned error: %v", err)
	}

	raw, err := generator.Synthesize(context.Background(), domain.SynthesisContext{
		EventName:         "Lake Trip",
		PriorPlanJSON:     prior,
		OrganizerFeedback: "please find a better location",
	})
	if err != nil {
		t.Fatalf("revision Synthesize returned error: %v", err)
	}
	if payload := decodePayload(t, raw); payload.Location != "Riverside Park" {
		t.Fatalf("Location = %q, want Riverside Park", payload.Location)
	}
}

func TestSynthesizeRejectsBadPriorPayload(t *testing.T) {
	t.Parallel()

	generator := NewGenerator()
	_, err := generator.Synthesize(context.Background(), domain.SynthesisContext{
		EventName:     "Lake Trip",
		PriorPlanJSON: "{not json",
	})
	if err == nil {
		t.Fatal("Synthesize accepted a malformed prior payload")
	}
}
