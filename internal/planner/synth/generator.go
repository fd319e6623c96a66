// Package synth produces plan payloads from collected preferences using a
// deterministic heuristic. It stands in for an external model-backed
// synthesizer behind the same interface.
package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

// Payload is the structured plan document stored and distributed to
// participants.
type Payload struct {
	EventName      string            `json:"event_name"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	Location       string            `json:"location"`
	Activities     []string          `json:"activities"`
	Accommodations map[string]string `json:"accommodations"`
	Notes          string            `json:"notes"`
	Reasoning      string            `json:"reasoning"`
	RevisionReason string            `json:"revision_reason,omitempty"`
}

// Generator synthesizes plans without external calls. A fresh plan lands on
// the upcoming Saturday; revisions adjust the prior payload based on
// feedback keywords.
type Generator struct {
	clock func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the generator's time source.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// NewGenerator builds a heuristic plan generator.
func NewGenerator(opts ...Option) *Generator {
	generator := &Generator{clock: time.Now}
	for _, opt := range opts {
		opt(generator)
	}
	return generator
}

// Synthesize produces a plan payload as JSON. When the input carries a prior
// plan it revises that payload instead of starting over.
func (g *Generator) Synthesize(ctx context.Context, input domain.SynthesisContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g == nil {
		return "", fmt.Errorf("generator is not configured")
	}

	var payload Payload
	if strings.TrimSpace(input.PriorPlanJSON) == "" {
		payload = g.freshPlan(input)
	} else {
		revised, err := revisePlan(input)
		if err != nil {
			return "", err
		}
		payload = revised
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode plan payload: %w", err)
	}
	return string(encoded), nil
}

func (g *Generator) freshPlan(input domain.SynthesisContext) Payload {
	return Payload{
		EventName:  input.EventName,
		Date:       nextSaturday(g.clock()).Format("2006-01-02"),
		Time:       "2:00 PM - 5:00 PM",
		Location:   "Central Park",
		Activities: []string{"Picnic", "Board Games", "Nature Walk"},
		Accommodations: map[string]string{
			"dietary":       "Vegetarian options available",
			"accessibility": "Accessible paths available",
			"children":      "Playground nearby for kids",
		},
		Notes: "In case of rain, we'll meet at Coffee House on Main St instead. " +
			"Everyone should bring a water bottle and comfortable shoes.",
		Reasoning: "This plan accommodates everyone's schedule preferences while " +
			"providing a mix of activities that align with participants' interests. " +
			"The location is centrally located and offers options for both active " +
			"and passive participation.",
	}
}

func revisePlan(input domain.SynthesisContext) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(input.PriorPlanJSON), &payload); err != nil {
		return Payload{}, fmt.Errorf("decode prior plan payload: %w", err)
	}

	feedback := strings.ToLower(strings.Join(append([]string{input.OrganizerFeedback}, input.ParticipantFeedback...), "\n"))
	if strings.Contains(feedback, "time") {
		payload.Time = "3:00 PM - 6:00 PM"
		payload.Notes += "\nTime adjusted based on participant feedback."
	}
	if strings.Contains(feedback, "location") {
		payload.Location = "Riverside Park"
		payload.Notes += "\nLocation changed based on participant feedback."
	}
	if strings.Contains(feedback, "activity") || strings.Contains(feedback, "activities") {
		payload.Activities = []string{"Picnic", "Frisbee", "Card Games"}
		payload.Notes += "\nActivities adjusted based on participant preferences."
	}

	payload.RevisionReason = "Plan revised based on feedback"
	return payload, nil
}

// nextSaturday returns the upcoming Saturday, or the same day when now is
// already a Saturday.
func nextSaturday(now time.Time) time.Time {
	offset := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, offset)
}
