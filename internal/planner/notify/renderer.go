// Package notify renders and delivers the planner's outbound messages.
// Rendering goes through golang.org/x/text message catalogs so templates
// stay translatable; delivery adapters decide what to do with the result.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Content is one rendered message. Subject is empty for channels without
// one; Script is the spoken variant used for phone delivery.
type Content struct {
	Subject string
	Body    string
	Script  string
}

// Renderer renders outbound messages for a fixed language.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer builds a renderer for the supplied language tag.
func NewRenderer(tag language.Tag) *Renderer {
	return &Renderer{printer: message.NewPrinter(tag)}
}

// Render produces the deliverable content for one message.
func (r *Renderer) Render(msg domain.Message) (Content, error) {
	if r == nil || r.printer == nil {
		return Content{}, fmt.Errorf("renderer is not configured")
	}

	p := r.printer
	recipient := msg.Recipient.Name
	switch msg.Kind {
	case domain.MessageOutreach:
		body := p.Sprintf(outreachBodyKey, recipient, msg.OrganizerName, msg.EventName)
		return Content{
			Subject: p.Sprintf(outreachSubjectKey, msg.EventName, msg.OrganizerName),
			Body:    body,
			Script:  body,
		}, nil
	case domain.MessageQuestion:
		return Content{
			Subject: p.Sprintf(outreachSubjectKey, msg.EventName, msg.OrganizerName),
			Body:    p.Sprintf(questionBodyKey, msg.QuestionText),
			Script:  p.Sprintf(questionScriptKey, msg.QuestionText),
		}, nil
	case domain.MessageContinuationPrompt:
		body := p.Sprintf(continuationBodyKey)
		return Content{
			Subject: p.Sprintf(outreachSubjectKey, msg.EventName, msg.OrganizerName),
			Body:    body,
			Script:  body,
		}, nil
	case domain.MessageCompletionThanks:
		body := p.Sprintf(thanksBodyKey)
		return Content{
			Subject: p.Sprintf(outreachSubjectKey, msg.EventName, msg.OrganizerName),
			Body:    body,
			Script:  body,
		}, nil
	case domain.MessagePlanProposed:
		planText := r.planText(msg.PlanJSON)
		body := p.Sprintf(planProposedBodyKey, recipient, msg.EventName, planText)
		return Content{
			Subject: p.Sprintf(planProposedSubjectKey, msg.EventName),
			Body:    body,
			Script:  body,
		}, nil
	case domain.MessagePlanApproved:
		planText := r.planText(msg.PlanJSON)
		return Content{
			Subject: p.Sprintf(planApprovedSubjectKey, msg.EventName),
			Body:    p.Sprintf(planApprovedBodyKey, recipient, msg.OrganizerName, msg.EventName, planText),
			Script:  p.Sprintf(planApprovedScriptKey, recipient, msg.EventName, planText),
		}, nil
	case domain.MessagePlanRejected:
		body := p.Sprintf(planRejectedBodyKey, recipient, msg.FeedbackFrom, msg.EventName, msg.FeedbackText)
		return Content{
			Subject: p.Sprintf(planRejectedSubjectKey, msg.EventName),
			Body:    body,
			Script:  body,
		}, nil
	default:
		return Content{}, fmt.Errorf("unknown message kind %q", msg.Kind)
	}
}

// planDocument mirrors the synthesized payload shape for display purposes.
// Unknown fields are ignored so payload evolution does not break rendering.
type planDocument struct {
	EventName  string   `json:"event_name"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Location   string   `json:"location"`
	Activities []string `json:"activities"`
	Notes      string   `json:"notes"`
}

// planText formats a payload as a readable block. Undecodable payloads fall
// back to the raw JSON rather than dropping the message.
func (r *Renderer) planText(raw string) string {
	var doc planDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return raw
	}

	p := r.printer
	unknown := p.Sprintf(planUnknownKey)
	orUnknown := func(value string) string {
		if strings.TrimSpace(value) == "" {
			return unknown
		}
		return value
	}

	activities := unknown
	if len(doc.Activities) > 0 {
		activities = strings.Join(doc.Activities, ", ")
	}

	lines := []string{
		p.Sprintf(planHeaderKey, orUnknown(doc.EventName)),
		p.Sprintf(planDateKey, orUnknown(doc.Date)),
		p.Sprintf(planTimeKey, orUnknown(doc.Time)),
		p.Sprintf(planLocationKey, orUnknown(doc.Location)),
		p.Sprintf(planActivitiesKey, activities),
	}
	if strings.TrimSpace(doc.Notes) != "" {
		lines = append(lines, "", p.Sprintf(planNotesKey, doc.Notes))
	}
	return strings.Join(lines, "\n")
}
