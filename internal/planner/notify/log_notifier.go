package notify

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

// LogNotifier renders each message and writes a delivery line to a logger
// instead of calling SMS, email, or telephony providers. It keeps the same
// per-channel behavior those providers would see: email delivery carries a
// subject, phone delivery uses the spoken script.
type LogNotifier struct {
	renderer *Renderer
	logger   *log.Logger
}

// NewLogNotifier builds a log-backed notifier. A nil logger falls back to
// the process default.
func NewLogNotifier(renderer *Renderer, logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{renderer: renderer, logger: logger}
}

// Notify implements domain.Notifier. Delivery failures are logged, never
// returned; the state machine has already moved on.
func (n *LogNotifier) Notify(_ context.Context, msg domain.Message) {
	if n == nil || n.renderer == nil {
		return
	}

	content, err := n.renderer.Render(msg)
	if err != nil {
		n.logger.Printf("drop %s message for session %s: %v", msg.Kind, msg.SessionID, err)
		return
	}

	method := msg.Recipient.Method
	if method == "" {
		method = domain.DefaultCommMethod(msg.Recipient.Contact)
	}

	switch method {
	case domain.CommMethodEmail:
		n.logger.Printf("email to %s [%s] subject=%q: %s",
			msg.Recipient.Contact, msg.Kind, content.Subject, truncate(content.Body, 80))
	case domain.CommMethodPhone:
		n.logger.Printf("call to %s [%s] script length %d",
			msg.Recipient.Contact, msg.Kind, len(content.Script))
	default:
		n.logger.Printf("sms to %s [%s]: %s",
			msg.Recipient.Contact, msg.Kind, truncate(content.Body, 80))
	}
}

// truncate cuts value to at most limit bytes without splitting a rune.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}
