// Package http exposes the planner over a JSON HTTP API built on fiber.
// Inbound webhooks for SMS and email replies share the same surface.
package http

import (
	"errors"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

// NewRouter builds the planner's HTTP application.
func NewRouter(planner *domain.Planner) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "rallypoint",
		ErrorHandler: errorHandler,
	})
	app.Use(otelfiber.Middleware())

	h := &handler{planner: planner}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Post("/sessions", h.createSession)
	app.Get("/sessions/:id/status", h.sessionStatus)
	app.Get("/sessions/:id/eligibility", h.sessionEligibility)
	app.Post("/sessions/:id/cancel", h.cancelSession)
	app.Post("/sessions/:id/plans", h.generatePlan)

	app.Post("/participants/:id/comm-method", h.recordCommMethod)
	app.Post("/participants/:id/responses", h.recordResponse)
	app.Post("/participants/:id/continuation", h.recordContinuation)

	app.Post("/plans/:id/decision", h.recordDecision)
	app.Post("/plans/:id/feedback", h.recordFeedback)

	app.Post("/webhooks/sms", h.inboundReply)
	app.Post("/webhooks/email", h.inboundReply)

	return app
}

// errorHandler translates domain errors into JSON responses using the
// domain's own error classification.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorResponse{
			Error: errorBody{Code: "HTTP_ERROR", Message: fiberErr.Message},
		})
	}

	code := domain.CodeOf(err)
	return c.Status(code.HTTPStatus()).JSON(errorResponse{
		Error: errorBody{Code: string(code), Message: err.Error()},
	})
}
