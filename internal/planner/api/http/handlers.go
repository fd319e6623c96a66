package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

type handler struct {
	planner *domain.Planner
}

func (h *handler) createSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	invited := make([]domain.InvitedParticipant, 0, len(req.Participants))
	for _, participant := range req.Participants {
		invited = append(invited, domain.InvitedParticipant{
			Name:    participant.Name,
			Contact: participant.Contact,
		})
	}

	session, participants, err := h.planner.CreateSession(c.UserContext(), domain.CreateSessionInput{
		OrganizerName:    req.OrganizerName,
		OrganizerContact: req.OrganizerContact,
		EventName:        req.EventName,
		Participants:     invited,
	})
	if err != nil {
		return err
	}

	response := createSessionResponse{
		Session:      toSessionDTO(session),
		Participants: make([]participantDTO, 0, len(participants)),
	}
	for _, participant := range participants {
		response.Participants = append(response.Participants, toParticipantDTO(participant))
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *handler) sessionStatus(c *fiber.Ctx) error {
	report, err := h.planner.Status(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toStatusResponse(report))
}

func (h *handler) sessionEligibility(c *fiber.Ctx) error {
	eligibility, err := h.planner.GenerationEligibility(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(eligibilityResponse{
		Total:     eligibility.Total,
		Completed: eligibility.Completed,
		Quorum:    eligibility.Quorum,
		Eligible:  eligibility.Eligible,
	})
}

func (h *handler) cancelSession(c *fiber.Ctx) error {
	session, err := h.planner.CancelSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionDTO(session))
}

func (h *handler) generatePlan(c *fiber.Ctx) error {
	plan, err := h.planner.GeneratePlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toPlanDTO(plan))
}

func (h *handler) recordCommMethod(c *fiber.Ctx) error {
	var req commMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	outcome, err := h.planner.RecordCommMethod(c.UserContext(), c.Params("id"), req.Reply)
	if err != nil {
		return err
	}
	return c.JSON(toOutcomeResponse(outcome))
}

func (h *handler) recordResponse(c *fiber.Ctx) error {
	var req responseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	outcome, err := h.planner.RecordResponse(c.UserContext(), c.Params("id"), req.QuestionID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(toOutcomeResponse(outcome))
}

func (h *handler) recordContinuation(c *fiber.Ctx) error {
	var req continuationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	outcome, err := h.planner.RecordContinuation(c.UserContext(), c.Params("id"), req.Continue)
	if err != nil {
		return err
	}
	return c.JSON(toOutcomeResponse(outcome))
}

func (h *handler) recordDecision(c *fiber.Ctx) error {
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	plan, err := h.planner.RecordOrganizerDecision(c.UserContext(), c.Params("id"), req.Approved, req.Feedback)
	if err != nil {
		return err
	}
	return c.JSON(toPlanDTO(plan))
}

func (h *handler) recordFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	feedback, err := h.planner.RecordParticipantFeedback(c.UserContext(), req.ParticipantID, c.Params("id"), req.Accepted, req.Feedback)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(feedbackResponse{
		ID:            feedback.ID,
		ParticipantID: feedback.ParticipantID,
		PlanID:        feedback.PlanID,
		Accepted:      feedback.Accepted,
		Feedback:      feedback.Feedback,
		CreatedAt:     feedback.CreatedAt,
	})
}

// inboundReply serves both webhook channels; the sender's stored state
// decides how the reply is interpreted.
func (h *handler) inboundReply(c *fiber.Ctx) error {
	var req inboundReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if req.From == "" {
		return fiber.NewError(fiber.StatusBadRequest, "sender address is required")
	}
	outcome, err := h.planner.RouteInboundReply(c.UserContext(), req.From, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(toOutcomeResponse(outcome))
}
