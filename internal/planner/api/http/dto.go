package http

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/rallypoint/internal/planner/domain"
)

type createSessionRequest struct {
	OrganizerName    string               `json:"organizer_name"`
	OrganizerContact string               `json:"organizer_contact"`
	EventName        string               `json:"event_name"`
	Participants     []invitedParticipant `json:"participants"`
}

type invitedParticipant struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type sessionDTO struct {
	ID               string    `json:"id"`
	OrganizerName    string    `json:"organizer_name"`
	OrganizerContact string    `json:"organizer_contact"`
	EventName        string    `json:"event_name"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type participantDTO struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Name       string    `json:"name"`
	Contact    string    `json:"contact"`
	CommMethod string    `json:"comm_method,omitempty"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

type createSessionResponse struct {
	Session      sessionDTO       `json:"session"`
	Participants []participantDTO `json:"participants"`
}

type questionDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type outcomeResponse struct {
	Next        string         `json:"next"`
	Participant participantDTO `json:"participant"`
	Question    *questionDTO   `json:"question,omitempty"`
}

type commMethodRequest struct {
	Reply string `json:"reply"`
}

type responseRequest struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

type continuationRequest struct {
	Continue bool `json:"continue"`
}

type eligibilityResponse struct {
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	Quorum    int  `json:"quorum"`
	Eligible  bool `json:"eligible"`
}

type planDTO struct {
	ID                string          `json:"id"`
	SessionID         string          `json:"session_id"`
	Payload           json.RawMessage `json:"payload"`
	Status            string          `json:"status"`
	OrganizerFeedback string          `json:"organizer_feedback,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	DecidedAt         *time.Time      `json:"decided_at,omitempty"`
}

type decisionRequest struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

type feedbackRequest struct {
	ParticipantID string `json:"participant_id"`
	Accepted      bool   `json:"accepted"`
	Feedback      string `json:"feedback"`
}

type feedbackResponse struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	PlanID        string    `json:"plan_id"`
	Accepted      bool      `json:"accepted"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type rosterStatusDTO struct {
	Total           int                 `json:"total"`
	Completed       int                 `json:"completed"`
	Pending         int                 `json:"pending"`
	CompletePercent float64             `json:"complete_percent"`
	Participants    []rosterMemberDTO   `json:"participants"`
}

type rosterMemberDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	State      string `json:"state"`
	CommMethod string `json:"comm_method,omitempty"`
}

type planSummaryDTO struct {
	LatestPlanID         string `json:"latest_plan_id"`
	LatestPlanStatus     string `json:"latest_plan_status"`
	LatestApprovedPlanID string `json:"latest_approved_plan_id,omitempty"`
}

type statusResponse struct {
	Session sessionDTO      `json:"session"`
	Phase   string          `json:"phase"`
	Roster  rosterStatusDTO `json:"roster"`
	Plan    *planSummaryDTO `json:"plan,omitempty"`
}

// inboundReplyRequest is the shared shape of SMS and email webhook bodies:
// the sender address and the message text.
type inboundReplyRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toSessionDTO(session domain.Session) sessionDTO {
	return sessionDTO{
		ID:               session.ID,
		OrganizerName:    session.OrganizerName,
		OrganizerContact: session.OrganizerContact,
		EventName:        session.EventName,
		Status:           string(session.Status),
		CreatedAt:        session.CreatedAt,
	}
}

func toParticipantDTO(participant domain.Participant) participantDTO {
	return participantDTO{
		ID:         participant.ID,
		SessionID:  participant.SessionID,
		Name:       participant.Name,
		Contact:    participant.Contact,
		CommMethod: string(participant.CommMethod),
		State:      string(participant.State),
		CreatedAt:  participant.CreatedAt,
	}
}

func toOutcomeResponse(outcome domain.Outcome) outcomeResponse {
	response := outcomeResponse{
		Next:        string(outcome.Next),
		Participant: toParticipantDTO(outcome.Participant),
	}
	if outcome.Question != nil {
		response.Question = &questionDTO{ID: outcome.Question.ID, Text: outcome.Question.Text}
	}
	return response
}

func toPlanDTO(plan domain.Plan) planDTO {
	return planDTO{
		ID:                plan.ID,
		SessionID:         plan.SessionID,
		Payload:           json.RawMessage(plan.PayloadJSON),
		Status:            string(plan.Status),
		OrganizerFeedback: plan.OrganizerFeedback,
		CreatedAt:         plan.CreatedAt,
		DecidedAt:         plan.DecidedAt,
	}
}

func toStatusResponse(report domain.StatusReport) statusResponse {
	roster := rosterStatusDTO{
		Total:           report.Roster.Total,
		Completed:       report.Roster.Completed,
		Pending:         report.Roster.Pending,
		CompletePercent: report.Roster.CompletePercent,
		Participants:    make([]rosterMemberDTO, 0, len(report.Roster.Participants)),
	}
	for _, member := range report.Roster.Participants {
		roster.Participants = append(roster.Participants, rosterMemberDTO{
			ID:         member.ID,
			Name:       member.Name,
			State:      string(member.State),
			CommMethod: string(member.CommMethod),
		})
	}

	response := statusResponse{
		Session: toSessionDTO(report.Session),
		Phase:   string(report.Phase),
		Roster:  roster,
	}
	if report.Plan != nil {
		response.Plan = &planSummaryDTO{
			LatestPlanID:         report.Plan.LatestPlanID,
			LatestPlanStatus:     string(report.Plan.LatestPlanStatus),
			LatestApprovedPlanID: report.Plan.LatestApprovedPlanID,
		}
	}
	return response
}
