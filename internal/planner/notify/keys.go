package notify

// Message catalog keys. Each key maps to a translated template in the
// messages_* files.
const (
	outreachSubjectKey = "outreach.subject"
	outreachBodyKey    = "outreach.body"

	questionBodyKey   = "question.body"
	questionScriptKey = "question.script"

	continuationBodyKey = "continuation.body"
	thanksBodyKey       = "thanks.body"

	planProposedSubjectKey = "plan_proposed.subject"
	planProposedBodyKey    = "plan_proposed.body"

	planApprovedSubjectKey = "plan_approved.subject"
	planApprovedBodyKey    = "plan_approved.body"
	planApprovedScriptKey  = "plan_approved.script"

	planRejectedSubjectKey = "plan_rejected.subject"
	planRejectedBodyKey    = "plan_rejected.body"

	planHeaderKey     = "plan.header"
	planDateKey       = "plan.date"
	planTimeKey       = "plan.time"
	planLocationKey   = "plan.location"
	planActivitiesKey = "plan.activities"
	planNotesKey      = "plan.notes"
	planUnknownKey    = "plan.unknown"
)
