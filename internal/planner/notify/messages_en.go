package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Initial outreach
	message.SetString(lang, outreachSubjectKey, "Help Plan: %s with %s")
	message.SetString(lang, outreachBodyKey,
		"Hi %s, %s is planning %s and has asked me (an AI assistant) to help coordinate. "+
			"How would you prefer to answer a few questions about your preferences? "+
			"Reply with: 1 for text, 2 for email, or 3 for a phone call.")

	// Preference questions
	message.SetString(lang, questionBodyKey, "%s")
	message.SetString(lang, questionScriptKey, "Hello, I have a question for you about your preferences. %s")

	// Continuation checkpoint and wrap-up
	message.SetString(lang, continuationBodyKey,
		"Thank you for your responses so far! Would you be willing to answer "+
			"a few more questions to help plan the perfect event? Reply with YES "+
			"to continue or NO to finish.")
	message.SetString(lang, thanksBodyKey,
		"Thank you for sharing your preferences! I'll use this information "+
			"to help create a plan that works for everyone. You'll receive the "+
			"proposed plan once it's ready.")

	// Plan review with the organizer
	message.SetString(lang, planProposedSubjectKey, "Proposed Plan for %s")
	message.SetString(lang, planProposedBodyKey,
		"Hi %s, I've created a proposed plan for %s based on everyone's preferences:\n\n%s\n\n"+
			"Please reply with APPROVE to confirm this plan, or REVISE followed by "+
			"your feedback if you'd like changes.")

	// Approved plan distribution
	message.SetString(lang, planApprovedSubjectKey, "Approved Plan for %s")
	message.SetString(lang, planApprovedBodyKey,
		"Hi %s, %s has approved the plan for %s:\n\n%s\n\n"+
			"Please reply with YES if this works for you, or NO followed by "+
			"any concerns if you have issues with this plan.")
	message.SetString(lang, planApprovedScriptKey, "Hello %s, I'm calling about the plan for %s. %s")

	// Participant concerns back to the organizer
	message.SetString(lang, planRejectedSubjectKey, "Feedback on Plan for %s")
	message.SetString(lang, planRejectedBodyKey,
		"Hi %s, %s has concerns about the plan for %s.\n\n"+
			"Their feedback: %s\n\n"+
			"Would you like me to create a revised plan? Reply with YES to create a new plan, "+
			"or CONTINUE if you'd like to proceed with the current plan.")

	// Plan summary block
	message.SetString(lang, planHeaderKey, "PLAN FOR: %s")
	message.SetString(lang, planDateKey, "DATE: %s")
	message.SetString(lang, planTimeKey, "TIME: %s")
	message.SetString(lang, planLocationKey, "LOCATION: %s")
	message.SetString(lang, planActivitiesKey, "ACTIVITIES: %s")
	message.SetString(lang, planNotesKey, "ADDITIONAL NOTES:\n%s")
	message.SetString(lang, planUnknownKey, "TBD")
}
