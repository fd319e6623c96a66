package domain

import "testing"

func TestParseCommMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reply string
		want  CommMethod
	}{
		{"1", CommMethodSMS},
		{"text", CommMethodSMS},
		{" SMS ", CommMethodSMS},
		{"txt", CommMethodSMS},
		{"2", CommMethodEmail},
		{"Email", CommMethodEmail},
		{"e-mail", CommMethodEmail},
		{"mail", CommMethodEmail},
		{"3", CommMethodPhone},
		{"phone", CommMethodPhone},
		{"CALL", CommMethodPhone},
		{"voice", CommMethodPhone},
		{"carrier pigeon", ""},
		{"", ""},
		{"4", ""},
	}
	for _, tc := range tests {
		if got := ParseCommMethod(tc.reply); got != tc.want {
			t.Errorf("ParseCommMethod(%q) = %q, want %q", tc.reply, got, tc.want)
		}
	}
}

func TestDefaultCommMethod(t *testing.T) {
	t.Parallel()

	if got := DefaultCommMethod("alex@example.com"); got != CommMethodEmail {
		t.Errorf("DefaultCommMethod(email address) = %q, want email", got)
	}
	if got := DefaultCommMethod("+15550100"); got != CommMethodSMS {
		t.Errorf("DefaultCommMethod(phone number) = %q, want sms", got)
	}
}

func TestParseContinuationReply(t *testing.T) {
	t.Parallel()

	affirmative := []string{"yes", "Y", " Sure ", "ok", "OKAY", "continue"}
	for _, reply := range affirmative {
		if !ParseContinuationReply(reply) {
			t.Errorf("ParseContinuationReply(%q) = false, want true", reply)
		}
	}
	negative := []string{"no", "n", "stop", "done", "", "yes please", "maybe"}
	for _, reply := range negative {
		if ParseContinuationReply(reply) {
			t.Errorf("ParseContinuationReply(%q) = true, want false", reply)
		}
	}
}

func TestPreferencesComplete(t *testing.T) {
	t.Parallel()

	if (Participant{State: CollectionStateCollecting}).PreferencesComplete() {
		t.Error("collecting participant reports complete")
	}
	if (Participant{State: CollectionStateAwaitingContinuation}).PreferencesComplete() {
		t.Error("awaiting participant reports complete")
	}
	if !(Participant{State: CollectionStateComplete}).PreferencesComplete() {
		t.Error("complete participant reports incomplete")
	}
}
