package domain

func rosterStatus(participants []Participant) RosterStatus {
	status := RosterStatus{
		Total:        len(participants),
		Participants: make([]ParticipantStatus, 0, len(participants)),
	}
	for _, participant := range participants {
		if participant.PreferencesComplete() {
			status.Completed++
		}
		status.Participants = append(status.Participants, ParticipantStatus{
			ID:         participant.ID,
			Name:       participant.Name,
			State:      participant.State,
			CommMethod: participant.CommMethod,
		})
	}
	status.Pending = status.Total - status.Completed
	if status.Total > 0 {
		status.CompletePercent = float64(status.Completed) / float64(status.Total) * 100
	}
	return status
}
