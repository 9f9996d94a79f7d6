package domain

import "time"

// ApplicationAnalyzed is published after an analysis has been persisted.
type ApplicationAnalyzed struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	FullName      string    `json:"full_name"`
	Score         int       `json:"score"`
	Verdict       Verdict   `json:"verdict"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

func NewApplicationAnalyzed(a *Application) ApplicationAnalyzed {
	ev := ApplicationAnalyzed{
		ApplicationID: a.ID,
		JobID:         a.JobID,
		FullName:      a.FullName,
		Score:         a.Score,
		Verdict:       a.Verdict,
	}
	if a.AnalyzedAt != nil {
		ev.AnalyzedAt = *a.AnalyzedAt
	}
	return ev
}
