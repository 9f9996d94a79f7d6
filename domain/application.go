package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application is one candidate submission against a Job. It is created with
// a placeholder score and updated exactly once when analysis completes.
type Application struct {
	ID             string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID          string                      `gorm:"type:varchar(36);index;not null" json:"job_id"`
	Job            *Job                        `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	FullName       string                      `gorm:"size:255;not null" json:"full_name"`
	ResumeFileURL  string                      `gorm:"column:resume_file_url;size:1024" json:"resume_file_url"`
	ResumeFileName string                      `gorm:"column:resume_file_name;size:255" json:"resume_file_name"`
	ResumeText     string                      `json:"resume_text"`
	JDText         string                      `gorm:"column:jd_text" json:"jd_text"`
	Score          int                         `gorm:"not null;default:0" json:"score"`
	Verdict        Verdict                     `gorm:"size:10;not null;default:Low" json:"verdict"`
	MatchedSkills  datatypes.JSONSlice[string] `json:"matched_skills"`
	MissingSkills  datatypes.JSONSlice[string] `json:"missing_skills"`
	AnalyzedAt     *time.Time                  `json:"analyzed_at"`
	CreatedAt      time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// NewApplication returns the placeholder row written at submission time.
func NewApplication(jobID, fullName, resumeURL, resumeName, resumeText string) *Application {
	return &Application{
		JobID:          jobID,
		FullName:       fullName,
		ResumeFileURL:  resumeURL,
		ResumeFileName: resumeName,
		ResumeText:     resumeText,
		Score:          0,
		Verdict:        VerdictLow,
		MatchedSkills:  datatypes.JSONSlice[string]{},
		MissingSkills:  datatypes.JSONSlice[string]{},
	}
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Application) Analyzed() bool { return a.AnalyzedAt != nil }

// MarkAnalyzed applies an analysis result. An application moves from created
// to analyzed once; a second call fails with ErrAlreadyAnalyzed.
func (a *Application) MarkAnalyzed(res AnalysisResult, resumeText, jdText string, at time.Time) error {
	if a.Analyzed() {
		return ErrAlreadyAnalyzed
	}
	if resumeText != "" {
		a.ResumeText = resumeText
	}
	a.JDText = jdText
	a.Score = res.Score
	a.Verdict = res.Verdict
	a.MatchedSkills = datatypes.JSONSlice[string](res.MatchedSkills)
	a.MissingSkills = datatypes.JSONSlice[string](res.MissingSkills)
	a.AnalyzedAt = &at
	return nil
}

// JobTitle is empty when the job was not preloaded.
func (a *Application) JobTitle() string {
	if a.Job == nil {
		return ""
	}
	return a.Job.Title
}
