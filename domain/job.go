package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is an open position. The job description lives in the
// job-descriptions bucket; only its public URL is stored here.
type Job struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	JDFileURL   string    `gorm:"column:jd_file_url;size:1024;not null" json:"jd_file_url"`
	JDFileName  string    `gorm:"column:jd_file_name;size:255" json:"jd_file_name"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
