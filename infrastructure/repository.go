package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resume-screener/domain"
)

// Repository persists jobs and applications through gorm.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	var jobs []*domain.Job
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *Repository) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}
	return &job, nil
}

func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := r.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// DeleteJob removes the job together with its applications.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return fmt.Errorf("failed to delete applications of job %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&domain.Job{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete job %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *Repository) CreateApplication(ctx context.Context, app *domain.Application) error {
	if err := r.DB.WithContext(ctx).Omit("Job").Create(app).Error; err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (r *Repository) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := r.DB.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load application %s: %w", id, err)
	}
	return &app, nil
}

// SaveAnalysis writes the analysis columns. The analyzed_at IS NULL guard
// keeps the created to analyzed transition single-shot across requests.
func (r *Repository) SaveAnalysis(ctx context.Context, app *domain.Application) error {
	res := r.DB.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ? AND analyzed_at IS NULL", app.ID).
		Updates(map[string]any{
			"resume_text":    app.ResumeText,
			"jd_text":        app.JDText,
			"score":          app.Score,
			"verdict":        app.Verdict,
			"matched_skills": app.MatchedSkills,
			"missing_skills": app.MissingSkills,
			"analyzed_at":    app.AnalyzedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to save analysis: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyAnalyzed
	}
	return nil
}

// ListApplications returns every application, newest first, with its job.
func (r *Repository) ListApplications(ctx context.Context) ([]*domain.Application, error) {
	var apps []*domain.Application
	if err := r.DB.WithContext(ctx).Preload("Job").Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}
