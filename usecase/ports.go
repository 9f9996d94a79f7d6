package usecase

import (
	"context"
	"time"

	"resume-screener/domain"
)

type JobStore interface {
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, job *domain.Job) error
	DeleteJob(ctx context.Context, id string) error
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *domain.Application) error
	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	SaveAnalysis(ctx context.Context, app *domain.Application) error
	ListApplications(ctx context.Context) ([]*domain.Application, error)
}

// FileStorage stores an object and returns its public URL.
type FileStorage interface {
	Upload(ctx context.Context, bucket, key string, data []byte) (string, error)
}

type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*domain.Document, error)
	ExtractFromURL(ctx context.Context, rawURL string) (*domain.Document, error)
}

type ResumeAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jdText string) (domain.AnalysisResult, error)
}

type EventPublisher interface {
	PublishAnalyzed(ctx context.Context, ev domain.ApplicationAnalyzed) error
}

type SessionManager interface {
	Create() (string, time.Time)
	Valid(token string) bool
	Revoke(token string)
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Data     []byte
}
