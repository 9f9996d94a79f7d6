package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

// Screening is the public side: job listing, applying, text extraction and
// resume analysis.
type Screening struct {
	Jobs         JobStore
	Applications ApplicationStore
	Files        FileStorage
	Extractor    TextExtractor
	Analyzer     ResumeAnalyzer
	Events       EventPublisher
	ResumeBucket string
	Log          *logrus.Logger
	Now          func() time.Time
}

type ApplyInput struct {
	JobID    string
	FullName string
	Resume   Upload
}

type ApplyOutput struct {
	Application *domain.Application   `json:"application"`
	Result      domain.AnalysisResult `json:"result"`
}

func (s *Screening) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Screening) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return s.Jobs.ListJobs(ctx)
}

func (s *Screening) ExtractText(ctx context.Context, file Upload) (*domain.Document, error) {
	if len(file.Data) == 0 {
		return nil, domain.Reason(domain.ErrValidation, "No file provided")
	}
	return s.Extractor.Extract(ctx, file.Filename, file.Data)
}

func (s *Screening) ExtractTextFromURL(ctx context.Context, rawURL string) (*domain.Document, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.Reason(domain.ErrValidation, "URL is required")
	}
	return s.Extractor.ExtractFromURL(ctx, rawURL)
}

// Apply runs the whole submission: store the resume, extract it, create the
// placeholder application and analyze it against the job description. A
// failing stage stops the chain; earlier stages are not undone.
func (s *Screening) Apply(ctx context.Context, in ApplyInput) (*ApplyOutput, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, domain.Reason(domain.ErrValidation, "Full name is required")
	}
	if len(in.Resume.Data) == 0 {
		return nil, domain.Reason(domain.ErrValidation, "Resume file is required")
	}
	format, err := domain.ValidateUpload(in.Resume.Filename, int64(len(in.Resume.Data)))
	if err != nil {
		return nil, err
	}

	job, err := s.Jobs.GetJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s.%s", uuid.NewString(), format)
	resumeURL, err := s.Files.Upload(ctx, s.ResumeBucket, key, in.Resume.Data)
	if err != nil {
		return nil, err
	}

	doc, err := s.Extractor.Extract(ctx, in.Resume.Filename, in.Resume.Data)
	if err != nil {
		return nil, err
	}

	app := domain.NewApplication(job.ID, fullName, resumeURL, in.Resume.Filename, doc.Text)
	if err := s.Applications.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	app.Job = job

	s.Log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"job_id":         job.ID,
	}).Info("application submitted")

	result, err := s.analyze(ctx, app, doc.Text, job.JDFileURL)
	if err != nil {
		return nil, err
	}
	return &ApplyOutput{Application: app, Result: result}, nil
}

// AnalyzeApplication analyzes an existing application against the job
// description at jdURL and stores the result.
func (s *Screening) AnalyzeApplication(ctx context.Context, applicationID, resumeText, jdURL string) (domain.AnalysisResult, error) {
	if applicationID == "" || strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdURL) == "" {
		return domain.AnalysisResult{}, domain.Reason(domain.ErrValidation, "Missing required fields")
	}

	app, err := s.Applications.GetApplication(ctx, applicationID)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if app.Analyzed() {
		return domain.AnalysisResult{}, domain.ErrAlreadyAnalyzed
	}
	return s.analyze(ctx, app, resumeText, jdURL)
}

func (s *Screening) analyze(ctx context.Context, app *domain.Application, resumeText, jdURL string) (domain.AnalysisResult, error) {
	jd, err := s.Extractor.ExtractFromURL(ctx, jdURL)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("failed to extract job description: %w", err)
	}

	result, err := s.Analyzer.Analyze(ctx, resumeText, jd.Text)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	if err := app.MarkAnalyzed(result, resumeText, jd.Text, s.now()); err != nil {
		return domain.AnalysisResult{}, err
	}
	if err := s.Applications.SaveAnalysis(ctx, app); err != nil {
		return domain.AnalysisResult{}, err
	}

	if s.Events != nil {
		if err := s.Events.PublishAnalyzed(ctx, domain.NewApplicationAnalyzed(app)); err != nil {
			s.Log.WithError(err).WithField("application_id", app.ID).Warn("failed to publish analyzed event")
		}
	}
	return result, nil
}
