package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

// Admin backs the admin console: login, job management, application
// review and the dashboard.
type Admin struct {
	Jobs         JobStore
	Applications ApplicationStore
	Files        FileStorage
	Sessions     SessionManager
	Username     string
	Password     string
	JDBucket     string
	Log          *logrus.Logger
	Now          func() time.Time
}

type CreateJobInput struct {
	Title       string
	Description string
	JD          Upload
}

func (a *Admin) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Login checks the configured credential pair and opens a session.
func (a *Admin) Login(username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	if !userOK || !passOK {
		a.Log.WithField("username", username).Warn("admin login rejected")
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	token, expires := a.Sessions.Create()
	return token, expires, nil
}

func (a *Admin) Logout(token string) {
	a.Sessions.Revoke(token)
}

func (a *Admin) Authorize(token string) error {
	if token == "" || !a.Sessions.Valid(token) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (a *Admin) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return a.Jobs.ListJobs(ctx)
}

// CreateJob uploads the job description file and stores the job.
func (a *Admin) CreateJob(ctx context.Context, in CreateJobInput) (*domain.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Reason(domain.ErrValidation, "Job title is required")
	}
	if len(in.JD.Data) == 0 {
		return nil, domain.Reason(domain.ErrValidation, "Job description file is required")
	}
	format, err := domain.ValidateUpload(in.JD.Filename, int64(len(in.JD.Data)))
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s.%s", uuid.NewString(), format)
	url, err := a.Files.Upload(ctx, a.JDBucket, key, in.JD.Data)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		JDFileURL:   url,
		JDFileName:  in.JD.Filename,
	}
	if err := a.Jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	a.Log.WithFields(logrus.Fields{"job_id": job.ID, "title": job.Title}).Info("job created")
	return job, nil
}

// DeleteJob removes a job and every application submitted to it.
func (a *Admin) DeleteJob(ctx context.Context, id string) error {
	if err := a.Jobs.DeleteJob(ctx, id); err != nil {
		return err
	}
	a.Log.WithField("job_id", id).Info("job deleted")
	return nil
}

func (a *Admin) ListApplications(ctx context.Context, f domain.ApplicationFilter) ([]*domain.Application, error) {
	apps, err := a.Applications.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterApplications(apps, f, a.now()), nil
}

func (a *Admin) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	jobs, err := a.Jobs.ListJobs(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	apps, err := a.Applications.ListApplications(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.BuildDashboard(jobs, apps, a.now()), nil
}
