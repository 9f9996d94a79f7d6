package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/domain"
)

const jdURL = "https://cdn.example.com/job-descriptions/jd.pdf"

type screeningFixture struct {
	store    *memoryStore
	files    *fakeFiles
	analyzer *fakeAnalyzer
	events   *fakeEvents
	svc      *Screening
	job      *domain.Job
}

func newScreeningFixture(t *testing.T) *screeningFixture {
	t.Helper()
	f := &screeningFixture{
		store: newMemoryStore(),
		files: &fakeFiles{},
		analyzer: &fakeAnalyzer{result: domain.AnalysisResult{
			Score:         86,
			Verdict:       domain.VerdictMedium,
			MatchedSkills: []string{"Go"},
			MissingSkills: []string{"Kafka"},
		}},
		events: &fakeEvents{},
	}
	f.job = &domain.Job{Title: "Backend Engineer", JDFileURL: jdURL}
	require.NoError(t, f.store.CreateJob(context.Background(), f.job))

	f.svc = &Screening{
		Jobs:         f.store,
		Applications: f.store,
		Files:        f.files,
		Extractor:    &fakeExtractor{urls: map[string]string{jdURL: "Go, Kafka, SQL"}},
		Analyzer:     f.analyzer,
		Events:       f.events,
		ResumeBucket: "resumes",
		Log:          quietLogger(),
		Now:          func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestApply(t *testing.T) {
	f := newScreeningFixture(t)
	ctx := context.Background()

	out, err := f.svc.Apply(ctx, ApplyInput{
		JobID:    f.job.ID,
		FullName: "  Ada Lovelace ",
		Resume:   Upload{Filename: "ada.txt", Data: []byte("Go developer")},
	})
	require.NoError(t, err)

	assert.Equal(t, 86, out.Result.Score)
	assert.Equal(t, "Ada Lovelace", out.Application.FullName)
	assert.Equal(t, "Go developer", out.Application.ResumeText)
	assert.Equal(t, "Go, Kafka, SQL", out.Application.JDText)
	assert.Contains(t, out.Application.ResumeFileURL, "https://cdn.example.com/resumes/")
	assert.Len(t, f.files.uploads, 1)

	stored, err := f.store.GetApplication(ctx, out.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, 86, stored.Score)
	assert.True(t, stored.Analyzed())

	require.Len(t, f.events.published, 1)
	assert.Equal(t, out.Application.ID, f.events.published[0].ApplicationID)
	assert.Equal(t, domain.VerdictMedium, f.events.published[0].Verdict)
}

func TestApplyValidation(t *testing.T) {
	f := newScreeningFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ApplyInput
		want error
	}{
		{"missing name", ApplyInput{JobID: f.job.ID, Resume: Upload{Filename: "a.txt", Data: []byte("x")}}, domain.ErrValidation},
		{"missing file", ApplyInput{JobID: f.job.ID, FullName: "Ada"}, domain.ErrValidation},
		{"doc file", ApplyInput{JobID: f.job.ID, FullName: "Ada", Resume: Upload{Filename: "a.doc", Data: []byte("x")}}, domain.ErrUnsupportedFormat},
		{"unknown job", ApplyInput{JobID: "nope", FullName: "Ada", Resume: Upload{Filename: "a.txt", Data: []byte("x")}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Apply(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.files.uploads, "nothing is uploaded when validation fails")
	assert.Zero(t, f.analyzer.calls)
}

func TestApplyKeepsPlaceholderWhenAnalysisFails(t *testing.T) {
	f := newScreeningFixture(t)
	f.analyzer.err = domain.ErrLLMRateLimited

	_, err := f.svc.Apply(context.Background(), ApplyInput{
		JobID:    f.job.ID,
		FullName: "Ada",
		Resume:   Upload{Filename: "ada.txt", Data: []byte("Go developer")},
	})
	require.ErrorIs(t, err, domain.ErrLLMRateLimited)

	apps, err := f.store.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 0, apps[0].Score)
	assert.Equal(t, domain.VerdictLow, apps[0].Verdict)
	assert.False(t, apps[0].Analyzed())
	assert.Empty(t, f.events.published)
}

func TestAnalyzeApplication(t *testing.T) {
	f := newScreeningFixture(t)
	ctx := context.Background()

	app := domain.NewApplication(f.job.ID, "Ada", "", "ada.pdf", "")
	require.NoError(t, f.store.CreateApplication(ctx, app))

	res, err := f.svc.AnalyzeApplication(ctx, app.ID, "Go developer", jdURL)
	require.NoError(t, err)
	assert.Equal(t, 86, res.Score)

	_, err = f.svc.AnalyzeApplication(ctx, app.ID, "Go developer", jdURL)
	assert.ErrorIs(t, err, domain.ErrAlreadyAnalyzed)
	assert.Equal(t, 1, f.analyzer.calls)

	_, err = f.svc.AnalyzeApplication(ctx, "", "Go developer", jdURL)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.AnalyzeApplication(ctx, "missing", "Go developer", jdURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyzeApplicationBadJDURL(t *testing.T) {
	f := newScreeningFixture(t)
	ctx := context.Background()
	app := domain.NewApplication(f.job.ID, "Ada", "", "ada.pdf", "")
	require.NoError(t, f.store.CreateApplication(ctx, app))

	_, err := f.svc.AnalyzeApplication(ctx, app.ID, "Go developer", "https://elsewhere/jd.pdf")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Zero(t, f.analyzer.calls)
}

func TestPublishFailureDoesNotFailAnalysis(t *testing.T) {
	f := newScreeningFixture(t)
	f.events.err = errors.New("broker down")

	_, err := f.svc.Apply(context.Background(), ApplyInput{
		JobID:    f.job.ID,
		FullName: "Ada",
		Resume:   Upload{Filename: "ada.txt", Data: []byte("Go developer")},
	})
	assert.NoError(t, err)
}

func TestExtractTextRequiresInput(t *testing.T) {
	f := newScreeningFixture(t)
	ctx := context.Background()

	_, err := f.svc.ExtractText(ctx, Upload{Filename: "a.txt"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "No file provided", err.Error())

	_, err = f.svc.ExtractTextFromURL(ctx, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "URL is required", err.Error())

	doc, err := f.svc.ExtractText(ctx, Upload{Filename: "a.txt", Data: []byte(" hi ")})
	require.NoError(t, err)
	assert.Equal(t, "hi", doc.Text)
}
