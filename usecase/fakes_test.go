package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type memoryStore struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	apps map[string]*domain.Application
	seq  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{jobs: map[string]*domain.Job{}, apps: map[string]*domain.Application{}}
}

func (m *memoryStore) ListJobs(context.Context) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) GetJob(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return j, nil
}

func (m *memoryStore) CreateJob(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", m.seq)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *memoryStore) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.jobs, id)
	for k, a := range m.apps {
		if a.JobID == id {
			delete(m.apps, k)
		}
	}
	return nil
}

func (m *memoryStore) CreateApplication(_ context.Context, app *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", m.seq)
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	cp := *app
	m.apps[app.ID] = &cp
	return nil
}

func (m *memoryStore) GetApplication(_ context.Context, id string) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	cp.Job = m.jobs[a.JobID]
	return &cp, nil
}

func (m *memoryStore) SaveAnalysis(_ context.Context, app *domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.apps[app.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.AnalyzedAt != nil {
		return domain.ErrAlreadyAnalyzed
	}
	cp := *app
	m.apps[app.ID] = &cp
	return nil
}

func (m *memoryStore) ListApplications(context.Context) ([]*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Application, 0, len(m.apps))
	for _, a := range m.apps {
		cp := *a
		cp.Job = m.jobs[a.JobID]
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeFiles struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeFiles) Upload(_ context.Context, bucket, key string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[bucket+"/"+key] = data
	return "https://cdn.example.com/" + bucket + "/" + key, nil
}

// fakeExtractor treats every payload as plain text and serves URLs from a map.
type fakeExtractor struct {
	urls map[string]string
}

func (f *fakeExtractor) Extract(_ context.Context, filename string, data []byte) (*domain.Document, error) {
	format, err := domain.ValidateUpload(filename, int64(len(data)))
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, domain.ErrNoReadableText
	}
	return &domain.Document{Filename: filename, Size: int64(len(data)), Text: text, Format: format}, nil
}

func (f *fakeExtractor) ExtractFromURL(_ context.Context, rawURL string) (*domain.Document, error) {
	text, ok := f.urls[rawURL]
	if !ok {
		return nil, domain.Reason(domain.ErrFetchFailed, "Failed to fetch file: 404 Not Found")
	}
	return &domain.Document{Filename: "jd.pdf", Text: text}, nil
}

type fakeAnalyzer struct {
	calls  int
	result domain.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, resumeText, jdText string) (domain.AnalysisResult, error) {
	f.calls++
	if strings.TrimSpace(resumeText) == "" {
		return domain.AnalysisResult{}, domain.ErrEmptyResume
	}
	if strings.TrimSpace(jdText) == "" {
		return domain.AnalysisResult{}, domain.ErrEmptyJobDescription
	}
	return f.result, f.err
}

type fakeEvents struct {
	published []domain.ApplicationAnalyzed
	err       error
}

func (f *fakeEvents) PublishAnalyzed(_ context.Context, ev domain.ApplicationAnalyzed) error {
	f.published = append(f.published, ev)
	return f.err
}

type fakeSessions struct {
	tokens map[string]bool
}

func (f *fakeSessions) Create() (string, time.Time) {
	if f.tokens == nil {
		f.tokens = map[string]bool{}
	}
	tok := fmt.Sprintf("tok-%d", len(f.tokens)+1)
	f.tokens[tok] = true
	return tok, time.Now().Add(time.Hour)
}

func (f *fakeSessions) Valid(token string) bool { return f.tokens[token] }
func (f *fakeSessions) Revoke(token string) { delete(f.tokens, token) }
