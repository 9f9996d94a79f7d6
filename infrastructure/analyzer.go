package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

// Analyzer scores a resume against a job description with an LLM. It makes
// exactly one model call per Analyze and never retries.
type Analyzer struct {
	LLM    Completer
	Prompt *template.Template
	Log    *logrus.Logger
}

// NewAnalyzer accepts a nil llm; Analyze then fails with
// domain.ErrLLMCredentialMissing.
func NewAnalyzer(llm Completer, prompt *template.Template, log *logrus.Logger) *Analyzer {
	if prompt == nil {
		prompt = defaultTemplate
	}
	return &Analyzer{LLM: llm, Prompt: prompt, Log: log}
}

func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (domain.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return domain.AnalysisResult{}, domain.ErrEmptyResume
	}
	if strings.TrimSpace(jdText) == "" {
		return domain.AnalysisResult{}, domain.ErrEmptyJobDescription
	}
	if a.LLM == nil {
		return domain.AnalysisResult{}, domain.ErrLLMCredentialMissing
	}

	prompt, err := renderPrompt(a.Prompt, resumeText, jdText)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	log := a.Log.WithFields(logrus.Fields{
		"resume_chars": len(resumeText),
		"jd_chars":     len(jdText),
	})
	log.Info("starting resume analysis")

	raw, err := a.LLM.Complete(ctx, prompt)
	if err != nil {
		classified := classifyLLMError(ctx, err)
		log.WithError(err).Warn("llm call failed")
		return domain.AnalysisResult{}, classified
	}

	result, err := ParseAnalysis(raw)
	if err != nil {
		log.WithError(err).WithField("raw", truncate(raw, 200)).Warn("invalid llm response")
		return domain.AnalysisResult{}, err
	}

	log.WithFields(logrus.Fields{
		"score":          result.Score,
		"verdict":        result.Verdict,
		"matched_skills": len(result.MatchedSkills),
		"missing_skills": len(result.MissingSkills),
	}).Info("analysis completed")
	return result, nil
}

// ParseAnalysis validates a raw model answer and normalizes it.
func ParseAnalysis(raw string) (domain.AnalysisResult, error) {
	content, ok := cleanJSONResponse(raw)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("%w: no JSON object found in response", domain.ErrInvalidLLMResponse)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: failed to parse analysis response: %v", domain.ErrInvalidLLMResponse, err)
	}

	score, ok := payload["score"].(float64)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("%w: score must be a number", domain.ErrInvalidLLMResponse)
	}
	verdictRaw, _ := payload["verdict"].(string)
	verdict, ok := domain.ParseVerdict(verdictRaw)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("%w: verdict must be High, Medium, or Low, got: %v",
			domain.ErrInvalidLLMResponse, payload["verdict"])
	}
	matched, ok := payload["matched_skills"].([]any)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("%w: matched_skills must be an array", domain.ErrInvalidLLMResponse)
	}
	missing, ok := payload["missing_skills"].([]any)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("%w: missing_skills must be an array", domain.ErrInvalidLLMResponse)
	}

	return domain.AnalysisResult{
		Score:         domain.ClampScore(score),
		Verdict:       verdict,
		MatchedSkills: domain.CleanSkills(matched),
		MissingSkills: domain.CleanSkills(missing),
	}, nil
}

// cleanJSONResponse removes markdown fences and returns the span from the
// first '{' to the last '}'.
func cleanJSONResponse(content string) (string, bool) {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return content[start : end+1], true
}

func classifyLLMError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrLLMTimeout
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.ErrLLMAuth
		case http.StatusTooManyRequests:
			return domain.ErrLLMRateLimited
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return domain.ErrLLMTimeout
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrLLMTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "authentication"):
		return domain.ErrLLMAuth
	case strings.Contains(msg, "rate limit"):
		return domain.ErrLLMRateLimited
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return domain.ErrLLMTimeout
	}
	return fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
