package infrastructure

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// defaultPrompt is the ATS scoring rubric. It can be replaced at runtime
// with LLM_PROMPT_FILE; the template sees .JobDescription and .Resume.
const defaultPrompt = `
You are an ATS system. Compare this resume to the job requirements and score the match.

JOB REQUIREMENTS:
{{.JobDescription}}

CANDIDATE RESUME:
{{.Resume}}

Instructions:
1. Score from 0-100 based on how well the resume matches the job requirements
2. List skills from the job that the candidate HAS (matched_skills)
3. List skills from the job that the candidate LACKS (missing_skills)
4. Keep skills short (2-3 words max)

Scoring:
- 90-100: Exceptional match (High)
- 70-89: Good match (Medium)
- 0-69: Poor match (Low)

Return ONLY this JSON format:
{
  "score": <number 0-100>,
  "verdict": "<High/Medium/Low>",
  "matched_skills": ["skill1", "skill2"],
  "missing_skills": ["skill3", "skill4"]
}
`

var defaultTemplate = template.Must(template.New("analysis").Parse(defaultPrompt))

type promptData struct {
	JobDescription string
	Resume         string
}

// LoadPrompt parses the prompt template at path, or the built-in one when
// path is empty.
func LoadPrompt(path string) (*template.Template, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}
	tmpl, err := template.New("analysis").Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt file: %w", err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, resumeText, jdText string) (string, error) {
	var sb strings.Builder
	err := tmpl.Execute(&sb, promptData{
		JobDescription: strings.TrimSpace(jdText),
		Resume:         strings.TrimSpace(resumeText),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}
