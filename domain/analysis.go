package domain

import (
	"math"
	"strings"
)

// MaxSkills caps each skill list returned by the analyzer.
const MaxSkills = 15

type Verdict string

const (
	VerdictHigh   Verdict = "High"
	VerdictMedium Verdict = "Medium"
	VerdictLow    Verdict = "Low"
)

// ParseVerdict accepts only the exact labels High, Medium and Low.
func ParseVerdict(s string) (Verdict, bool) {
	switch v := Verdict(s); v {
	case VerdictHigh, VerdictMedium, VerdictLow:
		return v, true
	}
	return "", false
}

// AnalysisResult is the validated outcome of one resume/JD comparison.
type AnalysisResult struct {
	Score         int      `json:"score"`
	Verdict       Verdict  `json:"verdict"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// ClampScore rounds half away from zero and clamps into [0,100].
func ClampScore(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 100:
		return 100
	}
	return int(r)
}

// CleanSkills keeps string entries only, trims them, drops empties and
// truncates to MaxSkills. The result is never nil.
func CleanSkills(items []any) []string {
	out := make([]string, 0, min(len(items), MaxSkills))
	for _, item := range items {
		if len(out) == MaxSkills {
			break
		}
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ScoreBucket names the admin filter bucket a score falls in.
func ScoreBucket(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 50:
		return "medium"
	}
	return "low"
}
