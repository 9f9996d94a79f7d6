package domain

import (
	"strings"
	"time"
)

// ApplicationFilter holds the admin list filters. Empty or "all" disables a
// field; unknown score buckets and date windows are ignored.
type ApplicationFilter struct {
	Search  string `form:"search"`
	Verdict string `form:"verdict"`
	JobID   string `form:"job"`
	Score   string `form:"score"`
	Date    string `form:"date"`
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "all"
}

// FilterApplications applies every active filter and keeps input order.
func FilterApplications(apps []*Application, f ApplicationFilter, now time.Time) []*Application {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	since, hasSince := dateWindowStart(f.Date, now)

	out := make([]*Application, 0, len(apps))
	for _, a := range apps {
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if active(f.Verdict) && string(a.Verdict) != f.Verdict {
			continue
		}
		if active(f.JobID) && a.JobID != f.JobID {
			continue
		}
		if active(f.Score) && !inScoreBucket(a.Score, f.Score) {
			continue
		}
		if hasSince && a.CreatedAt.Before(since) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesSearch(a *Application, term string) bool {
	if strings.Contains(strings.ToLower(a.FullName), term) ||
		strings.Contains(strings.ToLower(a.JobTitle()), term) {
		return true
	}
	for _, list := range [][]string{a.MatchedSkills, a.MissingSkills} {
		for _, s := range list {
			if strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	}
	return false
}

func inScoreBucket(score int, bucket string) bool {
	switch bucket {
	case "high", "medium", "low":
		return ScoreBucket(score) == bucket
	}
	return true
}

func dateWindowStart(window string, now time.Time) (time.Time, bool) {
	switch window {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}
