package domain

import (
	"math"
	"time"
)

const jobTitleChartWidth = 15

type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

type DailyPoint struct {
	Date         string `json:"date"`
	Name         string `json:"name"`
	Applications int    `json:"applications"`
}

type ScoreRange struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Dashboard is the admin overview. Chart series are ready to plot.
type Dashboard struct {
	TotalJobs          int          `json:"total_jobs"`
	TotalApplications  int          `json:"total_applications"`
	HighMatches        int          `json:"high_matches"`
	MediumMatches      int          `json:"medium_matches"`
	LowMatches         int          `json:"low_matches"`
	RecentApplications int          `json:"recent_applications"`
	AverageScore       int          `json:"average_score"`
	VerdictChart       []ChartPoint `json:"verdict_chart"`
	JobChart           []ChartPoint `json:"job_chart"`
	DailyChart         []DailyPoint `json:"daily_chart"`
	ScoreRanges        []ScoreRange `json:"score_ranges"`
}

// Histogram buckets, highest first. Each entry is the bucket's lower bound.
var scoreRanges = []struct {
	label string
	floor int
}{
	{"90-100", 90},
	{"80-89", 80},
	{"70-79", 70},
	{"60-69", 60},
	{"50-59", 50},
	{"0-49", math.MinInt},
}

// BuildDashboard aggregates jobs and applications relative to now.
func BuildDashboard(jobs []*Job, apps []*Application, now time.Time) Dashboard {
	d := Dashboard{
		TotalJobs:         len(jobs),
		TotalApplications: len(apps),
	}

	weekAgo := now.AddDate(0, 0, -7)
	perJob := make(map[string]int, len(jobs))
	ranges := make([]int, len(scoreRanges))
	days := make([]DailyPoint, 7)
	dayIndex := make(map[string]int, 7)
	for i := range days {
		day := now.AddDate(0, 0, i-6)
		key := day.Format(time.DateOnly)
		days[i] = DailyPoint{Date: key, Name: day.Format("Mon")}
		dayIndex[key] = i
	}

	sum := 0
	for _, a := range apps {
		switch a.Verdict {
		case VerdictHigh:
			d.HighMatches++
		case VerdictMedium:
			d.MediumMatches++
		case VerdictLow:
			d.LowMatches++
		}
		if !a.CreatedAt.Before(weekAgo) {
			d.RecentApplications++
		}
		if i, ok := dayIndex[a.CreatedAt.In(now.Location()).Format(time.DateOnly)]; ok {
			days[i].Applications++
		}
		for i, r := range scoreRanges {
			if a.Score >= r.floor {
				ranges[i]++
				break
			}
		}
		perJob[a.JobID]++
		sum += a.Score
	}

	if len(apps) > 0 {
		d.AverageScore = int(math.Round(float64(sum) / float64(len(apps))))
	}

	d.VerdictChart = []ChartPoint{
		{Name: string(VerdictHigh), Value: d.HighMatches, Color: "#10b981"},
		{Name: string(VerdictMedium), Value: d.MediumMatches, Color: "#f59e0b"},
		{Name: string(VerdictLow), Value: d.LowMatches, Color: "#ef4444"},
	}

	d.JobChart = make([]ChartPoint, 0, len(jobs))
	for _, j := range jobs {
		d.JobChart = append(d.JobChart, ChartPoint{Name: truncateTitle(j.Title), Value: perJob[j.ID]})
	}

	d.DailyChart = days
	d.ScoreRanges = make([]ScoreRange, len(scoreRanges))
	for i, r := range scoreRanges {
		d.ScoreRanges[i] = ScoreRange{Range: r.label, Count: ranges[i]}
	}
	return d
}

func truncateTitle(title string) string {
	r := []rune(title)
	if len(r) <= jobTitleChartWidth {
		return title
	}
	return string(r[:jobTitleChartWidth]) + "..."
}
