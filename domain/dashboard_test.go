package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC) // Friday
	jobs := []*Job{
		{ID: "j1", Title: "Backend Engineer"},
		{ID: "j2", Title: "Product Designer"},
		{ID: "j3", Title: "Short"},
	}
	apps := fixtureApps(now)

	d := BuildDashboard(jobs, apps, now)

	assert.Equal(t, 3, d.TotalJobs)
	assert.Equal(t, 4, d.TotalApplications)
	assert.Equal(t, 1, d.HighMatches)
	assert.Equal(t, 2, d.MediumMatches)
	assert.Equal(t, 1, d.LowMatches)
	assert.Equal(t, 2, d.RecentApplications)
	// (92+65+30+80)/4 = 66.75
	assert.Equal(t, 67, d.AverageScore)

	require.Len(t, d.VerdictChart, 3)
	assert.Equal(t, ChartPoint{Name: "High", Value: 1, Color: "#10b981"}, d.VerdictChart[0])

	assert.Equal(t, []ChartPoint{
		{Name: "Backend Enginee...", Value: 2},
		{Name: "Product Designe...", Value: 2},
		{Name: "Short", Value: 0},
	}, d.JobChart)

	require.Len(t, d.DailyChart, 7)
	assert.Equal(t, "Sat", d.DailyChart[0].Name)
	assert.Equal(t, "Fri", d.DailyChart[6].Name)
	assert.Equal(t, "2025-03-14", d.DailyChart[6].Date)
	assert.Equal(t, 1, d.DailyChart[6].Applications)
	assert.Equal(t, 1, d.DailyChart[3].Applications)

	assert.Equal(t, []ScoreRange{
		{"90-100", 1}, {"80-89", 1}, {"70-79", 0}, {"60-69", 1}, {"50-59", 0}, {"0-49", 1},
	}, d.ScoreRanges)
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, nil, time.Now())
	assert.Zero(t, d.AverageScore)
	assert.Len(t, d.DailyChart, 7)
	assert.Len(t, d.ScoreRanges, 6)
	assert.Empty(t, d.JobChart)
}
