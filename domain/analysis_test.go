package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{72.4, 72},
		{72.5, 73},
		{-3, 0},
		{-0.4, 0},
		{100.4, 100},
		{150, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.in), "ClampScore(%v)", tt.in)
	}
}

func TestCleanSkills(t *testing.T) {
	t.Run("filters and trims", func(t *testing.T) {
		got := CleanSkills([]any{" Go ", "", "   ", 42, nil, "SQL", map[string]any{}})
		assert.Equal(t, []string{"Go", "SQL"}, got)
	})

	t.Run("caps at fifteen", func(t *testing.T) {
		in := make([]any, 0, 40)
		for i := 0; i < 40; i++ {
			in = append(in, strings.Repeat("x", i+1))
		}
		got := CleanSkills(in)
		require.Len(t, got, MaxSkills)
		assert.Equal(t, "x", got[0])
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, CleanSkills(nil))
	})
}

func TestParseVerdict(t *testing.T) {
	for _, ok := range []string{"High", "Medium", "Low"} {
		v, valid := ParseVerdict(ok)
		assert.True(t, valid)
		assert.Equal(t, Verdict(ok), v)
	}
	for _, bad := range []string{"high", "", "Excellent", " Low"} {
		_, valid := ParseVerdict(bad)
		assert.False(t, valid, bad)
	}
}

func TestScoreBucket(t *testing.T) {
	assert.Equal(t, "high", ScoreBucket(80))
	assert.Equal(t, "high", ScoreBucket(100))
	assert.Equal(t, "medium", ScoreBucket(79))
	assert.Equal(t, "medium", ScoreBucket(50))
	assert.Equal(t, "low", ScoreBucket(49))
	assert.Equal(t, "low", ScoreBucket(0))
}

func TestMarkAnalyzedOnlyOnce(t *testing.T) {
	app := NewApplication("job-1", "Ada", "https://cdn/resumes/1.pdf", "cv.pdf", "resume")
	assert.Equal(t, VerdictLow, app.Verdict)
	assert.Empty(t, app.MatchedSkills)
	assert.False(t, app.Analyzed())

	res := AnalysisResult{Score: 88, Verdict: VerdictMedium, MatchedSkills: []string{"Go"}, MissingSkills: []string{}}
	now := time.Now()
	require.NoError(t, app.MarkAnalyzed(res, "", "jd text", now))
	assert.Equal(t, 88, app.Score)
	assert.Equal(t, "resume", app.ResumeText)
	assert.Equal(t, "jd text", app.JDText)
	assert.True(t, app.Analyzed())

	err := app.MarkAnalyzed(res, "", "jd text", now)
	assert.True(t, errors.Is(err, ErrAlreadyAnalyzed))
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		want    Format
		wantErr error
		msg     string
	}{
		{name: "pdf", file: "cv.PDF", size: 10, want: FormatPDF},
		{name: "txt", file: "notes.txt", size: MaxFileSize, want: FormatTXT},
		{name: "too large", file: "cv.pdf", size: MaxFileSize + 1, wantErr: ErrFileTooLarge},
		{name: "doc", file: "cv.doc", size: 10, wantErr: ErrUnsupportedFormat,
			msg: "DOC files are not supported. Please convert to DOCX format."},
		{name: "other", file: "photo.png", size: 10, wantErr: ErrUnsupportedFormat,
			msg: "Unsupported file format: png. Supported formats: PDF, DOCX, PPTX, XLSX, TXT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpload(tt.file, tt.size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.msg != "" {
					assert.Equal(t, tt.msg, err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
