package grader

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "example.com", want: "https://example.com"},
		{in: "http://example.com", want: "http://example.com"},
		{in: "https://example.com/path", want: "https://example.com/path"},
		{in: "  example.com/a ", want: "https://example.com/a"},
		{in: "ftp://example.com", want: "https://ftp://example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), tt.in)
	}
}

func TestNewFailureDefaults(t *testing.T) {
	t.Parallel()

	res := NewFailure("https://example.com", "", nil)
	assert.Equal(t, OutcomeFailure, res.Outcome)
	assert.Equal(t, ErrorKindUnexpected, res.ErrorKind)
	assert.Equal(t, "unknown error", res.Error)
	assert.False(t, res.OK())
	assert.Nil(t, res.Scores)
}

func TestNewSuccessCopiesScores(t *testing.T) {
	t.Parallel()

	scores := ScoreSet{Performance: 8, Overall: 7.5}
	res := NewSuccess("https://example.com", scores, RawMetrics{})
	scores.Overall = 1

	require.True(t, res.OK())
	assert.Equal(t, 7.5, res.Scores.Overall)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	transport := &AnalysisError{Kind: ErrorKindTransport, URL: "u", Err: StatusError(503)}
	wrapped := fmt.Errorf("outer: %w", transport)

	assert.Equal(t, ErrorKindTransport, KindOf(wrapped))
	assert.Equal(t, ErrorKindUnexpected, KindOf(errors.New("boom")))
	assert.True(t, errors.Is(wrapped, ErrBadStatus))
	assert.Contains(t, transport.Error(), "503")
}

func TestCategoryAccessors(t *testing.T) {
	t.Parallel()

	scores := ScoreSet{Performance: 1, Design: 2, SEO: 3, Accessibility: 4}
	metrics := RawMetrics{
		Performance:   MetricGroup{"a": 1},
		Design:        MetricGroup{"b": 2},
		SEO:           MetricGroup{"c": 3},
		Accessibility: MetricGroup{"d": 4},
	}
	for i, c := range Categories {
		assert.Equal(t, float64(i+1), scores.Category(c))
		assert.Len(t, metrics.Group(c), 1)
	}
	assert.Zero(t, scores.Category("nope"))
	assert.Nil(t, metrics.Group("nope"))
}

func TestSystemClock(t *testing.T) {
	t.Parallel()

	var clk Clock = SystemClock{}
	before := time.Now()
	first := clk.Now()
	second := clk.Now()

	assert.False(t, first.Before(before))
	assert.GreaterOrEqual(t, second.Sub(first), time.Duration(0))
}
