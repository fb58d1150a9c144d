package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedsRollover_SameDay(t *testing.T) {
	viewed := time.Date(2023, 3, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2023, 3, 10, 21, 0, 0, 0, time.UTC)

	assert.False(t, needsRollover(viewed, now))
}

func TestNeedsRollover_NextCalendarDay(t *testing.T) {
	// Less than 24h apart, but the calendar day changed.
	viewed := time.Date(2023, 3, 10, 23, 30, 0, 0, time.UTC)
	now := time.Date(2023, 3, 11, 0, 15, 0, 0, time.UTC)

	assert.True(t, needsRollover(viewed, now))
}

func TestNeedsRollover_OverTwentyFourHours(t *testing.T) {
	viewed := time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)
	now := viewed.Add(25 * time.Hour)

	assert.True(t, needsRollover(viewed, now))
}

func TestGapDays_NoGap(t *testing.T) {
	viewed := time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, gapDays(viewed, viewed.Add(12*time.Hour)))
	assert.Empty(t, gapDays(viewed, viewed.Add(36*time.Hour)), "one skipped midnight leaves no full gap day")
}

func TestGapDays_ZeroFillsSkippedDays(t *testing.T) {
	viewed := time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)
	now := viewed.AddDate(0, 0, 4)

	days := gapDays(viewed, now)
	assert.Equal(t, []string{"2023-03-11", "2023-03-12", "2023-03-13"}, days)
}
