package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    LeaderboardPeriod
		wantErr bool
	}{
		{"", PeriodAllTime, false},
		{"daily", PeriodDaily, false},
		{"Weekly", PeriodWeekly, false},
		{"MONTHLY", PeriodMonthly, false},
		{"all-time", PeriodAllTime, false},
		{"alltime", PeriodAllTime, false},
		{"  daily  ", PeriodDaily, false},
		{"yearly", "", true},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				var domainErr *DomainError
				assert.True(t, errors.As(err, &domainErr))
				assert.Equal(t, CodeInvalidPeriod, domainErr.Code)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowStart(t *testing.T) {
	// A Wednesday afternoon.
	now := time.Date(2025, time.March, 12, 15, 30, 45, 0, time.UTC)

	daily := PeriodDaily.WindowStart(now)
	assert.NotNil(t, daily)
	assert.Equal(t, time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), *daily)

	weekly := PeriodWeekly.WindowStart(now)
	assert.NotNil(t, weekly)
	// Weeks start on Sunday.
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), *weekly)
	assert.Equal(t, time.Sunday, weekly.Weekday())

	monthly := PeriodMonthly.WindowStart(now)
	assert.NotNil(t, monthly)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *monthly)

	assert.Nil(t, PeriodAllTime.WindowStart(now))
}

func TestWindowStartOnSunday(t *testing.T) {
	sunday := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)
	weekly := PeriodWeekly.WindowStart(sunday)
	assert.NotNil(t, weekly)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), *weekly)
}
