package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 45, 0, time.UTC)
	from, to := DayWindow(now)

	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), to)
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFrom time.Time
	}{
		{
			name:     "周三属于本周",
			now:      time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), // 周三
			wantFrom: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),  // 周一
		},
		{
			name:     "周一是窗口起点",
			now:      time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "周日算本周最后一天",
			now:      time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC), // 周日
			wantFrom: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "跨月的一周",
			now:      time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC), // 周二
			wantFrom: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := WeekWindow(tt.now)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantFrom.AddDate(0, 0, 7), to)
		})
	}
}
