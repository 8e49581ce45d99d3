package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		wantYear int32
		wantWeek int32
	}{
		{name: "年中的周一", date: date(2025, time.March, 10), wantYear: 2025, wantWeek: 11},
		{name: "跨年：2024-12-30 属于 2025 年第 1 周", date: date(2024, time.December, 30), wantYear: 2025, wantWeek: 1},
		{name: "跨年：2027-01-01 属于 2026 年第 53 周", date: date(2027, time.January, 1), wantYear: 2026, wantWeek: 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := WeekOf(tt.date)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantWeek, week)
		})
	}
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, int32(52), WeeksInYear(2025))
	assert.Equal(t, int32(53), WeeksInYear(2026))
	assert.Equal(t, int32(53), WeeksInYear(2020))
	assert.Equal(t, int32(52), WeeksInYear(2024))
}

func TestWeekdayIndex(t *testing.T) {
	// 2025-03-09 是周日
	assert.Equal(t, int32(0), WeekdayIndex(date(2025, time.March, 9)))
	assert.Equal(t, int32(1), WeekdayIndex(date(2025, time.March, 10)))
	assert.Equal(t, int32(6), WeekdayIndex(date(2025, time.March, 15)))
}
