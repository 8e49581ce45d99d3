package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

func mustWindow(t *testing.T, start, end string) interval.Interval {
	t.Helper()
	window, err := interval.ParseWindow(start, end)
	require.NoError(t, err)
	return window
}

func newBreak(name, start, end string) *domain.ScheduleBreak {
	return &domain.ScheduleBreak{
		Name:      name,
		StartTime: start,
		EndTime:   end,
		BreakType: domain.BreakTypeRest,
	}
}

func findingKinds(findings []domain.ScheduleFinding) []string {
	kinds := make([]string, 0, len(findings))
	for _, f := range findings {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func TestValidateBreaks(t *testing.T) {
	window := mustWindow(t, "09:00", "17:00")

	t.Run("合法的休息时间", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("上午休息", "10:30", "10:45"),
			newBreak("午餐", "12:00", "13:00"),
		})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("超出工作时间窗口", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("早餐", "08:00", "08:30"),
		})
		assert.False(t, result.Valid)
		assert.Contains(t, findingKinds(result.Errors), FindingBreakOutsideWorkWindow)
	})

	t.Run("与窗口边界重合是允许的", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("早会", "09:00", "09:15"),
		})
		assert.True(t, result.Valid)
	})

	t.Run("相邻休息重叠", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("休息一", "10:00", "10:20"),
			newBreak("休息二", "10:15", "10:30"),
		})
		assert.False(t, result.Valid)
		assert.Contains(t, findingKinds(result.Errors), FindingBreakOverlap)
	})

	t.Run("边界相接不算重叠", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("休息一", "10:00", "10:15"),
			newBreak("休息二", "10:15", "10:30"),
		})
		assert.True(t, result.Valid)
	})

	t.Run("弹性休息允许容差内的重叠", func(t *testing.T) {
		flexible := newBreak("弹性休息", "10:00", "10:20")
		flexible.IsFlexible = true
		flexible.FlexibilityMinutes = 10

		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			flexible,
			newBreak("固定休息", "10:15", "10:30"),
		})
		assert.True(t, result.Valid)
	})

	t.Run("乱序输入的重叠也能检出", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("休息二", "10:15", "10:30"),
			newBreak("休息一", "10:00", "10:20"),
		})
		assert.False(t, result.Valid)
	})

	t.Run("时间段无法解析", func(t *testing.T) {
		result := ValidateBreaks(window, []*domain.ScheduleBreak{
			newBreak("坏数据", "25:00", "26:00"),
		})
		assert.False(t, result.Valid)
		assert.Contains(t, findingKinds(result.Errors), FindingCorruptSchedule)
	})
}

func TestValidateBreaksWithRequired(t *testing.T) {
	window := mustWindow(t, "09:00", "17:00")
	breaks := []*domain.ScheduleBreak{
		newBreak("上午休息", "10:30", "10:45"),
	}

	result := ValidateBreaksWithRequired(window, breaks, []string{"上午休息", "午餐"})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, FindingMissingRequiredBreak, result.Errors[0].Kind)
}

func TestComputeWorkTimeStats(t *testing.T) {
	window := mustWindow(t, "09:00", "17:00")

	t.Run("一小时不带薪午餐", func(t *testing.T) {
		meal := newBreak("午餐", "12:00", "13:00")
		meal.IsPaid = false

		stats := ComputeWorkTimeStats(window, []*domain.ScheduleBreak{meal})
		assert.Equal(t, 8.0, stats.TotalHours)
		assert.Equal(t, 0.0, stats.PaidHours)
		assert.Equal(t, 1.0, stats.UnpaidHours)
		assert.Equal(t, 7.0, stats.EffectiveHours)
	})

	t.Run("带薪休息不扣减有效工时", func(t *testing.T) {
		rest := newBreak("上午休息", "10:30", "10:45")
		rest.IsPaid = true
		meal := newBreak("午餐", "12:00", "12:30")

		stats := ComputeWorkTimeStats(window, []*domain.ScheduleBreak{rest, meal})
		assert.Equal(t, 8.0, stats.TotalHours)
		assert.Equal(t, 0.25, stats.PaidHours)
		assert.Equal(t, 0.5, stats.UnpaidHours)
		assert.Equal(t, 7.5, stats.EffectiveHours)
	})

	t.Run("没有休息时间", func(t *testing.T) {
		stats := ComputeWorkTimeStats(window, nil)
		assert.Equal(t, 8.0, stats.TotalHours)
		assert.Equal(t, 8.0, stats.EffectiveHours)
	})

	t.Run("无法解析的休息时间被忽略", func(t *testing.T) {
		bad := newBreak("坏数据", "", "")
		stats := ComputeWorkTimeStats(window, []*domain.ScheduleBreak{bad})
		assert.Equal(t, 8.0, stats.EffectiveHours)
	})
}
