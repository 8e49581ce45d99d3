package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

func TestAnalyzeConflicts(t *testing.T) {
	t.Run("结束日期早于开始日期", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)

		_, err := NewResolver(store).AnalyzeConflicts(1, monday, monday.AddDate(0, 0, -1))
		assert.Error(t, err)
	})

	t.Run("员工不存在", func(t *testing.T) {
		resolver := NewResolver(newFakeStore())
		_, err := resolver.AnalyzeConflicts(404, monday, monday)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("没有冲突的一周", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1, 2, 3, 4, 5)
		store.addBreaks(
			domain.BreakParentRef{Type: domain.BreakParentEmployee, ID: 1},
			newBreak("午餐", "12:00", "13:00"),
		)

		report, err := NewResolver(store).AnalyzeConflicts(1, monday, monday.AddDate(0, 0, 6))
		require.NoError(t, err)
		assert.False(t, report.HasConflicts)
		assert.Equal(t, 0, report.ConflictCount)
		assert.Empty(t, report.Conflicts)
		assert.Equal(t, "2025-03-10", report.DateRange.StartDate)
		assert.Equal(t, "2025-03-16", report.DateRange.EndDate)
	})

	t.Run("只有出现重叠的那天被记为冲突", func(t *testing.T) {
		store := newFakeStore()
		// 只有周一是工作日，员工级别的两段休息互相重叠
		addEmployee(store, 1, 1)
		store.addBreaks(
			domain.BreakParentRef{Type: domain.BreakParentEmployee, ID: 1},
			newBreak("休息一", "10:00", "10:20"),
			newBreak("休息二", "10:15", "10:30"),
		)

		// 扫描两周，范围内恰好有两个周一
		report, err := NewResolver(store).AnalyzeConflicts(1, monday, monday.AddDate(0, 0, 13))
		require.NoError(t, err)
		assert.True(t, report.HasConflicts)
		assert.Equal(t, 2, report.ConflictCount)
		require.Len(t, report.Conflicts, 2)
		assert.Equal(t, "2025-03-10", report.Conflicts[0].Date)
		assert.Equal(t, "2025-03-17", report.Conflicts[1].Date)
		assert.Equal(t, FindingBreakOverlap, report.Conflicts[0].Errors[0].Kind)
	})

	t.Run("单天的数据损坏不中断扫描", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1, 2, 3, 4, 5)
		// 第 11 周的周排班引用了不存在的模板，但第 12 周没有周排班
		store.addWeeklySchedule(&domain.WeeklySchedule{
			EmployeeID: 1, Year: 2025, WeekNumber: 11, TemplateID: 999,
		})

		report, err := NewResolver(store).AnalyzeConflicts(1, monday, monday.AddDate(0, 0, 13))
		require.NoError(t, err)
		assert.True(t, report.HasConflicts)
		// 第 11 周的 7 天全部损坏，第 12 周回退到默认排班且没有冲突
		assert.Equal(t, 7, report.ConflictCount)
		for _, conflict := range report.Conflicts {
			assert.Equal(t, FindingCorruptSchedule, conflict.Errors[0].Kind)
		}
	})

	t.Run("单天范围", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)

		report, err := NewResolver(store).AnalyzeConflicts(1, monday, monday)
		require.NoError(t, err)
		assert.Equal(t, 0, report.ConflictCount)
	})
}
