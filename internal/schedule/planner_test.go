package schedule

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

func TestValidateTemplate(t *testing.T) {
	t.Run("完整的模板", func(t *testing.T) {
		store := newFakeStore()
		tpl := addTemplate(store, 10, "09:00", "17:00")
		assert.NoError(t, ValidateTemplate(tpl))
	})

	t.Run("weekday 与下标不一致", func(t *testing.T) {
		store := newFakeStore()
		tpl := addTemplate(store, 10, "09:00", "17:00")
		tpl.Days[2].Weekday = 5
		assert.ErrorIs(t, ValidateTemplate(tpl), ErrIncompleteTemplate)
	})

	t.Run("工作日的时间窗口非法", func(t *testing.T) {
		store := newFakeStore()
		tpl := addTemplate(store, 10, "09:00", "17:00")
		tpl.Days[1].EndTime = "08:00"
		assert.ErrorIs(t, ValidateTemplate(tpl), ErrIncompleteTemplate)
	})

	t.Run("非工作日不检查时间窗口", func(t *testing.T) {
		store := newFakeStore()
		tpl := addTemplate(store, 10, "09:00", "17:00")
		// 周日不是工作日，起止时间为空不影响校验
		assert.Empty(t, tpl.Days[0].StartTime)
		assert.NoError(t, ValidateTemplate(tpl))
	})

	t.Run("旧版休息必须落在工作时间内", func(t *testing.T) {
		store := newFakeStore()
		tpl := addTemplate(store, 10, "09:00", "17:00")
		tpl.Days[1].BreakStartTime = "18:00"
		tpl.Days[1].BreakEndTime = "19:00"
		assert.ErrorIs(t, ValidateTemplate(tpl), ErrIncompleteTemplate)
	})
}

func TestApplyTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("模板不存在是致命错误", func(t *testing.T) {
		planner := NewPlanner(newFakeStore(), newFakeLocker())
		_, err := planner.ApplyTemplate(ctx, 404, []int64{1}, "admin")
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("部分员工失败不中断批次", func(t *testing.T) {
		store := newFakeStore()
		addTemplate(store, 10, "07:00", "15:30")
		for id := int64(1); id <= 4; id++ {
			addEmployee(store, id, 1, 2, 3, 4, 5)
		}

		result, err := NewPlanner(store, newFakeLocker()).
			ApplyTemplate(ctx, 10, []int64{1, 2, 3, 4, 99}, "admin")
		require.NoError(t, err)
		assert.Equal(t, 5, result.Summary.Total)
		assert.Equal(t, 4, result.Summary.Successful)
		assert.Equal(t, 1, result.Summary.Failed)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, int64(99), result.Failures[0].EmployeeID)

		// 汇总结果序列化后 summary 与 failures 分为两段，字段名是对外契约
		payload, err := json.Marshal(result)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"summary":{"total":5,"successful":4,"failed":1},"failures":[{"employeeId":99,"reason":"员工不存在: id=99"}]}`,
			string(payload))
	})

	t.Run("应用后员工的默认排班被整体替换", func(t *testing.T) {
		store := newFakeStore()
		addTemplate(store, 10, "07:00", "15:30")
		addEmployee(store, 1, 1, 2, 3, 4, 5)

		_, err := NewPlanner(store, newFakeLocker()).ApplyTemplate(ctx, 10, []int64{1}, "admin")
		require.NoError(t, err)

		days := store.defaultSchedules[1]
		require.NotNil(t, days[1])
		assert.Equal(t, "07:00", days[1].StartTime)
		assert.Equal(t, "15:30", days[1].EndTime)
		require.NotNil(t, days[0])
		assert.False(t, days[0].IsWorkingDay)
	})

	t.Run("员工被其他批量操作锁定", func(t *testing.T) {
		store := newFakeStore()
		addTemplate(store, 10, "09:00", "17:00")
		addEmployee(store, 1, 1)

		locks := newFakeLocker()
		_, err := locks.Acquire(ctx, "apply:employee:1")
		require.NoError(t, err)

		result, err := NewPlanner(store, locks).ApplyTemplate(ctx, 10, []int64{1}, "admin")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Failed)
	})
}

func TestPlanifyYear(t *testing.T) {
	ctx := context.Background()

	t.Run("员工不存在", func(t *testing.T) {
		store := newFakeStore()
		addTemplate(store, 10, "09:00", "17:00")

		_, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 404, 2025, 10, "admin", false)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("模板不存在", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)

		_, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 1, 2025, 404, "admin", false)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("覆盖整年", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)
		addTemplate(store, 10, "09:00", "17:00")

		result, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 1, 2025, 10, "admin", false)
		require.NoError(t, err)
		assert.Equal(t, 52, result.TotalWeeksProcessed)
		assert.Equal(t, 52, result.Successful)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 0, result.Skipped)

		ws, err := store.GetWeeklySchedule(1, 2025, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(10), ws.TemplateID)
		assert.Equal(t, "admin", ws.CreatedBy)
	})

	t.Run("53 周的年份", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)
		addTemplate(store, 10, "09:00", "17:00")

		result, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 1, 2026, 10, "admin", false)
		require.NoError(t, err)
		assert.Equal(t, 53, result.TotalWeeksProcessed)
		assert.Equal(t, 53, result.Successful)
	})

	t.Run("跳过已有分配的周", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)
		addTemplate(store, 10, "09:00", "17:00")
		addTemplate(store, 20, "13:00", "21:30")
		existing := store.addWeeklySchedule(&domain.WeeklySchedule{
			EmployeeID: 1, Year: 2025, WeekNumber: 10, TemplateID: 20,
		})

		result, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 1, 2025, 10, "admin", true)
		require.NoError(t, err)
		assert.Equal(t, 51, result.Successful)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 0, result.Failed)

		// 已有的分配保持不变
		ws, err := store.GetWeeklySchedule(1, 2025, 10)
		require.NoError(t, err)
		assert.Equal(t, existing.TemplateID, ws.TemplateID)
	})

	t.Run("不跳过时按最后写入胜出覆盖", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)
		addTemplate(store, 10, "09:00", "17:00")
		addTemplate(store, 20, "13:00", "21:30")
		store.addWeeklySchedule(&domain.WeeklySchedule{
			EmployeeID: 1, Year: 2025, WeekNumber: 10, TemplateID: 20,
		})

		result, err := NewPlanner(store, newFakeLocker()).PlanifyYear(ctx, 1, 2025, 10, "admin", false)
		require.NoError(t, err)
		assert.Equal(t, 52, result.Successful)

		ws, err := store.GetWeeklySchedule(1, 2025, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), ws.TemplateID)
	})

	t.Run("年度排班已在进行中", func(t *testing.T) {
		store := newFakeStore()
		addEmployee(store, 1, 1)
		addTemplate(store, 10, "09:00", "17:00")

		locks := newFakeLocker()
		_, err := locks.Acquire(ctx, "planify:1:2025")
		require.NoError(t, err)

		_, err = NewPlanner(store, locks).PlanifyYear(ctx, 1, 2025, 10, "admin", false)
		assert.Error(t, err)
	})
}
