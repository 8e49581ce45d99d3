package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

// Locker: 批量写入期间的按 key 互斥，防止两个并发的批量操作交错写入同一个员工
type Locker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Planner struct {
	store PlannerStore
	locks Locker
}

func NewPlanner(store PlannerStore, locks Locker) *Planner {
	return &Planner{store: store, locks: locks}
}

// ValidateTemplate 检查模板是否完整定义了 7 天，且每个工作日的时间窗口合法
func ValidateTemplate(tpl *domain.ScheduleTemplate) error {
	for i, day := range tpl.Days {
		if day.Weekday != int32(i) {
			return fmt.Errorf("%w: 第 %d 天的 weekday 应为 %d", ErrIncompleteTemplate, i, i)
		}

		if !day.IsWorkingDay {
			continue
		}

		window, err := interval.ParseWindow(day.StartTime, day.EndTime)
		if err != nil {
			return fmt.Errorf("%w: 第 %d 天: %v", ErrIncompleteTemplate, i, err)
		}

		// 旧版单段休息如果填了，必须落在工作时间之内
		if day.BreakStartTime != "" || day.BreakEndTime != "" {
			breakIv, err := interval.ParseWindow(day.BreakStartTime, day.BreakEndTime)
			if err != nil {
				return fmt.Errorf("%w: 第 %d 天的休息时间: %v", ErrIncompleteTemplate, i, err)
			}
			if !interval.Contains(window, breakIv) {
				return fmt.Errorf("%w: 第 %d 天的休息时间超出了工作时间", ErrIncompleteTemplate, i)
			}
		}
	}

	return nil
}

// ApplyTemplate 将模板的 7 天配置批量应用为多个员工的默认排班。
// 每个员工独立处理，单个员工的失败不会中断整个批次，
// 调用方总能拿到一份汇总结果用于展示部分成功
func (p *Planner) ApplyTemplate(ctx context.Context, templateID int64, employeeIDs []int64, createdBy string) (*domain.BulkApplyResult, error) {
	tpl, err := p.store.GetScheduleTemplate(templateID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: id=%d", ErrTemplateNotFound, templateID)
		default:
			return nil, err
		}
	}

	if err := ValidateTemplate(tpl); err != nil {
		return nil, err
	}

	result := &domain.BulkApplyResult{
		Summary:  domain.BulkApplySummary{Total: len(employeeIDs)},
		Failures: []domain.BulkApplyFailure{},
	}

	for _, employeeID := range employeeIDs {
		if err := p.applyToEmployee(ctx, tpl, employeeID); err != nil {
			result.Summary.Failed++
			result.Failures = append(result.Failures, domain.BulkApplyFailure{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		result.Summary.Successful++
	}

	return result, nil
}

func (p *Planner) applyToEmployee(ctx context.Context, tpl *domain.ScheduleTemplate, employeeID int64) error {
	lockKey := fmt.Sprintf("apply:employee:%d", employeeID)
	acquired, err := p.locks.Acquire(ctx, lockKey)
	if err != nil {
		return err
	}
	if !acquired {
		return errors.New("该员工正在被其他批量操作处理")
	}
	defer func() {
		_ = p.locks.Release(ctx, lockKey)
	}()

	if _, err := p.store.GetEmployeeByID(employeeID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, employeeID)
		default:
			return err
		}
	}

	var days [7]*domain.DayScheduleConfig
	for i, day := range tpl.Days {
		days[i] = &domain.DayScheduleConfig{
			IsWorkingDay: day.IsWorkingDay,
			StartTime:    day.StartTime,
			EndTime:      day.EndTime,
		}
	}

	return p.store.ReplaceEmployeeDefaultSchedule(employeeID, days)
}

// PlanifyYear 为某个员工规划一整年：逐周（1..52 或 53）分配同一个模板。
// skipExistingWeeks 为 true 时已有分配的周会被跳过并单独计数，
// 否则按最后写入胜出的规则覆盖。单周的失败不会中断后续周的处理
func (p *Planner) PlanifyYear(ctx context.Context, employeeID int64, year int32, templateID int64, createdBy string, skipExistingWeeks bool) (*domain.YearPlanResult, error) {
	if _, err := p.store.GetEmployeeByID(employeeID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, employeeID)
		default:
			return nil, err
		}
	}

	if _, err := p.store.GetScheduleTemplate(templateID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: id=%d", ErrTemplateNotFound, templateID)
		default:
			return nil, err
		}
	}

	lockKey := fmt.Sprintf("planify:%d:%d", employeeID, year)
	acquired, err := p.locks.Acquire(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors.New("该员工的年度排班正在进行中")
	}
	defer func() {
		_ = p.locks.Release(ctx, lockKey)
	}()

	weeks := WeeksInYear(year)
	result := &domain.YearPlanResult{
		TotalWeeksProcessed: int(weeks),
	}

	for week := int32(1); week <= weeks; week++ {
		if skipExistingWeeks {
			_, err := p.store.GetWeeklySchedule(employeeID, year, week)
			switch {
			case err == nil:
				// 该周已有分配，既不算成功也不算失败
				result.Skipped++
				continue
			case errors.Is(err, sql.ErrNoRows):
				// 该周尚未分配，继续处理
			default:
				result.Failed++
				result.Failures = append(result.Failures, domain.YearPlanFailure{WeekNumber: week, Reason: err.Error()})
				continue
			}
		}

		ws := &domain.WeeklySchedule{
			EmployeeID: employeeID,
			Year:       year,
			WeekNumber: week,
			TemplateID: templateID,
			CreatedBy:  createdBy,
		}
		if err := p.store.UpsertWeeklySchedule(ws); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, domain.YearPlanFailure{WeekNumber: week, Reason: err.Error()})
			continue
		}
		result.Successful++
	}

	return result, nil
}
