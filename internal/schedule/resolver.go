package schedule

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// dayConfig: 某个来源对某一天给出的排班配置
type dayConfig struct {
	source       domain.ScheduleSource
	sourceID     int64
	isWorkingDay bool
	startTime    string
	endTime      string
	breaks       []*domain.ScheduleBreak
}

// Resolve 解析 (员工, 日期) 的生效排班。优先级从高到低依次为：
// 该周的周排班分配、员工默认排班，都没有命中时返回 source 为 none 的非工作日。
// 只要底层数据不变，同样的输入总是得到同样的结果
func (r *Resolver) Resolve(employeeID int64, date time.Time) (*domain.EffectiveSchedule, error) {
	emp, err := r.store.GetEmployeeByID(employeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, employeeID)
		default:
			return nil, err
		}
	}

	// 按优先级依次尝试各个来源，第一个命中的来源胜出
	sources := []func(*domain.Employee, time.Time) (*dayConfig, error){
		r.fromWeeklySchedule,
		r.fromEmployeeDefault,
	}

	var cfg *dayConfig
	for _, source := range sources {
		cfg, err = source(emp, date)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			break
		}
	}

	if cfg == nil {
		return &domain.EffectiveSchedule{
			Source:       domain.ScheduleSourceNone,
			IsWorkingDay: false,
			Breaks:       []*domain.ScheduleBreak{},
		}, nil
	}

	if !cfg.isWorkingDay {
		return &domain.EffectiveSchedule{
			Source:       cfg.source,
			SourceID:     cfg.sourceID,
			IsWorkingDay: false,
			Breaks:       []*domain.ScheduleBreak{},
		}, nil
	}

	window, err := interval.ParseWindow(cfg.startTime, cfg.endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: 员工 %d 在 %s 的工作时间无效: %v",
			ErrCorruptSchedule, employeeID, date.Format("2006-01-02"), err)
	}

	// 校验结果只作为参考信息附在返回值上，有问题的休息时间仍然会被返回
	validation := ValidateBreaks(window, cfg.breaks)

	return &domain.EffectiveSchedule{
		Source:        cfg.source,
		SourceID:      cfg.sourceID,
		IsWorkingDay:  true,
		WorkStartTime: cfg.startTime,
		WorkEndTime:   cfg.endTime,
		Breaks:        cfg.breaks,
		Findings:      validation.Errors,
	}, nil
}

// StatsFor 为一个已解析的生效排班计算工时统计，非工作日的统计全部为零
func StatsFor(es *domain.EffectiveSchedule) domain.WorkTimeStats {
	if es == nil || !es.IsWorkingDay {
		return domain.WorkTimeStats{}
	}

	window, err := interval.ParseWindow(es.WorkStartTime, es.WorkEndTime)
	if err != nil {
		return domain.WorkTimeStats{}
	}

	return ComputeWorkTimeStats(window, es.Breaks)
}

func (r *Resolver) fromWeeklySchedule(emp *domain.Employee, date time.Time) (*dayConfig, error) {
	year, week := WeekOf(date)

	ws, err := r.store.GetWeeklySchedule(emp.ID, year, week)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}

	tpl, err := r.store.GetScheduleTemplate(ws.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 周排班引用了不存在的模板，属于数据损坏，只影响这一次解析
			return nil, fmt.Errorf("%w: 周排班 %d 引用的模板 %d 不存在", ErrCorruptSchedule, ws.ID, ws.TemplateID)
		default:
			return nil, err
		}
	}

	// 缺天或时间窗口非法的模板和模板不存在一样，都属于数据损坏
	if err := ValidateTemplate(tpl); err != nil {
		return nil, fmt.Errorf("%w: 周排班 %d 引用的模板 %d 配置不完整: %v", ErrCorruptSchedule, ws.ID, ws.TemplateID, err)
	}

	weekday := WeekdayIndex(date)
	day := tpl.Days[weekday]

	if !day.IsWorkingDay {
		return &dayConfig{
			source:       domain.ScheduleSourceWeekly,
			sourceID:     ws.ID,
			isWorkingDay: false,
		}, nil
	}

	breaks, err := r.breaksForWeeklyDay(ws, tpl, weekday, day)
	if err != nil {
		return nil, err
	}

	return &dayConfig{
		source:       domain.ScheduleSourceWeekly,
		sourceID:     ws.ID,
		isWorkingDay: true,
		startTime:    day.StartTime,
		endTime:      day.EndTime,
		breaks:       breaks,
	}, nil
}

// breaksForWeeklyDay 按优先级收集周排班某一天的休息时间：
// 周排班自己的当天覆盖 > 模板当天的休息配置 > 模板当天的旧版单段休息
func (r *Resolver) breaksForWeeklyDay(ws *domain.WeeklySchedule, tpl *domain.ScheduleTemplate, weekday int32, day domain.TemplateDay) ([]*domain.ScheduleBreak, error) {
	breaks, err := r.store.GetBreaksByParent(domain.BreakParentRef{
		Type:    domain.BreakParentWeeklyScheduleDay,
		ID:      ws.ID,
		Weekday: &weekday,
	})
	if err != nil {
		return nil, err
	}
	if len(breaks) > 0 {
		return breaks, nil
	}

	breaks, err = r.store.GetBreaksByParent(domain.BreakParentRef{
		Type:    domain.BreakParentTemplateDay,
		ID:      tpl.ID,
		Weekday: &weekday,
	})
	if err != nil {
		return nil, err
	}
	if len(breaks) > 0 {
		return breaks, nil
	}

	return legacyBreaks(day), nil
}

func (r *Resolver) fromEmployeeDefault(emp *domain.Employee, date time.Time) (*dayConfig, error) {
	weekday := WeekdayIndex(date)

	day := emp.DefaultSchedule[weekday]
	if day == nil {
		return nil, nil
	}

	if !day.IsWorkingDay {
		return &dayConfig{
			source:       domain.ScheduleSourceEmployeeDefault,
			sourceID:     emp.ID,
			isWorkingDay: false,
		}, nil
	}

	breaks, err := r.store.GetBreaksByParent(domain.BreakParentRef{
		Type: domain.BreakParentEmployee,
		ID:   emp.ID,
	})
	if err != nil {
		return nil, err
	}

	return &dayConfig{
		source:       domain.ScheduleSourceEmployeeDefault,
		sourceID:     emp.ID,
		isWorkingDay: true,
		startTime:    day.StartTime,
		endTime:      day.EndTime,
		breaks:       breaks,
	}, nil
}

// legacyBreaks 将模板中旧版的单段休息转换为结构化的休息时间
func legacyBreaks(day domain.TemplateDay) []*domain.ScheduleBreak {
	if day.BreakStartTime == "" || day.BreakEndTime == "" {
		return []*domain.ScheduleBreak{}
	}

	return []*domain.ScheduleBreak{
		{
			Name:      "午休",
			StartTime: day.BreakStartTime,
			EndTime:   day.BreakEndTime,
			BreakType: domain.BreakTypeMeal,
			IsPaid:    false,
			SortOrder: 1,
		},
	}
}
