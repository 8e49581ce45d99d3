package schedule

import (
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

const (
	defaultRestName      = "上午休息"
	defaultMealName      = "午餐"
	afternoonRestName    = "下午休息"
	defaultRestMinutes   = 15
	shortMealMinutes     = 30
	standardMealMinutes  = 60
	restFlexibleTolerant = 10
)

// GenerateDefaultBreaks 为给定的工作时间窗口生成一组标准休息时间：
// 上午一次带薪小休、接近窗口中点的一次不带薪午餐、下午一次带薪小休，
// 时长随窗口长度缩放。生成结果保证落在窗口内且两两不重叠，
// 因此对同一个窗口运行校验一定通过
func GenerateDefaultBreaks(workStartTime, workEndTime string) ([]*domain.ScheduleBreak, error) {
	window, err := interval.ParseWindow(workStartTime, workEndTime)
	if err != nil {
		return nil, err
	}

	total := window.Duration()

	// 窗口太短时不安排休息
	if total < 120 {
		return []*domain.ScheduleBreak{}, nil
	}

	// 不足五小时的窗口只在中点安排一次午餐
	if total < 300 {
		meal := placeBreak(window, total/2, shortMealMinutes)
		return []*domain.ScheduleBreak{
			newDefaultBreak(defaultMealName, meal, domain.BreakTypeMeal, false, true, 1),
		}, nil
	}

	mealMinutes := shortMealMinutes
	if total >= 480 {
		mealMinutes = standardMealMinutes
	}

	morning := placeBreak(window, total/4, defaultRestMinutes)
	meal := placeBreak(window, total/2, mealMinutes)
	afternoon := placeBreak(window, total*3/4, defaultRestMinutes)

	breaks := []*domain.ScheduleBreak{
		newDefaultBreak(defaultRestName, morning, domain.BreakTypeRest, true, false, 1),
		newDefaultBreak(defaultMealName, meal, domain.BreakTypeMeal, false, true, 2),
		newDefaultBreak(afternoonRestName, afternoon, domain.BreakTypeRest, true, false, 3),
	}
	breaks[0].IsFlexible = true
	breaks[0].FlexibilityMinutes = restFlexibleTolerant
	breaks[2].IsFlexible = true
	breaks[2].FlexibilityMinutes = restFlexibleTolerant

	return breaks, nil
}

// placeBreak 以窗口内的 offset 分钟为中心放置一段休息，
// 对齐到 5 分钟并保证不越过窗口边界
func placeBreak(window interval.Interval, offset, duration int) interval.Interval {
	start := window.Start + offset - duration/2
	start -= start % 5

	if start < window.Start {
		start = window.Start
	}
	if start+duration > window.End {
		start = window.End - duration
	}

	return interval.Interval{Start: start, End: start + duration}
}

func newDefaultBreak(name string, iv interval.Interval, breakType domain.BreakType, isPaid, isRequired bool, sortOrder int32) *domain.ScheduleBreak {
	return &domain.ScheduleBreak{
		Name:       name,
		StartTime:  interval.Format(iv.Start),
		EndTime:    interval.Format(iv.End),
		BreakType:  breakType,
		IsPaid:     isPaid,
		IsRequired: isRequired,
		SortOrder:  sortOrder,
	}
}

// DefaultBreakTemplates 返回标准工作日（09:00-17:00）下的默认休息配置，
// 供 dashboard 的"默认休息模板"展示使用
func DefaultBreakTemplates() []*domain.ScheduleBreak {
	breaks, _ := GenerateDefaultBreaks("09:00", "17:00")
	return breaks
}
