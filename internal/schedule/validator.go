package schedule

import (
	"fmt"
	"math"
	"sort"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

// ValidateBreaks 检查一组休息时间段是否合法：每一段都必须落在工作时间窗口内，
// 且相邻两段在弹性容差下不能重叠。检查结果作为数据返回，不作为错误抛出，
// 方便调用方在冲突报告中聚合
func ValidateBreaks(window interval.Interval, breaks []*domain.ScheduleBreak) *ValidationResult {
	return validate(window, breaks, nil)
}

// ValidateBreaksWithRequired 在 ValidateBreaks 的基础上额外检查必选休息是否齐全，
// 只在应用默认休息等带有"必选集合"语境的场景下调用
func ValidateBreaksWithRequired(window interval.Interval, breaks []*domain.ScheduleBreak, requiredNames []string) *ValidationResult {
	return validate(window, breaks, requiredNames)
}

func validate(window interval.Interval, breaks []*domain.ScheduleBreak, requiredNames []string) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []domain.ScheduleFinding{}}

	// 第一步：检查每一段休息是否都落在工作时间窗口内
	type parsedBreak struct {
		br *domain.ScheduleBreak
		iv interval.Interval
	}
	parsed := make([]parsedBreak, 0, len(breaks))

	for _, br := range breaks {
		iv, err := interval.ParseWindow(br.StartTime, br.EndTime)
		if err != nil {
			result.Errors = append(result.Errors, domain.ScheduleFinding{
				Kind:    FindingCorruptSchedule,
				Message: fmt.Sprintf("休息时间 %q 的时间段无效: %v", br.Name, err),
			})
			continue
		}

		if !interval.Contains(window, iv) {
			result.Errors = append(result.Errors, domain.ScheduleFinding{
				Kind: FindingBreakOutsideWorkWindow,
				Message: fmt.Sprintf("休息时间 %q (%s-%s) 超出了工作时间 %s-%s",
					br.Name, br.StartTime, br.EndTime, interval.Format(window.Start), interval.Format(window.End)),
			})
		}

		parsed = append(parsed, parsedBreak{br: br, iv: iv})
	}

	// 第二步：按开始时间排序后检查相邻两段是否重叠，
	// 只要其中一段是弹性休息，容差就取两者弹性分钟数的较大值
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].iv.Start < parsed[j].iv.Start
	})

	for i := 0; i+1 < len(parsed); i++ {
		a, b := parsed[i], parsed[i+1]

		tolerance := 0
		if a.br.IsFlexible || b.br.IsFlexible {
			tolerance = int(max(a.br.FlexibilityMinutes, b.br.FlexibilityMinutes))
		}

		if interval.Overlaps(a.iv, b.iv, tolerance) {
			result.Errors = append(result.Errors, domain.ScheduleFinding{
				Kind: FindingBreakOverlap,
				Message: fmt.Sprintf("休息时间 %q (%s-%s) 和 %q (%s-%s) 存在重叠",
					a.br.Name, a.br.StartTime, a.br.EndTime, b.br.Name, b.br.StartTime, b.br.EndTime),
			})
		}
	}

	// 第三步：检查必选休息是否都出现在最终集合中
	for _, name := range requiredNames {
		found := false
		for _, br := range breaks {
			if br.Name == name {
				found = true
				break
			}
		}
		if !found {
			result.Errors = append(result.Errors, domain.ScheduleFinding{
				Kind:    FindingMissingRequiredBreak,
				Message: fmt.Sprintf("缺少必选休息时间 %q", name),
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ComputeWorkTimeStats 根据工作时间窗口和休息时间计算工时统计。
// 带薪休息计入有效工时，不带薪休息从有效工时中扣除。
// 内部计算全部使用分钟，只在返回值上四舍五入到两位小数
func ComputeWorkTimeStats(window interval.Interval, breaks []*domain.ScheduleBreak) domain.WorkTimeStats {
	totalMinutes := window.Duration()

	paidMinutes := 0
	unpaidMinutes := 0
	for _, br := range breaks {
		iv, err := interval.ParseWindow(br.StartTime, br.EndTime)
		if err != nil {
			continue
		}
		if br.IsPaid {
			paidMinutes += iv.Duration()
		} else {
			unpaidMinutes += iv.Duration()
		}
	}

	return domain.WorkTimeStats{
		TotalHours:     roundHours(totalMinutes),
		PaidHours:      roundHours(paidMinutes),
		UnpaidHours:    roundHours(unpaidMinutes),
		EffectiveHours: roundHours(totalMinutes - unpaidMinutes),
	}
}

func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
