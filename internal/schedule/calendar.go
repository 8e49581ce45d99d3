package schedule

import "time"

// 周数统一采用 ISO-8601 的约定：周一为一周的第一天，
// 第一周为包含当年第一个周四的那一周，一年可能有 52 或 53 周

func WeekOf(date time.Time) (int32, int32) {
	year, week := date.ISOWeek()
	return int32(year), int32(week)
}

// WeeksInYear 返回某一年的 ISO 周数。12 月 28 日一定落在当年的最后一周
func WeeksInYear(year int32) int32 {
	_, week := time.Date(int(year), time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return int32(week)
}

// WeekdayIndex 返回 0=周日..6=周六 的下标，和模板中 Days 数组的下标一致
func WeekdayIndex(date time.Time) int32 {
	return int32(date.Weekday())
}
