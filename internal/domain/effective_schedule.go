package domain

type ScheduleSource string

const (
	ScheduleSourceWeekly          ScheduleSource = "weekly_schedule"
	ScheduleSourceEmployeeDefault ScheduleSource = "employee_default"
	ScheduleSourceNone            ScheduleSource = "none"
)

// WorkTimeStats 中的小时数都已经四舍五入到两位小数，内部计算始终使用分钟
type WorkTimeStats struct {
	TotalHours     float64 `json:"totalHours"`
	PaidHours      float64 `json:"paidHours"`
	UnpaidHours    float64 `json:"unpaidHours"`
	EffectiveHours float64 `json:"effectiveHours"`
}

// ScheduleFinding: 对某个排班的数据质量检查结果，作为数据返回而不是错误抛出
type ScheduleFinding struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// EffectiveSchedule: 解析 (员工, 日期) 得到的唯一生效排班，每次查询都重新计算，不做缓存
type EffectiveSchedule struct {
	Source        ScheduleSource    `json:"source"`
	SourceID      int64             `json:"sourceId"`
	IsWorkingDay  bool              `json:"isWorkingDay"`
	WorkStartTime string            `json:"workStartTime"`
	WorkEndTime   string            `json:"workEndTime"`
	Breaks        []*ScheduleBreak  `json:"breaks"`
	Findings      []ScheduleFinding `json:"findings,omitempty"`
}
