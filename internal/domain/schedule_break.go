package domain

import "time"

type BreakType string

const (
	BreakTypeMeal     BreakType = "meal"
	BreakTypeRest     BreakType = "rest"
	BreakTypePersonal BreakType = "personal"
	BreakTypeOther    BreakType = "other"
)

type BreakParentType string

const (
	BreakParentEmployee          BreakParentType = "employee"
	BreakParentTemplateDay       BreakParentType = "template_day"
	BreakParentWeeklyScheduleDay BreakParentType = "weekly_schedule_day"
)

// BreakParentRef: 休息时间段的归属。员工级别的休息时间对每个工作日都生效，
// 因此 Weekday 只在 template_day 和 weekly_schedule_day 两种归属下有意义
type BreakParentRef struct {
	Type    BreakParentType `json:"parentType"`
	ID      int64           `json:"parentID"`
	Weekday *int32          `json:"weekday,omitempty"`
}

type ScheduleBreak struct {
	ID                 int64          `json:"id"`
	Parent             BreakParentRef `json:"parent"`
	Name               string         `json:"name"`
	StartTime          string         `json:"startTime"`
	EndTime            string         `json:"endTime"`
	BreakType          BreakType      `json:"breakType"`
	IsPaid             bool           `json:"isPaid"`
	IsRequired         bool           `json:"isRequired"`
	IsFlexible         bool           `json:"isFlexible"`
	FlexibilityMinutes int32          `json:"flexibilityMinutes"`
	SortOrder          int32          `json:"sortOrder"`
	CreatedAt          time.Time      `json:"createdAt"`
	Version            int32          `json:"-"`
}
