package domain

import (
	"time"
)

// TemplateDay: 模板中某一个星期几的配置，Weekday 为 0=周日..6=周六
type TemplateDay struct {
	Weekday      int32  `json:"weekday"`
	IsWorkingDay bool   `json:"isWorkingDay"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	// 旧版数据中每天只支持一段休息时间，保留这一对字段以兼容历史数据
	BreakStartTime string `json:"breakStartTime,omitempty"`
	BreakEndTime   string `json:"breakEndTime,omitempty"`
}

type ScheduleTemplate struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"isActive"`
	Days        [7]TemplateDay `json:"days"`
	CreatedAt   time.Time      `json:"createdAt"`
	Version     int32          `json:"-"`
}
