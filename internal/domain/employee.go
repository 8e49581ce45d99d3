package domain

import (
	"time"
)

// DayScheduleConfig: 某一个星期几的工作时间配置
type DayScheduleConfig struct {
	IsWorkingDay bool   `json:"isWorkingDay"`
	StartTime    string `json:"startTime"` // "HH:MM"
	EndTime      string `json:"endTime"`   // "HH:MM"
}

type Employee struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	EmployeeCode string    `json:"employeeCode"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"isActive"`
	// DefaultSchedule 的下标为星期几（0=周日..6=周六），nil 表示该天没有配置
	DefaultSchedule [7]*DayScheduleConfig `json:"defaultSchedule"`
	CreatedAt       time.Time             `json:"createdAt"`
	Version         int32                 `json:"-"`
}
