package domain

import "time"

// WeeklySchedule: 指定某个员工在某一年的某一周使用哪个模板，
// (employeeID, year, weekNumber) 唯一，后写入的分配会覆盖先前的分配
type WeeklySchedule struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Year       int32     `json:"year"`
	WeekNumber int32     `json:"weekNumber"`
	TemplateID int64     `json:"templateID"`
	Notes      string    `json:"notes"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
