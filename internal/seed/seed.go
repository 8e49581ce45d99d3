package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/utils"
)

func workingDays(start, end string) [7]domain.TemplateDay {
	var days [7]domain.TemplateDay
	for weekday := int32(0); weekday < 7; weekday++ {
		days[weekday] = domain.TemplateDay{Weekday: weekday}
		if weekday >= 1 && weekday <= 5 {
			days[weekday].IsWorkingDay = true
			days[weekday].StartTime = start
			days[weekday].EndTime = end
		}
	}
	return days
}

// builtinTemplates 是演示环境使用的几套常见排班
func builtinTemplates() []*domain.ScheduleTemplate {
	standard := &domain.ScheduleTemplate{
		Name:        "标准办公",
		Description: "周一到周五 09:00-17:00，午休 13:00-14:00",
		IsActive:    true,
		Days:        workingDays("09:00", "17:00"),
	}
	for weekday := 1; weekday <= 5; weekday++ {
		standard.Days[weekday].BreakStartTime = "13:00"
		standard.Days[weekday].BreakEndTime = "14:00"
	}

	early := &domain.ScheduleTemplate{
		Name:        "早班",
		Description: "周一到周五 07:00-15:30",
		IsActive:    true,
		Days:        workingDays("07:00", "15:30"),
	}

	late := &domain.ScheduleTemplate{
		Name:        "晚班",
		Description: "周一到周五 13:00-21:30",
		IsActive:    true,
		Days:        workingDays("13:00", "21:30"),
	}

	return []*domain.ScheduleTemplate{standard, early, late}
}

// SeedTemplates 插入内置模板，并为每个工作日生成默认的休息时间
func SeedTemplates(r *repository.Repository) []*domain.ScheduleTemplate {
	templates := builtinTemplates()
	inserted := make([]*domain.ScheduleTemplate, 0, len(templates))

	for _, tpl := range templates {
		if err := r.CreateScheduleTemplate(tpl); err != nil {
			slog.Error("无法插入模板", "name", tpl.Name, "error", err)
			continue
		}

		for _, day := range tpl.Days {
			if !day.IsWorkingDay {
				continue
			}

			breaks, err := schedule.GenerateDefaultBreaks(day.StartTime, day.EndTime)
			if err != nil {
				slog.Error("无法生成默认休息时间", "name", tpl.Name, "weekday", day.Weekday, "error", err)
				continue
			}

			weekday := day.Weekday
			parent := domain.BreakParentRef{
				Type:    domain.BreakParentTemplateDay,
				ID:      tpl.ID,
				Weekday: &weekday,
			}
			for _, br := range breaks {
				br.Parent = parent
			}
			if err := r.ReplaceBreaksForParent(parent, breaks); err != nil {
				slog.Error("无法插入默认休息时间", "name", tpl.Name, "weekday", day.Weekday, "error", err)
			}
		}

		inserted = append(inserted, tpl)
	}

	slog.Info("插入模板完成", "count", len(inserted))
	return inserted
}

// SeedEmployees 插入 n 个随机员工
func SeedEmployees(r *repository.Repository, n int, emailDomainName string) []*domain.Employee {
	employees := make([]*domain.Employee, 0, n)

	for i := 0; i < n; i++ {
		emp := utils.GenerateRandomEmployee(emailDomainName)
		if err := r.CreateEmployee(emp); err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}
		if err := r.ReplaceEmployeeDefaultSchedule(emp.ID, emp.DefaultSchedule); err != nil {
			slog.Error("无法写入员工默认排班", "employeeID", emp.ID, "error", err)
			continue
		}
		employees = append(employees, emp)
	}

	slog.Info("插入员工完成", "count", len(employees))
	return employees
}

// SeedWeeklySchedules 为每个员工随机安排最近几周的周排班，
// 大约三分之一的员工保持没有周排班的状态，用于演示回退到默认排班
func SeedWeeklySchedules(r *repository.Repository, employees []*domain.Employee, templates []*domain.ScheduleTemplate) {
	if len(templates) == 0 {
		slog.Error("没有可用的模板，跳过周排班")
		return
	}

	now := time.Now()
	count := 0

	for _, emp := range employees {
		if rand.Intn(3) == 0 {
			continue
		}

		for offset := 0; offset < 3; offset++ {
			year, week := schedule.WeekOf(now.AddDate(0, 0, offset*7))
			tpl := templates[rand.Intn(len(templates))]

			ws := &domain.WeeklySchedule{
				EmployeeID: emp.ID,
				Year:       year,
				WeekNumber: week,
				TemplateID: tpl.ID,
				CreatedBy:  "seed",
			}
			if err := r.UpsertWeeklySchedule(ws); err != nil {
				slog.Error("无法插入周排班", "employeeID", emp.ID, "error", err)
				continue
			}
			count++
		}
	}

	slog.Info("插入周排班完成", "count", count)
}

// SeedDemoData 一次性插入完整的演示数据
func SeedDemoData(r *repository.Repository, employeeCount int, emailDomainName string) {
	templates := SeedTemplates(r)
	employees := SeedEmployees(r, employeeCount, emailDomainName)
	SeedWeeklySchedules(r, employees, templates)

	slog.Info("插入演示数据完成")
}
