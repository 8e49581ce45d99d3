package handler

type ContextKey string

var (
	EmployeeCtx         ContextKey = "employee"
	ScheduleTemplateCtx ContextKey = "scheduleTemplate"
	ScheduleBreakCtx    ContextKey = "scheduleBreak"
)
