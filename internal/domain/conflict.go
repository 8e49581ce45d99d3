package domain

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type DayConflict struct {
	Date   string            `json:"date"`
	Errors []ScheduleFinding `json:"errors"`
}

type ConflictReport struct {
	DateRange     DateRange     `json:"dateRange"`
	ConflictCount int           `json:"conflictCount"`
	HasConflicts  bool          `json:"hasConflicts"`
	Conflicts     []DayConflict `json:"conflicts"`
}

// BulkApplyResult: 将模板批量应用到多个员工的汇总结果，部分失败不会中断整个批次
type BulkApplyFailure struct {
	EmployeeID int64  `json:"employeeId"`
	Reason     string `json:"reason"`
}

type BulkApplySummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type BulkApplyResult struct {
	Summary  BulkApplySummary   `json:"summary"`
	Failures []BulkApplyFailure `json:"failures"`
}

type YearPlanFailure struct {
	WeekNumber int32  `json:"weekNumber"`
	Reason     string `json:"reason"`
}

type YearPlanResult struct {
	TotalWeeksProcessed int               `json:"totalWeeksProcessed"`
	Successful          int               `json:"successful"`
	Failed              int               `json:"failed"`
	Skipped             int               `json:"skipped"`
	Failures            []YearPlanFailure `json:"failures,omitempty"`
}
