package schedule

import (
	"errors"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

var (
	ErrEmployeeNotFound   = errors.New("员工不存在")
	ErrTemplateNotFound   = errors.New("排班模板不存在")
	ErrIncompleteTemplate = errors.New("模板必须定义全部 7 天的配置")
	ErrCorruptSchedule    = errors.New("排班数据已损坏")
)

// 数据质量检查结果的类型编码，前端依赖这些值，不能随意修改
const (
	FindingBreakOutsideWorkWindow = "break_outside_work_window"
	FindingBreakOverlap           = "break_overlap"
	FindingMissingRequiredBreak   = "missing_required_break"
	FindingCorruptSchedule        = "corrupt_schedule"
)

type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []domain.ScheduleFinding `json:"errors"`
}

// Store: Resolver 所依赖的只读查询，未命中时返回 sql.ErrNoRows
type Store interface {
	GetEmployeeByID(id int64) (*domain.Employee, error)
	GetScheduleTemplate(id int64) (*domain.ScheduleTemplate, error)
	GetWeeklySchedule(employeeID int64, year int32, weekNumber int32) (*domain.WeeklySchedule, error)
	GetBreaksByParent(parent domain.BreakParentRef) ([]*domain.ScheduleBreak, error)
}

// PlannerStore: 批量操作额外需要的写入，每个 key 的写入必须是原子的
type PlannerStore interface {
	Store
	ReplaceEmployeeDefaultSchedule(employeeID int64, days [7]*domain.DayScheduleConfig) error
	UpsertWeeklySchedule(ws *domain.WeeklySchedule) error
}
