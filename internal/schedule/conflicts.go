package schedule

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// AnalyzeConflicts 在 [startDate, endDate]（含两端）范围内逐天解析并校验排班，
// 收集存在校验错误的日期。某一天的数据损坏只会记为该天的冲突，扫描会继续
func (r *Resolver) AnalyzeConflicts(employeeID int64, startDate, endDate time.Time) (*domain.ConflictReport, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("结束日期 %s 不能早于开始日期 %s", endDate.Format(dateLayout), startDate.Format(dateLayout))
	}

	// 员工不存在对整个分析是致命的，先检查一次
	if _, err := r.store.GetEmployeeByID(employeeID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, employeeID)
		default:
			return nil, err
		}
	}

	report := &domain.ConflictReport{
		DateRange: domain.DateRange{
			StartDate: startDate.Format(dateLayout),
			EndDate:   endDate.Format(dateLayout),
		},
		Conflicts: []domain.DayConflict{},
	}

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		es, err := r.Resolve(employeeID, date)
		if err != nil {
			// 单天的解析失败不中断扫描，记为该天的冲突
			report.Conflicts = append(report.Conflicts, domain.DayConflict{
				Date: date.Format(dateLayout),
				Errors: []domain.ScheduleFinding{
					{Kind: FindingCorruptSchedule, Message: err.Error()},
				},
			})
			continue
		}

		if len(es.Findings) > 0 {
			report.Conflicts = append(report.Conflicts, domain.DayConflict{
				Date:   date.Format(dateLayout),
				Errors: es.Findings,
			})
		}
	}

	report.ConflictCount = len(report.Conflicts)
	report.HasConflicts = report.ConflictCount > 0

	return report, nil
}
