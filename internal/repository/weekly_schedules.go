package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

// UpsertWeeklySchedule 以 (employee_id, year, week_number) 为 key 插入或覆盖分配，
// 后写入的分配直接替换先前的分配，不做合并
func (r *Repository) UpsertWeeklySchedule(ws *domain.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO weekly_schedules (employee_id, year, week_number, template_id, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, year, week_number) DO UPDATE
		SET
			template_id = EXCLUDED.template_id,
			notes = EXCLUDED.notes,
			created_by = EXCLUDED.created_by,
			version = weekly_schedules.version + 1
		RETURNING id, created_at, version
	`

	params := []any{ws.EmployeeID, ws.Year, ws.WeekNumber, ws.TemplateID, ws.Notes, ws.CreatedBy}
	dst := []any{&ws.ID, &ws.CreatedAt, &ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWeeklySchedule(employeeID int64, year int32, weekNumber int32) (*domain.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, template_id, notes, created_by, created_at, version
		FROM weekly_schedules
		WHERE employee_id = $1 AND year = $2 AND week_number = $3
	`

	ws := &domain.WeeklySchedule{
		EmployeeID: employeeID,
		Year:       year,
		WeekNumber: weekNumber,
	}

	dst := []any{&ws.ID, &ws.TemplateID, &ws.Notes, &ws.CreatedBy, &ws.CreatedAt, &ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, year, weekNumber).Scan(dst...); err != nil {
		return nil, err
	}

	return ws, nil
}

func (r *Repository) GetWeeklySchedulesByYear(employeeID int64, year int32) ([]*domain.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, week_number, template_id, notes, created_by, created_at, version
		FROM weekly_schedules
		WHERE employee_id = $1 AND year = $2
		ORDER BY week_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.WeeklySchedule{}
	for rows.Next() {
		ws := &domain.WeeklySchedule{
			EmployeeID: employeeID,
			Year:       year,
		}
		dst := []any{&ws.ID, &ws.WeekNumber, &ws.TemplateID, &ws.Notes, &ws.CreatedBy, &ws.CreatedAt, &ws.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) DeleteWeeklySchedule(employeeID int64, year int32, weekNumber int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM weekly_schedules
		WHERE employee_id = $1 AND year = $2 AND week_number = $3
	`

	if _, err := r.dbpool.ExecContext(ctx, query, employeeID, year, weekNumber); err != nil {
		return err
	}

	return nil
}
