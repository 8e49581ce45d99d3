package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.id,
			e.full_name,
			e.employee_code,
			e.email,
			e.is_active,
			e.created_at,
			e.version,
			eds.weekday,
			eds.is_working_day,
			eds.start_time,
			eds.end_time
		FROM employees e
		LEFT JOIN employee_default_schedules eds ON e.id = eds.employee_id
		ORDER BY e.id, eds.weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employeesMap := make(map[int64]*domain.Employee)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID           int64
			FullName     string
			EmployeeCode string
			Email        string
			IsActive     bool
			CreatedAt    time.Time
			Version      int32

			Weekday      sql.NullInt32
			IsWorkingDay sql.NullBool
			StartTime    sql.NullString
			EndTime      sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.FullName,
			&row.EmployeeCode,
			&row.Email,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
			&row.IsWorkingDay,
			&row.StartTime,
			&row.EndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := employeesMap[row.ID]; !exists {
			employeesMap[row.ID] = &domain.Employee{
				ID:           row.ID,
				FullName:     row.FullName,
				EmployeeCode: row.EmployeeCode,
				Email:        row.Email,
				IsActive:     row.IsActive,
				CreatedAt:    row.CreatedAt,
				Version:      row.Version,
			}
			order = append(order, row.ID)
		}

		// weekday 为空说明该员工没有配置任何默认排班
		if !row.Weekday.Valid {
			continue
		}

		employeesMap[row.ID].DefaultSchedule[row.Weekday.Int32] = &domain.DayScheduleConfig{
			IsWorkingDay: row.IsWorkingDay.Bool,
			StartTime:    row.StartTime.String,
			EndTime:      row.EndTime.String,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(order))
	for _, id := range order {
		employees = append(employees, employeesMap[id])
	}

	return employees, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.full_name,
			e.employee_code,
			e.email,
			e.is_active,
			e.created_at,
			e.version,
			eds.weekday,
			eds.is_working_day,
			eds.start_time,
			eds.end_time
		FROM employees e
		LEFT JOIN employee_default_schedules eds ON e.id = eds.employee_id
		WHERE e.id = $1
		ORDER BY eds.weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emp := &domain.Employee{ID: id}
	found := false

	for rows.Next() {
		var row struct {
			FullName     string
			EmployeeCode string
			Email        string
			IsActive     bool
			CreatedAt    time.Time
			Version      int32

			Weekday      sql.NullInt32
			IsWorkingDay sql.NullBool
			StartTime    sql.NullString
			EndTime      sql.NullString
		}

		dst := []any{
			&row.FullName,
			&row.EmployeeCode,
			&row.Email,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
			&row.IsWorkingDay,
			&row.StartTime,
			&row.EndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			emp.FullName = row.FullName
			emp.EmployeeCode = row.EmployeeCode
			emp.Email = row.Email
			emp.IsActive = row.IsActive
			emp.CreatedAt = row.CreatedAt
			emp.Version = row.Version
			found = true
		}

		if !row.Weekday.Valid {
			continue
		}

		emp.DefaultSchedule[row.Weekday.Int32] = &domain.DayScheduleConfig{
			IsWorkingDay: row.IsWorkingDay.Bool,
			StartTime:    row.StartTime.String,
			EndTime:      row.EndTime.String,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return emp, nil
}

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (full_name, employee_code, email, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	params := []any{emp.FullName, emp.EmployeeCode, emp.Email, emp.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&emp.ID, &emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

// ReplaceEmployeeDefaultSchedule 在一个事务中整体替换员工的默认排班，
// 保证并发的批量应用不会留下交错的部分写入
func (r *Repository) ReplaceEmployeeDefaultSchedule(employeeID int64, days [7]*domain.DayScheduleConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM employee_default_schedules WHERE employee_id = $1`, employeeID); err != nil {
		return err
	}

	query := `
		INSERT INTO employee_default_schedules (employee_id, weekday, is_working_day, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	for weekday, day := range days {
		if day == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, employeeID, weekday, day.IsWorkingDay, day.StartTime, day.EndTime); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
