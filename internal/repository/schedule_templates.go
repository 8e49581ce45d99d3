package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

// GetAllScheduleTemplates 查询所有模板，activeOnly 为 true 时只返回启用中的模板
func (r *Repository) GetAllScheduleTemplates(activeOnly bool) ([]*domain.ScheduleTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.id,
			st.name,
			st.description,
			st.is_active,
			st.created_at,
			st.version,
			std.weekday,
			std.is_working_day,
			std.start_time,
			std.end_time,
			std.break_start_time,
			std.break_end_time
		FROM schedule_templates st
		LEFT JOIN schedule_template_days std ON st.id = std.template_id
		WHERE ($1 = false OR st.is_active = true)
		ORDER BY st.id, std.weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templatesMap := make(map[int64]*domain.ScheduleTemplate)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID          int64
			Name        string
			Description string
			IsActive    bool
			CreatedAt   time.Time
			Version     int32

			Weekday        sql.NullInt32
			IsWorkingDay   sql.NullBool
			StartTime      sql.NullString
			EndTime        sql.NullString
			BreakStartTime sql.NullString
			BreakEndTime   sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.Description,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
			&row.IsWorkingDay,
			&row.StartTime,
			&row.EndTime,
			&row.BreakStartTime,
			&row.BreakEndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := templatesMap[row.ID]; !exists {
			templatesMap[row.ID] = &domain.ScheduleTemplate{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				IsActive:    row.IsActive,
				CreatedAt:   row.CreatedAt,
				Version:     row.Version,
			}
			order = append(order, row.ID)
		}

		if !row.Weekday.Valid {
			continue
		}

		templatesMap[row.ID].Days[row.Weekday.Int32] = domain.TemplateDay{
			Weekday:        row.Weekday.Int32,
			IsWorkingDay:   row.IsWorkingDay.Bool,
			StartTime:      row.StartTime.String,
			EndTime:        row.EndTime.String,
			BreakStartTime: row.BreakStartTime.String,
			BreakEndTime:   row.BreakEndTime.String,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]*domain.ScheduleTemplate, 0, len(order))
	for _, id := range order {
		templates = append(templates, templatesMap[id])
	}

	return templates, nil
}

func (r *Repository) GetScheduleTemplate(id int64) (*domain.ScheduleTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.name,
			st.description,
			st.is_active,
			st.created_at,
			st.version,
			std.weekday,
			std.is_working_day,
			std.start_time,
			std.end_time,
			std.break_start_time,
			std.break_end_time
		FROM schedule_templates st
		LEFT JOIN schedule_template_days std ON st.id = std.template_id
		WHERE st.id = $1
		ORDER BY std.weekday
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tpl := &domain.ScheduleTemplate{ID: id}
	found := false

	for rows.Next() {
		var row struct {
			Name        string
			Description string
			IsActive    bool
			CreatedAt   time.Time
			Version     int32

			Weekday        sql.NullInt32
			IsWorkingDay   sql.NullBool
			StartTime      sql.NullString
			EndTime        sql.NullString
			BreakStartTime sql.NullString
			BreakEndTime   sql.NullString
		}

		dst := []any{
			&row.Name,
			&row.Description,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
			&row.IsWorkingDay,
			&row.StartTime,
			&row.EndTime,
			&row.BreakStartTime,
			&row.BreakEndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			tpl.Name = row.Name
			tpl.Description = row.Description
			tpl.IsActive = row.IsActive
			tpl.CreatedAt = row.CreatedAt
			tpl.Version = row.Version
			found = true
		}

		if !row.Weekday.Valid {
			continue
		}

		tpl.Days[row.Weekday.Int32] = domain.TemplateDay{
			Weekday:        row.Weekday.Int32,
			IsWorkingDay:   row.IsWorkingDay.Bool,
			StartTime:      row.StartTime.String,
			EndTime:        row.EndTime.String,
			BreakStartTime: row.BreakStartTime.String,
			BreakEndTime:   row.BreakEndTime.String,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return tpl, nil
}

func (r *Repository) CreateScheduleTemplate(tpl *domain.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedule_templates (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, tpl.Name, tpl.Description, tpl.IsActive).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO schedule_template_days (template_id, weekday, is_working_day, start_time, end_time, break_start_time, break_end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, day := range tpl.Days {
		params := []any{tpl.ID, day.Weekday, day.IsWorkingDay, day.StartTime, day.EndTime, day.BreakStartTime, day.BreakEndTime}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateScheduleTemplate 更新模板元信息和 7 天配置，使用乐观锁防止并发覆盖
func (r *Repository) UpdateScheduleTemplate(tpl *domain.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE schedule_templates
		SET
			name = $1,
			description = $2,
			is_active = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`
	params := []any{tpl.Name, tpl.Description, tpl.IsActive, tpl.ID, tpl.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&tpl.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_template_days WHERE template_id = $1`, tpl.ID); err != nil {
		return err
	}

	query = `
		INSERT INTO schedule_template_days (template_id, weekday, is_working_day, start_time, end_time, break_start_time, break_end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, day := range tpl.Days {
		params := []any{tpl.ID, day.Weekday, day.IsWorkingDay, day.StartTime, day.EndTime, day.BreakStartTime, day.BreakEndTime}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteScheduleTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedule_templates WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
