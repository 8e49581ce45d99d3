package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

// 休息时间归 parent 独占，parent 删除时由外键级联删除这里的行

func (r *Repository) GetBreaksByParent(parent domain.BreakParentRef) ([]*domain.ScheduleBreak, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, start_time, end_time, break_type, is_paid, is_required, is_flexible, flexibility_minutes, sort_order, created_at, version
		FROM schedule_breaks
		WHERE parent_type = $1 AND parent_id = $2 AND (weekday = $3 OR ($3::int IS NULL AND weekday IS NULL))
		ORDER BY sort_order, start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query, parent.Type, parent.ID, parent.Weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breaks := []*domain.ScheduleBreak{}
	for rows.Next() {
		br := &domain.ScheduleBreak{Parent: parent}
		dst := []any{
			&br.ID,
			&br.Name,
			&br.StartTime,
			&br.EndTime,
			&br.BreakType,
			&br.IsPaid,
			&br.IsRequired,
			&br.IsFlexible,
			&br.FlexibilityMinutes,
			&br.SortOrder,
			&br.CreatedAt,
			&br.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		breaks = append(breaks, br)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breaks, nil
}

func (r *Repository) GetScheduleBreakByID(id int64) (*domain.ScheduleBreak, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT parent_type, parent_id, weekday, name, start_time, end_time, break_type, is_paid, is_required, is_flexible, flexibility_minutes, sort_order, created_at, version
		FROM schedule_breaks
		WHERE id = $1
	`

	br := &domain.ScheduleBreak{ID: id}
	var weekday sql.NullInt32

	dst := []any{
		&br.Parent.Type,
		&br.Parent.ID,
		&weekday,
		&br.Name,
		&br.StartTime,
		&br.EndTime,
		&br.BreakType,
		&br.IsPaid,
		&br.IsRequired,
		&br.IsFlexible,
		&br.FlexibilityMinutes,
		&br.SortOrder,
		&br.CreatedAt,
		&br.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if weekday.Valid {
		br.Parent.Weekday = &weekday.Int32
	}

	return br, nil
}

func (r *Repository) CreateScheduleBreak(br *domain.ScheduleBreak) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedule_breaks (parent_type, parent_id, weekday, name, start_time, end_time, break_type, is_paid, is_required, is_flexible, flexibility_minutes, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, version
	`

	params := []any{
		br.Parent.Type,
		br.Parent.ID,
		br.Parent.Weekday,
		br.Name,
		br.StartTime,
		br.EndTime,
		br.BreakType,
		br.IsPaid,
		br.IsRequired,
		br.IsFlexible,
		br.FlexibilityMinutes,
		br.SortOrder,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&br.ID, &br.CreatedAt, &br.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateScheduleBreak(br *domain.ScheduleBreak) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE schedule_breaks
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			break_type = $4,
			is_paid = $5,
			is_required = $6,
			is_flexible = $7,
			flexibility_minutes = $8,
			sort_order = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	params := []any{
		br.Name,
		br.StartTime,
		br.EndTime,
		br.BreakType,
		br.IsPaid,
		br.IsRequired,
		br.IsFlexible,
		br.FlexibilityMinutes,
		br.SortOrder,
		br.ID,
		br.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&br.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteScheduleBreak(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedule_breaks WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ReplaceBreaksForParent 在一个事务中整体替换某个 parent 的休息时间，
// 应用默认休息时使用
func (r *Repository) ReplaceBreaksForParent(parent domain.BreakParentRef, breaks []*domain.ScheduleBreak) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := `
		DELETE FROM schedule_breaks
		WHERE parent_type = $1 AND parent_id = $2 AND (weekday = $3 OR ($3::int IS NULL AND weekday IS NULL))
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, parent.Type, parent.ID, parent.Weekday); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO schedule_breaks (parent_type, parent_id, weekday, name, start_time, end_time, break_type, is_paid, is_required, is_flexible, flexibility_minutes, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, version
	`
	for _, br := range breaks {
		br.Parent = parent
		params := []any{
			parent.Type,
			parent.ID,
			parent.Weekday,
			br.Name,
			br.StartTime,
			br.EndTime,
			br.BreakType,
			br.IsPaid,
			br.IsRequired,
			br.IsFlexible,
			br.FlexibilityMinutes,
			br.SortOrder,
		}
		if err := tx.QueryRowContext(ctx, insertQuery, params...).Scan(&br.ID, &br.CreatedAt, &br.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
