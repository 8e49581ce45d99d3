package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
)

func (h *Handler) weeklyScheduleKey(w http.ResponseWriter, r *http.Request) (int32, int32, bool) {
	year, err := strconv.ParseInt(chi.URLParam(r, "year"), 10, 32)
	if err != nil {
		h.errorResponse(w, r, "年份无效")
		return 0, 0, false
	}

	week, err := strconv.ParseInt(chi.URLParam(r, "week"), 10, 32)
	if err != nil || week < 1 || int32(week) > schedule.WeeksInYear(int32(year)) {
		h.errorResponse(w, r, "周数无效")
		return 0, 0, false
	}

	return int32(year), int32(week), true
}

// AssignWeeklySchedule 为 (员工, 年, 周) 分配模板。
// 同一个 key 的重复分配会直接覆盖先前的分配
func (h *Handler) AssignWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	year, week, ok := h.weeklyScheduleKey(w, r)
	if !ok {
		return
	}

	var req struct {
		TemplateID int64  `json:"templateID" validate:"required"`
		CreatedBy  string `json:"createdBy" validate:"required"`
		Notes      string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ws := &domain.WeeklySchedule{
		EmployeeID: emp.ID,
		Year:       year,
		WeekNumber: week,
		TemplateID: req.TemplateID,
		Notes:      req.Notes,
		CreatedBy:  req.CreatedBy,
	}

	if err := h.repository.UpsertWeeklySchedule(ws); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "weekly_schedules_template_id_fkey":
				h.errorResponse(w, r, "排班模板不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知员工本周排班已更新
	if tpl, err := h.repository.GetScheduleTemplate(req.TemplateID); err == nil {
		h.publishMail(r, domain.MailMessage{
			Type: "weekly_schedule_assigned",
			To:   emp.Email,
			Data: domain.WeeklyScheduleAssignedMailData{
				FullName:     emp.FullName,
				Year:         year,
				WeekNumber:   week,
				TemplateName: tpl.Name,
				CreatedBy:    req.CreatedBy,
			},
		})
	}

	h.successResponse(w, r, "周排班分配成功", ws)
}

func (h *Handler) UnassignWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	year, week, ok := h.weeklyScheduleKey(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteWeeklySchedule(emp.ID, year, week); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "周排班删除成功", nil)
}

func (h *Handler) GetWeeklySchedulesByYear(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	yearParam := r.URL.Query().Get("year")
	year, err := strconv.ParseInt(yearParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "年份无效")
		return
	}

	schedules, err := h.repository.GetWeeklySchedulesByYear(emp.ID, int32(year))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "该年份没有周排班", []*domain.WeeklySchedule{})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	data := struct {
		Year        int32                    `json:"year"`
		WeeksInYear int32                    `json:"weeksInYear"`
		Schedules   []*domain.WeeklySchedule `json:"schedules"`
	}{
		Year:        int32(year),
		WeeksInYear: schedule.WeeksInYear(int32(year)),
		Schedules:   schedules,
	}

	h.successResponse(w, r, "获取周排班列表成功", data)
}
