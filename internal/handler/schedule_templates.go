package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
)

type templateDayRequest struct {
	Weekday        int32  `json:"weekday" validate:"min=0,max=6"`
	IsWorkingDay   bool   `json:"isWorkingDay"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	BreakStartTime string `json:"breakStartTime"`
	BreakEndTime   string `json:"breakEndTime"`
}

// buildTemplateDays 将请求中的 7 天配置按 weekday 归位，
// 同一个 weekday 出现两次或缺失都视为模板不完整
func buildTemplateDays(reqDays []templateDayRequest) ([7]domain.TemplateDay, error) {
	var days [7]domain.TemplateDay
	var seen [7]bool

	for _, day := range reqDays {
		if seen[day.Weekday] {
			return days, errors.New("模板中同一个星期几出现了多次")
		}
		seen[day.Weekday] = true
		days[day.Weekday] = domain.TemplateDay{
			Weekday:        day.Weekday,
			IsWorkingDay:   day.IsWorkingDay,
			StartTime:      day.StartTime,
			EndTime:        day.EndTime,
			BreakStartTime: day.BreakStartTime,
			BreakEndTime:   day.BreakEndTime,
		}
	}

	for weekday, ok := range seen {
		if !ok {
			return days, fmt.Errorf("模板缺少星期 %d 的配置", weekday)
		}
	}

	return days, nil
}

func (h *Handler) GetAllScheduleTemplates(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	templates, err := h.repository.GetAllScheduleTemplates(activeOnly)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有排班模板成功", templates)
}

func (h *Handler) CreateScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string               `json:"name" validate:"required"`
		Description string               `json:"description"`
		Days        []templateDayRequest `json:"days" validate:"required,len=7,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	days, err := buildTemplateDays(req.Days)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	tpl := &domain.ScheduleTemplate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		Days:        days,
	}

	if err := schedule.ValidateTemplate(tpl); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateScheduleTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_templates_name_key":
				h.errorResponse(w, r, "模板名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建模板成功", tpl)
}

func (h *Handler) GetScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	h.successResponse(w, r, "获取模板成功", tpl)
}

// UpdateScheduleTemplate 更新模板。将 isActive 置为 false 只是把模板从
// 新分配的候选中隐藏，已引用该模板的周排班不受影响
func (h *Handler) UpdateScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	var req struct {
		Name        *string              `json:"name"`
		Description *string              `json:"description"`
		IsActive    *bool                `json:"isActive"`
		Days        []templateDayRequest `json:"days" validate:"omitempty,len=7,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	if req.Days != nil {
		days, err := buildTemplateDays(req.Days)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		tpl.Days = days
	}

	if err := schedule.ValidateTemplate(tpl); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateScheduleTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_templates_name_key":
				h.errorResponse(w, r, "模板名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新模板成功", tpl)
}

func (h *Handler) DeleteScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	if err := h.repository.DeleteScheduleTemplate(tpl.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "weekly_schedules_template_id_fkey":
				h.errorResponse(w, r, "该模板已被周排班引用，只能停用不能删除")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除模板成功", nil)
}

// ApplyScheduleTemplate 将模板批量应用为多个员工的默认排班，
// 单个员工的失败不会中断批次，返回值总是包含汇总信息
func (h *Handler) ApplyScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	var req struct {
		EmployeeIDs []int64 `json:"employeeIDs" validate:"required,min=1"`
		CreatedBy   string  `json:"createdBy" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.planner.ApplyTemplate(r.Context(), tpl.ID, req.EmployeeIDs, req.CreatedBy)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrIncompleteTemplate):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 给应用成功的员工发送通知
	failed := make(map[int64]bool, len(result.Failures))
	for _, failure := range result.Failures {
		failed[failure.EmployeeID] = true
	}
	for _, employeeID := range req.EmployeeIDs {
		if failed[employeeID] {
			continue
		}
		emp, err := h.repository.GetEmployeeByID(employeeID)
		if err != nil {
			continue
		}
		h.publishMail(r, domain.MailMessage{
			Type: "template_applied",
			To:   emp.Email,
			Data: domain.TemplateAppliedMailData{
				FullName:     emp.FullName,
				TemplateName: tpl.Name,
				CreatedBy:    req.CreatedBy,
			},
		})
	}

	h.successResponse(w, r, "模板应用完成", result)
}
