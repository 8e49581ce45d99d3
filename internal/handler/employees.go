package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
)

const dateLayout = "2006-01-02"

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", emp)
}

// GetEffectiveSchedule 解析某个员工在某一天的生效排班，
// dashboard 依赖返回结构中的字段名，不能随意修改
func (h *Handler) GetEffectiveSchedule(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	dateParam := r.URL.Query().Get("date")
	date, err := time.Parse(dateLayout, dateParam)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效，应为 YYYY-MM-DD")
		return
	}

	es, err := h.resolver.Resolve(emp.ID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCorruptSchedule):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	data := struct {
		Employee        *domain.Employee          `json:"employee"`
		EffectiveBreaks *domain.EffectiveSchedule `json:"effectiveBreaks"`
		WorkTimeStats   domain.WorkTimeStats      `json:"workTimeStats"`
	}{
		Employee:        emp,
		EffectiveBreaks: es,
		WorkTimeStats:   schedule.StatsFor(es),
	}

	h.successResponse(w, r, "获取生效排班成功", data)
}

// AnalyzeScheduleConflicts 在一个日期范围内逐天检查排班冲突
func (h *Handler) AnalyzeScheduleConflicts(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	startDate, err := time.Parse(dateLayout, r.URL.Query().Get("startDate"))
	if err != nil {
		h.errorResponse(w, r, "开始日期格式无效，应为 YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, r.URL.Query().Get("endDate"))
	if err != nil {
		h.errorResponse(w, r, "结束日期格式无效，应为 YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		h.errorResponse(w, r, "结束日期不能早于开始日期")
		return
	}

	report, err := h.resolver.AnalyzeConflicts(emp.ID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班冲突分析完成", report)
}

// PlanifyYear 为员工规划一整年的周排班，部分周失败时仍然返回汇总结果
func (h *Handler) PlanifyYear(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Year              int32  `json:"year" validate:"required,min=2000,max=2100"`
		TemplateID        int64  `json:"templateID" validate:"required"`
		CreatedBy         string `json:"createdBy" validate:"required"`
		SkipExistingWeeks bool   `json:"skipExistingWeeks"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.planner.PlanifyYear(r.Context(), emp.ID, req.Year, req.TemplateID, req.CreatedBy, req.SkipExistingWeeks)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.errorResponse(w, r, "排班模板不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	data := struct {
		Summary *domain.YearPlanResult `json:"summary"`
	}{
		Summary: result,
	}

	h.successResponse(w, r, "年度排班规划完成", data)
}
