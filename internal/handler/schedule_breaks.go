package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
)

// parseParentRef 从查询参数或请求体字段还原休息时间段的归属，
// weekday 只对 template_day 和 weekly_schedule_day 两种归属有意义
func parseParentRef(parentType string, parentID int64, weekday *int32) (domain.BreakParentRef, error) {
	ref := domain.BreakParentRef{
		Type: domain.BreakParentType(parentType),
		ID:   parentID,
	}

	switch ref.Type {
	case domain.BreakParentEmployee:
		if weekday != nil {
			return ref, errors.New("员工级别的休息时间不区分星期几")
		}
	case domain.BreakParentTemplateDay, domain.BreakParentWeeklyScheduleDay:
		if weekday == nil {
			return ref, errors.New("该归属类型必须指定星期几")
		}
		if *weekday < 0 || *weekday > 6 {
			return ref, errors.New("星期几必须在 0 到 6 之间")
		}
		ref.Weekday = weekday
	default:
		return ref, errors.New("不支持的归属类型")
	}

	return ref, nil
}

func (h *Handler) GetScheduleBreaks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	parentID, err := strconv.ParseInt(query.Get("parentID"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("parentID 必须是整数"))
		return
	}

	var weekday *int32
	if raw := query.Get("weekday"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			h.badRequest(w, r, errors.New("weekday 必须是整数"))
			return
		}
		weekday = new(int32)
		*weekday = int32(parsed)
	}

	parent, err := parseParentRef(query.Get("parentType"), parentID, weekday)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	breaks, err := h.repository.GetBreaksByParent(parent)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取休息时间段成功", breaks)
}

func (h *Handler) CreateScheduleBreak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentType         string `json:"parentType" validate:"required"`
		ParentID           int64  `json:"parentID" validate:"required"`
		Weekday            *int32 `json:"weekday"`
		Name               string `json:"name" validate:"required"`
		StartTime          string `json:"startTime" validate:"required"`
		EndTime            string `json:"endTime" validate:"required"`
		BreakType          string `json:"breakType" validate:"required,oneof=meal rest personal other"`
		IsPaid             bool   `json:"isPaid"`
		IsRequired         bool   `json:"isRequired"`
		IsFlexible         bool   `json:"isFlexible"`
		FlexibilityMinutes int32  `json:"flexibilityMinutes" validate:"min=0,max=120"`
		SortOrder          int32  `json:"sortOrder"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parent, err := parseParentRef(req.ParentType, req.ParentID, req.Weekday)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := interval.ParseWindow(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, errors.New("休息时间段的起止时间不合法"))
		return
	}

	br := &domain.ScheduleBreak{
		Parent:             parent,
		Name:               req.Name,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		BreakType:          domain.BreakType(req.BreakType),
		IsPaid:             req.IsPaid,
		IsRequired:         req.IsRequired,
		IsFlexible:         req.IsFlexible,
		FlexibilityMinutes: req.FlexibilityMinutes,
		SortOrder:          req.SortOrder,
	}

	if err := h.repository.CreateScheduleBreak(br); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建休息时间段成功", br)
}

func (h *Handler) UpdateScheduleBreak(w http.ResponseWriter, r *http.Request) {
	br := r.Context().Value(ScheduleBreakCtx).(*domain.ScheduleBreak)

	var req struct {
		Name               *string `json:"name"`
		StartTime          *string `json:"startTime"`
		EndTime            *string `json:"endTime"`
		BreakType          *string `json:"breakType" validate:"omitempty,oneof=meal rest personal other"`
		IsPaid             *bool   `json:"isPaid"`
		IsRequired         *bool   `json:"isRequired"`
		IsFlexible         *bool   `json:"isFlexible"`
		FlexibilityMinutes *int32  `json:"flexibilityMinutes" validate:"omitempty,min=0,max=120"`
		SortOrder          *int32  `json:"sortOrder"`
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
		br.Name = *req.Name
	}
	if req.StartTime != nil {
		br.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		br.EndTime = *req.EndTime
	}
	if req.BreakType != nil {
		br.BreakType = domain.BreakType(*req.BreakType)
	}
	if req.IsPaid != nil {
		br.IsPaid = *req.IsPaid
	}
	if req.IsRequired != nil {
		br.IsRequired = *req.IsRequired
	}
	if req.IsFlexible != nil {
		br.IsFlexible = *req.IsFlexible
	}
	if req.FlexibilityMinutes != nil {
		br.FlexibilityMinutes = *req.FlexibilityMinutes
	}
	if req.SortOrder != nil {
		br.SortOrder = *req.SortOrder
	}

	if _, err := interval.ParseWindow(br.StartTime, br.EndTime); err != nil {
		h.badRequest(w, r, errors.New("休息时间段的起止时间不合法"))
		return
	}

	if err := h.repository.UpdateScheduleBreak(br); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新休息时间段成功", br)
}

func (h *Handler) DeleteScheduleBreak(w http.ResponseWriter, r *http.Request) {
	br := r.Context().Value(ScheduleBreakCtx).(*domain.ScheduleBreak)

	if err := h.repository.DeleteScheduleBreak(br.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除休息时间段成功", nil)
}

func (h *Handler) GetDefaultBreakTemplates(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取默认休息时间模板成功", schedule.DefaultBreakTemplates())
}

// ApplyDefaultBreaks 按工作时间窗口生成默认休息时间并整体替换指定归属下的旧数据
func (h *Handler) ApplyDefaultBreaks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentType string `json:"parentType" validate:"required"`
		ParentID   int64  `json:"parentID" validate:"required"`
		Weekday    *int32 `json:"weekday"`
		StartTime  string `json:"workStartTime" validate:"required"`
		EndTime    string `json:"workEndTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parent, err := parseParentRef(req.ParentType, req.ParentID, req.Weekday)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	window, err := interval.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, errors.New("工作时间窗口不合法"))
		return
	}

	breaks, err := schedule.GenerateDefaultBreaks(req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, errors.New("工作时间窗口不合法"))
		return
	}
	for _, br := range breaks {
		br.Parent = parent
	}

	// 整体替换不允许悄悄丢掉已经配置好的必选休息
	existing, err := h.repository.GetBreaksByParent(parent)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	var requiredNames []string
	for _, br := range existing {
		if br.IsRequired {
			requiredNames = append(requiredNames, br.Name)
		}
	}
	if validation := schedule.ValidateBreaksWithRequired(window, breaks, requiredNames); !validation.Valid {
		h.errorResponse(w, r, "默认休息时间无法覆盖现有的必选休息："+validation.Errors[0].Message)
		return
	}

	if err := h.repository.ReplaceBreaksForParent(parent, breaks); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "应用默认休息时间成功", breaks)
}
