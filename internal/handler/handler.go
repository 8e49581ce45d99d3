package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/lock"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/schedule"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	resolver    *schedule.Resolver
	planner     *schedule.Planner

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	locks := lock.New(rdb, time.Duration(cfg.Redis.LockExpiration)*time.Second)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		resolver:    schedule.NewResolver(repo),
		planner:     schedule.NewPlanner(repo, locks),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 员工相关：员工由 HR 系统创建，这里只读，
	// 但生效排班、冲突分析和年度规划都以员工为入口
	h.Mux.Route("/employees", func(r chi.Router) {
		r.Get("/", h.GetAllEmployees)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.employeeInfo)
			r.Get("/", h.GetEmployee)
			r.Get("/effective-schedule", h.GetEffectiveSchedule)
			r.Get("/schedule-conflicts", h.AnalyzeScheduleConflicts)
			r.Post("/planify-year", h.PlanifyYear)
			r.Route("/weekly-schedules", func(r chi.Router) {
				r.Get("/", h.GetWeeklySchedulesByYear)
				r.Route("/{year}/{week}", func(r chi.Router) {
					r.Put("/", h.AssignWeeklySchedule)
					r.Delete("/", h.UnassignWeeklySchedule)
				})
			})
		})
	})

	// 排班模板相关
	h.Mux.Route("/schedule-templates", func(r chi.Router) {
		r.Post("/", h.CreateScheduleTemplate)
		r.Get("/", h.GetAllScheduleTemplates)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.scheduleTemplate)
			r.Get("/", h.GetScheduleTemplate)
			r.Patch("/", h.UpdateScheduleTemplate)
			r.Delete("/", h.DeleteScheduleTemplate)
			r.Post("/apply", h.ApplyScheduleTemplate)
		})
	})

	// 休息时间相关
	h.Mux.Route("/schedule-breaks", func(r chi.Router) {
		r.Get("/", h.GetScheduleBreaks)
		r.Post("/", h.CreateScheduleBreak)
		r.Get("/default-templates", h.GetDefaultBreakTemplates)
		r.Post("/apply-defaults", h.ApplyDefaultBreaks)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.scheduleBreak)
			r.Patch("/", h.UpdateScheduleBreak)
			r.Delete("/", h.DeleteScheduleBreak)
		})
	})
}
