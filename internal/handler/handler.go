package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/candela-labs/vesting-ledger/backend/internal/config"
	"github.com/candela-labs/vesting-ledger/backend/internal/repository"
	"github.com/candela-labs/vesting-ledger/backend/internal/vesting"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	eventChannel *amqp.Channel
	redisClient  *redis.Client
	clock        vesting.Clock

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventCh *amqp.Channel, rdb *redis.Client, clock vesting.Clock) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		eventChannel: eventCh,
		redisClient:  rdb,
		clock:        clock,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/vesting", func(r chi.Router) {
			r.Post("/managers", h.InitializeManager)
			r.Post("/claims", h.Claim)

			r.Route("/managers/{owner}", func(r chi.Router) {
				r.Use(h.manager)
				r.Get("/schedules", h.ListSchedules)
				r.Post("/schedules", h.CreateSchedule)
				r.Get("/claimable", h.GetClaimableAmount)
				r.Route("/schedules/{index}", func(r chi.Router) {
					r.Post("/pause", h.PauseSchedule)
					r.Post("/resume", h.ResumeSchedule)
				})
			})
		})

		r.With(h.myAccount).Get("/balances/my", h.GetMyBalance)
	})
}
