package insightHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	insightService "PokerVision/internal/api/insight/service"
	"PokerVision/internal/middleware"
)

type InsightHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	insightService insightService.IInsightService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	is insightService.IInsightService,
) *InsightHandler {
	return &InsightHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		insightService: is,
	}
}

func (h *InsightHandler) Start(srv fiber.Router) {
	ins := srv.Group("/insight")
	ins.Post("/read", h.ComputeRead)
}
