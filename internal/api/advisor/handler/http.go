package advisorHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	advisorService "PokerVision/internal/api/advisor/service"
	"PokerVision/internal/middleware"
)

type AdvisorHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	advisorService advisorService.IAdvisorService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as advisorService.IAdvisorService,
) *AdvisorHandler {
	return &AdvisorHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		advisorService: as,
	}
}

func (h *AdvisorHandler) Start(srv fiber.Router) {
	adv := srv.Group("/advisor")
	adv.Post("/ask", h.Ask)
}
