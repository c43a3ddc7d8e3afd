package streamHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	streamService "PokerVision/internal/api/stream/service"
	"PokerVision/internal/middleware"
	redisPkg "PokerVision/pkg/redis"
	"PokerVision/pkg/utils"
)

type StreamHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	sessionService streamService.ISessionService
	sessionStore   redisPkg.ISessionStore
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	sessionService streamService.ISessionService,
	sessionStore redisPkg.ISessionStore,
	utils utils.IUtils,
) *StreamHandler {
	return &StreamHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		sessionService: sessionService,
		sessionStore:   sessionStore,
		utils:          utils,
	}
}

func (h *StreamHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	st := srv.Group("/stream")
	st.Use("/ws", wsMiddleware)
	st.Get("/ws", websocket.New(h.handleStreamSocket))
	st.Get("/sessions/:id", h.GetSessionStatus)
}
