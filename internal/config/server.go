package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	advisorHandler "PokerVision/internal/api/advisor/handler"
	advisorService "PokerVision/internal/api/advisor/service"
	insightHandler "PokerVision/internal/api/insight/handler"
	insightService "PokerVision/internal/api/insight/service"
	streamHandler "PokerVision/internal/api/stream/handler"
	streamService "PokerVision/internal/api/stream/service"
	"PokerVision/internal/middleware"
	"PokerVision/pkg/emostream"
	"PokerVision/pkg/gemini"
	redisPkg "PokerVision/pkg/redis"
	"PokerVision/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	streamConfig emostream.Config
	streamDialer emostream.IDialer
	sessionStore redisPkg.ISessionStore
	geminiClient gemini.IGemini
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithEmotionStream() ServerOption {
	return func(s *Server) error {
		cfg, err := emostream.FromEnv()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to configure emotion stream: %v", err)
			}
			return fmt.Errorf("failed to configure emotion stream: %w", err)
		}
		s.streamConfig = cfg
		s.streamDialer = emostream.NewDialer(s.log)
		return nil
	}
}

func WithSessionStore(store redisPkg.ISessionStore) ServerOption {
	return func(s *Server) error {
		s.sessionStore = store
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Insight (presentation) domain
	insightServices := insightService.NewInsightService(insightService.DefaultReadConfig())
	insightHandlers := insightHandler.New(s.log, s.validator, s.middleware, insightServices)

	// Stream domain
	sessionServices := streamService.NewSessionService(
		s.log, s.streamDialer, s.streamConfig, s.sessionStore,
		insightServices, s.utils, streamService.DefaultOptions(),
	)
	streamHandlers := streamHandler.New(s.log, s.validator, s.middleware, sessionServices, s.sessionStore, s.utils)

	// Advisor domain
	advisorServices := advisorService.NewAdvisorService(s.geminiClient)
	advisorHandlers := advisorHandler.New(s.log, s.validator, s.middleware, advisorServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, streamHandlers, insightHandlers, advisorHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
