package advisorHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"PokerVision/internal/api/advisor"
	contextPkg "PokerVision/pkg/context"
	"PokerVision/pkg/handlerUtil"
	"PokerVision/pkg/log"
)

func (h *AdvisorHandler) Ask(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing advisor request")

	var req advisor.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	advice, err := h.advisorService.Ask(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, advisor.ErrAdvisorUnavailable, ctx.Path(), "ask_advisor")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Info("Advisor request successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, advisor.AskResponse{
			Data: *advice,
		})
	}
}
