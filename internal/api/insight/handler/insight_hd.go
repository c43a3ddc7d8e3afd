package insightHandler

import (
	"github.com/gofiber/fiber/v2"

	"PokerVision/internal/api/insight"
	"PokerVision/pkg/handlerUtil"
	"PokerVision/pkg/log"
)

func (h *InsightHandler) ComputeRead(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing read computation request")

	var req insight.ReadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result := h.insightService.Result(req)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, insight.ReadResponse{
		Data: result,
	})
}
