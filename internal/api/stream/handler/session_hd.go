package streamHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"PokerVision/internal/api/stream"
	contextPkg "PokerVision/pkg/context"
	"PokerVision/pkg/handlerUtil"
	"PokerVision/pkg/log"
	redisPkg "PokerVision/pkg/redis"
)

func (h *StreamHandler) GetSessionStatus(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("id")

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"session_id": sessionID,
	}).Debug("Processing session status request")

	snapshot, err := h.sessionStore.GetSnapshot(c, sessionID)
	if err != nil {
		if errors.Is(err, redisPkg.ErrSnapshotNotFound) {
			return errHandler.Handle(ctx, requestID, stream.ErrSessionNotFound, ctx.Path(), "get_session_snapshot")
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session_snapshot")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, stream.SessionStatusResponse{
			Data: *snapshot,
		})
	}
}
