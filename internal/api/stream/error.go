package stream

import (
	"net/http"

	"PokerVision/pkg/response"
)

var (
	ErrSessionNotFound     = response.NewError(http.StatusNotFound, "session not found")
	ErrInvalidFrame        = response.NewError(http.StatusBadRequest, "invalid frame payload")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
