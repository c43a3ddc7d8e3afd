package advisor

import (
	"net/http"

	"PokerVision/pkg/response"
)

var (
	ErrAdvisorUnavailable  = response.NewError(http.StatusServiceUnavailable, "advisor unavailable")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
