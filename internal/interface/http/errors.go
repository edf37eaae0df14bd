package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
	"github.com/oksasatya/go-library-backend/pkg/response"
)

// writeError maps service errors onto the response envelope. Missing user or book
// references are client errors and carry the reason as message; anything else is logged
// and answered with 500.
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrBookNotFound):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrCoverStorageDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"op":         op,
			"request_id": c.GetString(response.RequestIDKey),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
