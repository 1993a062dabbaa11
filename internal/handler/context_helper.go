package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/middleware"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

func sessionFromContext(c *gin.Context) session.Session {
	return middleware.SessionFrom(c)
}

// bindJSON decodes the request body into dest, answering 400 on failure.
func bindJSON(c *gin.Context, dest interface{}, what string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
		return false
	}
	return true
}

func respondOutcome[T any](c *gin.Context, status int, outcome backend.Outcome[T]) {
	response.Resolved(c, status, outcome.Value, string(outcome.Source), outcome.Warning, middleware.ExtractMeta(c))
}

func respondNoContent[T any](c *gin.Context, outcome backend.Outcome[T]) {
	if outcome.Source != "" {
		c.Header(response.HeaderBackendSource, string(outcome.Source))
	}
	if outcome.Warning != "" {
		c.Header(response.HeaderBackendWarning, outcome.Warning)
	}
	response.NoContent(c)
}
