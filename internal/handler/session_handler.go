package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type storeTokenRequest struct {
	Token string `json:"token"`
}

// SessionHandler manages the stored trainer credential.
type SessionHandler struct {
	store session.Store
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(store session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Get godoc
// @Summary Describe the current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess := sessionFromContext(c)
	response.JSON(c, http.StatusOK, gin.H{
		"authenticated": sess.Authenticated(),
		"session":       sess.Key(),
	}, nil)
}

// StoreToken godoc
// @Summary Store the trainer API token
// @Description Requests without an Authorization header use the stored token.
// @Tags Session
// @Accept json
// @Param payload body storeTokenRequest true "Token"
// @Success 204
// @Router /session/token [put]
func (h *SessionHandler) StoreToken(c *gin.Context) {
	var req storeTokenRequest
	if !bindJSON(c, &req, "token") {
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	if err := h.store.SetToken(c.Request.Context(), req.Token); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store token"))
		return
	}
	response.NoContent(c)
}

// ClearToken godoc
// @Summary Forget the stored trainer API token
// @Tags Session
// @Success 204
// @Router /session/token [delete]
func (h *SessionHandler) ClearToken(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear token"))
		return
	}
	response.NoContent(c)
}
