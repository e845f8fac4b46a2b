package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/pkg/metrics"
)

type SessionHandler struct {
	svc     port.SessionService
	metrics *metrics.AppMetrics
}

func NewSessionHandler(svc port.SessionService, m *metrics.AppMetrics) *SessionHandler {
	return &SessionHandler{svc: svc, metrics: m}
}

func (h *SessionHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.SignUpRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.RespondError(c, domain.BadRequest("Invalid request body."))
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.RespondError(c, domain.BadRequest(validation.FirstError(err)))
		return
	}

	user, err := h.svc.SignUp(ctx, params.Username, params.Password)

	if err != nil {
		slog.Error("Session#SignUp failed", "username", params.Username, "error", err)
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordSessionOperation("signup")

	c.JSON(http.StatusCreated, response.NewUserResponse(user))
}

func (h *SessionHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.LoginRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.RespondError(c, domain.BadRequest("Invalid request body."))
		return
	}

	user, err := h.svc.Login(ctx, params.Username, params.Password)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordSessionOperation("login")

	c.JSON(http.StatusOK, response.NewUserResponse(user))
}

func (h *SessionHandler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.RespondError(c, domain.Unauthorized("Action not allowed."))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), user); err != nil {
		slog.Error("Session#Logout failed", "user_id", user.ID, "error", err)
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordSessionOperation("logout")

	c.Status(http.StatusOK)
}
