package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.svc.GetAllUsers(c.Request.Context())

	if err != nil {
		slog.Error("User#GetAllUsers failed", "error", err)
		helper.RespondError(c, err)
		return
	}

	list := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		list = append(list, response.NewUserResponse(user))
	}

	c.JSON(http.StatusOK, list)
}
