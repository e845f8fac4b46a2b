package http

import (
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/pkg/metrics"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	SessionUseCase port.SessionService
	UserUseCase    port.UserService
	TaskUseCase    port.TaskService

	SessionHandler *handler.SessionHandler
	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	HealthHandler  *handler.HealthHandler
}

func NewContainer(userRepo port.UserRepository, taskRepo port.TaskRepository, token port.TokenService, appMetrics *metrics.AppMetrics) *Container {
	sessionSvc := service.NewSessionService(userRepo, token)
	userSvc := service.NewUserService(userRepo)
	taskSvc := service.NewTaskService(taskRepo)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		SessionUseCase: sessionSvc,
		UserUseCase:    userSvc,
		TaskUseCase:    taskSvc,

		SessionHandler: handler.NewSessionHandler(sessionSvc, appMetrics),
		UserHandler:    handler.NewUserHandler(userSvc),
		TaskHandler:    handler.NewTaskHandler(taskSvc, appMetrics),
		HealthHandler:  handler.NewHealthHandler(),
	}
}
