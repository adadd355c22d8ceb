//go:build wireinject
// +build wireinject

package di

import (
	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/infras/jwt"
	"github.com/evowilliamson/todo/infras/kafka"
	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/infras/postgres"
	"github.com/evowilliamson/todo/infras/redis"
	"github.com/evowilliamson/todo/shared/cache"
	"github.com/evowilliamson/todo/transport/http"
	"github.com/evowilliamson/todo/transport/http/middleware"
	"github.com/evowilliamson/todo/transport/http/router"

	authService "github.com/evowilliamson/todo/internal/domains/auth/service"
	categoryRepository "github.com/evowilliamson/todo/internal/domains/category/repository"
	categoryService "github.com/evowilliamson/todo/internal/domains/category/service"
	reminderRepository "github.com/evowilliamson/todo/internal/domains/reminder/repository"
	reminderService "github.com/evowilliamson/todo/internal/domains/reminder/service"
	subtaskRepository "github.com/evowilliamson/todo/internal/domains/subtask/repository"
	subtaskService "github.com/evowilliamson/todo/internal/domains/subtask/service"
	tagRepository "github.com/evowilliamson/todo/internal/domains/tag/repository"
	tagService "github.com/evowilliamson/todo/internal/domains/tag/service"
	todoRepository "github.com/evowilliamson/todo/internal/domains/todo/repository"
	todoService "github.com/evowilliamson/todo/internal/domains/todo/service"
	userRepository "github.com/evowilliamson/todo/internal/domains/user/repository"
	userService "github.com/evowilliamson/todo/internal/domains/user/service"

	authHandler "github.com/evowilliamson/todo/internal/handlers/auth"
	categoryHandler "github.com/evowilliamson/todo/internal/handlers/category"
	reminderHandler "github.com/evowilliamson/todo/internal/handlers/reminder"
	subtaskHandler "github.com/evowilliamson/todo/internal/handlers/subtask"
	tagHandler "github.com/evowilliamson/todo/internal/handlers/tag"
	todoHandler "github.com/evowilliamson/todo/internal/handlers/todo"
	userHandler "github.com/evowilliamson/todo/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var tagDomain = wire.NewSet(
	tagRepository.New,
	tagService.New,
)

var subtaskDomain = wire.NewSet(
	subtaskRepository.New,
	subtaskService.New,
)

var reminderDomain = wire.NewSet(
	reminderRepository.New,
	reminderService.New,
	reminderService.NewSweeper,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	todoDomain,
	categoryDomain,
	tagDomain,
	subtaskDomain,
	reminderDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	todoHandler.New,
	categoryHandler.New,
	tagHandler.New,
	subtaskHandler.New,
	reminderHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
