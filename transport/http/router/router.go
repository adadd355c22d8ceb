package router

import (
	"github.com/evowilliamson/todo/internal/handlers/auth"
	"github.com/evowilliamson/todo/internal/handlers/category"
	"github.com/evowilliamson/todo/internal/handlers/tag"
	"github.com/evowilliamson/todo/internal/handlers/todo"
	"github.com/evowilliamson/todo/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

// DomainHandlers bundles every top-level HTTP handler. Subtask and
// reminder handlers are nested inside the todo handler.
type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Todo     todo.Handler
	Category category.Handler
	Tag      tag.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Todo.Router(routerGroup)
		r.DomainHandlers.Category.Router(routerGroup)
		r.DomainHandlers.Tag.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
