package todo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/todo/model/dto"
	"github.com/evowilliamson/todo/internal/domains/todo/service"
	"github.com/evowilliamson/todo/internal/handlers/reminder"
	"github.com/evowilliamson/todo/internal/handlers/subtask"
	"github.com/evowilliamson/todo/shared/constant"
	"github.com/evowilliamson/todo/shared/validator"
	"github.com/evowilliamson/todo/transport/http/middleware"
	"github.com/evowilliamson/todo/transport/http/response"
)

type Handler struct {
	service    service.Todo
	subtasks   subtask.Handler
	reminders  reminder.Handler
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Todo, subtasks subtask.Handler, reminders reminder.Handler, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		subtasks:   subtasks,
		reminders:  reminders,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Get("/trash", handler.GetTrash)
		routerGroup.Post("/bulk", handler.BulkOperation)
		routerGroup.Get("/{id}", handler.GetTodoByID)
		routerGroup.Put("/{id}", handler.UpdateTodo)
		routerGroup.Patch("/{id}/status", handler.SetTodoStatus)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
		routerGroup.Post("/{id}/restore", handler.RestoreTodo)
		routerGroup.Delete("/{id}/permanent", handler.PurgeTodo)

		routerGroup.Route("/{id}/subtasks", handler.subtasks.Router)
		routerGroup.Route("/{id}/reminders", handler.reminders.Router)
	})
}

// CreateTodo handles the creation of a new todo item.
// @Summary Create a new todo item
// @Description Create a new todo item with the provided details.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body dto.CreateTodoRequest true "Create Todo Request"
// @Success 201 {object} dto.TodoResponse "Todo created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos [post]
// @Security BearerAuth
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Todo created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, todo)
}

// GetTodos retrieves the caller's todos with filtering and pagination.
// @Summary Get all todo items
// @Description Retrieve todo items with optional filtering, search, sorting and pagination.
// @Tags Todo
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param category_id query string false "Filter by category"
// @Param tag_id query string false "Filter by tag"
// @Param search query string false "Search in title and description"
// @Param include_deleted query boolean false "Include trashed todos"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetTodosResponse "List of todo items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos [get]
// @Security BearerAuth
func (handler *Handler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	req := dto.ListTodosRequest{}
	req.FromRequest(request)

	todos, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todos retrieved successfully")

	response.WithJSON(writer, http.StatusOK, todos)
}

// GetTrash lists the caller's trashed todos.
// @Summary Get trashed todo items
// @Description Retrieve every soft-deleted todo, most recently trashed first.
// @Tags Todo
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetTrashResponse "Trashed todo items"
// @Failure 500 {object} response.Error
// @Router /v1/todos/trash [get]
// @Security BearerAuth
func (handler *Handler) GetTrash(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTrash")
	defer scope.End()

	trash, err := handler.service.ListTrash(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trash")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, trash)
}

// BulkOperation applies one operation to a batch of todos.
// @Summary Apply a bulk operation
// @Description Apply delete, complete, uncomplete, setPriority or setCategory to many todos at once.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body dto.BulkOperationRequest true "Bulk Operation Request"
// @Success 200 {object} dto.BulkOperationResponse "Number of todos affected"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/bulk [post]
// @Security BearerAuth
func (handler *Handler) BulkOperation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkOperation")
	defer scope.End()

	req := dto.BulkOperationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Bulk(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply bulk operation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bulk operation applied successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// GetTodoByID retrieves a todo item by its ID.
// @Summary Get a todo item by ID
// @Description Retrieve a todo with its category, tags, subtasks and reminders.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.TodoDetailResponse "Todo item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTodoByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodoByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	todo, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todo by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo retrieved successfully")

	response.WithJSON(writer, http.StatusOK, todo)
}

// UpdateTodo updates an existing todo item by its ID.
// @Summary Update a todo item by ID
// @Description Partially update a todo. Absent fields are left untouched; an empty category_id detaches the category and a zero due_date clears it. Status changes go through the status endpoint.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Update Todo Request"
// @Success 200 {object} dto.TodoResponse "Updated todo"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTodoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update todo")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Todo updated successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, todo)
}

// SetTodoStatus transitions a todo to a new status.
// @Summary Set the status of a todo
// @Description Change a todo's status. Completing stamps completed_at; leaving completed clears it.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} dto.TodoResponse "Todo with its new status"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetTodoStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetTodoStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SetStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.SetStatus(ctx, id, req.Status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set todo status")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todo)
}

// DeleteTodo moves a todo to the trash.
// @Summary Move a todo to the trash
// @Description Soft-delete a todo. It stays recoverable until purged.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Message "Todo moved to trash"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.SoftDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to move todo to trash")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Todo moved to trash by user " + user)

	response.WithMessage(writer, http.StatusOK, "Todo moved to trash")
}

// RestoreTodo brings a todo back from the trash.
// @Summary Restore a trashed todo
// @Description Restore a soft-deleted todo with all its relations intact.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.TodoResponse "Restored todo"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreTodo")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	todo, err := handler.service.Restore(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to restore todo")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todo)
}

// PurgeTodo permanently removes a todo.
// @Summary Permanently delete a todo
// @Description Remove a todo along with its subtasks, reminders and tag links, whether or not it is in the trash. Irreversible.
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Message "Todo permanently deleted"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/permanent [delete]
// @Security BearerAuth
func (handler *Handler) PurgeTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeTodo")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Purge(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge todo")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Todo permanently deleted by user " + user)

	response.WithMessage(writer, http.StatusOK, "Todo permanently deleted")
}
