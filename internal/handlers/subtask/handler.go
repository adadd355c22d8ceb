package subtask

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/subtask/model/dto"
	"github.com/evowilliamson/todo/internal/domains/subtask/service"
	"github.com/evowilliamson/todo/shared/constant"
	"github.com/evowilliamson/todo/shared/validator"
	"github.com/evowilliamson/todo/transport/http/response"
)

// Handler serves subtask routes nested under a todo. Authentication is
// applied by the parent todo router group.
type Handler struct {
	service service.Subtask
	otel    otel.Otel
}

func New(service service.Subtask, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/", handler.CreateSubtask)
	router.Put("/{subtask_id}", handler.UpdateSubtask)
	router.Delete("/{subtask_id}", handler.DeleteSubtask)
}

// CreateSubtask adds a subtask to a todo.
// @Summary Create a subtask
// @Description Add a subtask to an active todo.
// @Tags Subtask
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.CreateSubtaskRequest true "Create Subtask Request"
// @Success 201 {object} dto.SubtaskResponse "Subtask created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/subtasks [post]
// @Security BearerAuth
func (handler *Handler) CreateSubtask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSubtask")
	defer scope.End()

	todoID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateSubtaskRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	subtask, err := handler.service.Create(ctx, todoID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create subtask")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Subtask created successfully")

	response.WithJSON(writer, http.StatusCreated, subtask)
}

// UpdateSubtask updates a subtask of a todo.
// @Summary Update a subtask
// @Description Partially update a subtask's title, completion or position.
// @Tags Subtask
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param subtask_id path string true "Subtask ID"
// @Param request body dto.UpdateSubtaskRequest true "Update Subtask Request"
// @Success 200 {object} response.Message "Subtask updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/subtasks/{subtask_id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSubtask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSubtask")
	defer scope.End()

	todoID := chi.URLParam(request, constant.RequestParamID)
	subtaskID := chi.URLParam(request, constant.RequestParamSubtaskID)

	req := dto.UpdateSubtaskRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, todoID, subtaskID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update subtask")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Subtask updated successfully")
}

// DeleteSubtask removes a subtask from a todo.
// @Summary Delete a subtask
// @Description Remove a subtask from its parent todo.
// @Tags Subtask
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param subtask_id path string true "Subtask ID"
// @Success 200 {object} response.Message "Subtask deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/subtasks/{subtask_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSubtask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSubtask")
	defer scope.End()

	todoID := chi.URLParam(request, constant.RequestParamID)
	subtaskID := chi.URLParam(request, constant.RequestParamSubtaskID)

	if err := handler.service.Delete(ctx, todoID, subtaskID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete subtask")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Subtask deleted successfully")
}
