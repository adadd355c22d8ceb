package reminder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/reminder/model/dto"
	"github.com/evowilliamson/todo/internal/domains/reminder/service"
	"github.com/evowilliamson/todo/shared/constant"
	"github.com/evowilliamson/todo/shared/validator"
	"github.com/evowilliamson/todo/transport/http/response"
)

// Handler serves reminder routes nested under a todo. Authentication is
// applied by the parent todo router group.
type Handler struct {
	service service.Reminder
	otel    otel.Otel
}

func New(service service.Reminder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/", handler.CreateReminder)
	router.Delete("/{reminder_id}", handler.DeleteReminder)
}

// CreateReminder schedules a reminder for a todo.
// @Summary Create a reminder
// @Description Schedule a reminder for an active todo. The remind time must be in the future.
// @Tags Reminder
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.CreateReminderRequest true "Create Reminder Request"
// @Success 201 {object} dto.ReminderResponse "Reminder created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/reminders [post]
// @Security BearerAuth
func (handler *Handler) CreateReminder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReminder")
	defer scope.End()

	todoID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateReminderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reminder, err := handler.service.Create(ctx, todoID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reminder")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reminder created successfully")

	response.WithJSON(writer, http.StatusCreated, reminder)
}

// DeleteReminder removes a reminder from a todo.
// @Summary Delete a reminder
// @Description Cancel a scheduled reminder.
// @Tags Reminder
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param reminder_id path string true "Reminder ID"
// @Success 200 {object} response.Message "Reminder deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/todos/{id}/reminders/{reminder_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReminder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReminder")
	defer scope.End()

	todoID := chi.URLParam(request, constant.RequestParamID)
	reminderID := chi.URLParam(request, constant.RequestParamReminderID)

	if err := handler.service.Delete(ctx, todoID, reminderID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reminder")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reminder deleted successfully")
}
