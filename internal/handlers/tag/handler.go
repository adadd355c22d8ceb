package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/evowilliamson/todo/infras/otel"
	"github.com/evowilliamson/todo/internal/domains/tag/model/dto"
	"github.com/evowilliamson/todo/internal/domains/tag/service"
	"github.com/evowilliamson/todo/shared/constant"
	"github.com/evowilliamson/todo/shared/validator"
	"github.com/evowilliamson/todo/transport/http/middleware"
	"github.com/evowilliamson/todo/transport/http/response"
)

type Handler struct {
	service    service.Tag
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Tag, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tags", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Post("/", handler.CreateTag)
		routerGroup.Get("/", handler.GetTags)
		routerGroup.Put("/{id}", handler.UpdateTag)
		routerGroup.Delete("/{id}", handler.DeleteTag)
	})
}

// CreateTag creates a new tag for the caller.
// @Summary Create a new tag
// @Description Create a tag. Names are unique per user.
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Create Tag Request"
// @Success 201 {object} dto.TagResponse "Tag created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags [post]
// @Security BearerAuth
func (handler *Handler) CreateTag(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTag")
	defer scope.End()

	req := dto.CreateTagRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	tag, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tag")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Tag created successfully")

	response.WithJSON(writer, http.StatusCreated, tag)
}

// GetTags lists the caller's tags.
// @Summary Get all tags
// @Description Retrieve every tag owned by the caller, sorted by name.
// @Tags Tag
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetTagsResponse "List of tags"
// @Failure 500 {object} response.Error
// @Router /v1/tags [get]
// @Security BearerAuth
func (handler *Handler) GetTags(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTags")
	defer scope.End()

	tags, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tags")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tags)
}

// UpdateTag updates a tag by its ID.
// @Summary Update a tag by ID
// @Description Rename a tag.
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body dto.UpdateTagRequest true "Update Tag Request"
// @Success 200 {object} response.Message "Tag updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTag(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTag")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTagRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tag")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Tag updated successfully")
}

// DeleteTag deletes a tag by its ID.
// @Summary Delete a tag by ID
// @Description Delete a tag and detach it from every todo that carries it.
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Message "Tag deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTag(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTag")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tag")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tag deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Tag deleted successfully")
}
