package handlers

import (
	"net/http"

	"booking_service/domain"
	"booking_service/errors"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type NewsHandler struct {
	service *application.NewsService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewNewsHandler(service *application.NewsService, tracer trace.Tracer, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *NewsHandler) InitPublic(router *mux.Router) {
	router.HandleFunc("/api/news", handler.GetPublished).Methods(http.MethodGet)
}

func (handler *NewsHandler) InitAdmin(router *mux.Router) {
	router.HandleFunc("/news", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/news", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/news/{id}", handler.Update).Methods(http.MethodPut)
	router.HandleFunc("/news/{id}", handler.Delete).Methods(http.MethodDelete)
}

func (handler *NewsHandler) GetPublished(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NewsHandler.GetPublished")
	defer span.End()

	items, err := handler.service.GetPublished(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(items, rw)
}

func (handler *NewsHandler) GetAll(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NewsHandler.GetAll")
	defer span.End()

	items, err := handler.service.GetAll(ctx, sessionFromContext(req))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(items, rw)
}

func (handler *NewsHandler) Create(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NewsHandler.Create")
	defer span.End()

	item := &domain.NewsItem{}
	if err := item.FromJSON(req.Body); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, sessionFromContext(req), item)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(created, rw)
}

func (handler *NewsHandler) Update(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NewsHandler.Update")
	defer span.End()

	vars := mux.Vars(req)

	existing, err := handler.service.Get(ctx, vars["id"])
	if err != nil {
		http.Error(rw, errors.NewsItemNotFound, http.StatusNotFound)
		return
	}

	updated := *existing
	if err := jsonRequest(req, &updated); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID

	if err := handler.service.Update(ctx, sessionFromContext(req), &updated); err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(&updated, rw)
}

func (handler *NewsHandler) Delete(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "NewsHandler.Delete")
	defer span.End()

	vars := mux.Vars(req)
	if err := handler.service.Delete(ctx, sessionFromContext(req), vars["id"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(rw, errors.NewsItemNotFound, http.StatusNotFound)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}
