package handlers

import (
	"context"
	"net/http"
	"strings"

	"booking_service/domain"
	"booking_service/errors"
	application "booking_service/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type KeySubmission struct{}

type ReservationHandler struct {
	service *application.ReservationService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewReservationHandler(service *application.ReservationService, tracer trace.Tracer, logger *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *ReservationHandler) Init(router *mux.Router) {
	createReservation := router.Methods(http.MethodPost).Subrouter()
	createReservation.HandleFunc("/api/reservations", handler.CreateReservation)
	createReservation.Use(handler.MiddlewareSubmissionDeserialization)
}

type SubmitResponse struct {
	Success       bool                    `json:"success"`
	Message       string                  `json:"message"`
	ReservationID string                  `json:"reservationId,omitempty"`
	Errors        []domain.FieldViolation `json:"errors,omitempty"`
}

func (handler *ReservationHandler) CreateReservation(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReservationHandler.CreateReservation")
	defer span.End()

	submission := req.Context().Value(KeySubmission{}).(*domain.ReservationSubmission)
	meta := requestMeta(req)

	created, err := handler.service.CreateReservation(ctx, submission, meta)
	if err != nil {
		if validationErr, ok := err.(*domain.ValidationError); ok {
			span.SetStatus(codes.Error, validationErr.Error())
			rw.WriteHeader(http.StatusBadRequest)
			jsonResponse(SubmitResponse{
				Success: false,
				Message: errors.ValidationFailed,
				Errors:  validationErr.Violations,
			}, rw)
			return
		}

		span.SetStatus(codes.Error, err.Error())
		handler.logger.Errorf("reservation intake failed: %s", err)
		rw.WriteHeader(http.StatusInternalServerError)
		jsonResponse(SubmitResponse{
			Success: false,
			Message: errors.InternalServerError,
		}, rw)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(SubmitResponse{
		Success:       true,
		Message:       "Reservation created",
		ReservationID: created.ID.Hex(),
	}, rw)
}

func (handler *ReservationHandler) MiddlewareSubmissionDeserialization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		submission := &domain.ReservationSubmission{}
		err := submission.FromJSON(req.Body)
		if err != nil {
			handler.logger.Errorf("unable to decode submission: %s", err)
			rw.WriteHeader(http.StatusBadRequest)
			jsonResponse(SubmitResponse{
				Success: false,
				Message: errors.InvalidRequestFormat,
			}, rw)
			return
		}

		ctx := context.WithValue(req.Context(), KeySubmission{}, submission)
		next.ServeHTTP(rw, req.WithContext(ctx))
	})
}

// requestMeta captures audit-only request context. Values are best
// effort and default to "unknown".
func requestMeta(req *http.Request) domain.RequestMeta {
	ip := req.Header.Get("X-Forwarded-For")
	if ip != "" {
		ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip == "" {
		ip = req.Header.Get("X-Real-Ip")
	}
	if ip == "" {
		ip = "unknown"
	}

	userAgent := req.Header.Get("User-Agent")
	if userAgent == "" {
		userAgent = "unknown"
	}

	return domain.RequestMeta{
		IP:        ip,
		UserAgent: userAgent,
		RequestID: uuid.New().String(),
	}
}
