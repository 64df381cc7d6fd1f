package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"booking_service/domain"
	"booking_service/errors"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type KeySession struct{}

type AdminHandler struct {
	service *application.AdminService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewAdminHandler(service *application.AdminService, tracer trace.Tracer, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

// InitPublic registers login outside the session middleware.
func (handler *AdminHandler) InitPublic(router *mux.Router) {
	router.HandleFunc("/api/admin/login", handler.Login).Methods(http.MethodPost)
}

func (handler *AdminHandler) Init(router *mux.Router) {
	router.HandleFunc("/logout", handler.Logout).Methods(http.MethodPost)
	router.HandleFunc("/reservations", handler.ListReservations).Methods(http.MethodGet)
	router.HandleFunc("/reservations/stats", handler.ReservationStats).Methods(http.MethodGet)
	router.HandleFunc("/reservations", handler.CreateManualReservation).Methods(http.MethodPost)
	router.HandleFunc("/reservations/{id}", handler.GetReservation).Methods(http.MethodGet)
	router.HandleFunc("/reservations/{id}", handler.UpdateReservation).Methods(http.MethodPut)
	router.HandleFunc("/reservations/{id}/status", handler.UpdateStatus).Methods(http.MethodPatch)
}

func (handler *AdminHandler) Login(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.Login")
	defer span.End()

	var request domain.LoginRequest
	if err := jsonRequest(req, &request); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.Warnf("failed admin login for %q", request.Username)
		http.Error(rw, errors.InvalidCredentials, http.StatusUnauthorized)
		return
	}

	jsonResponse(map[string]string{"token": token}, rw)
}

func (handler *AdminHandler) Logout(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.Logout")
	defer span.End()

	session := sessionFromContext(req)
	if err := handler.service.Logout(ctx, session); err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

func (handler *AdminHandler) ListReservations(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.ListReservations")
	defer span.End()

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))

	result, err := handler.service.ListReservations(ctx, sessionFromContext(req), page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(result, rw)
}

func (handler *AdminHandler) ReservationStats(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.ReservationStats")
	defer span.End()

	counts, err := handler.service.CountByStatus(ctx, sessionFromContext(req))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(counts, rw)
}

func (handler *AdminHandler) GetReservation(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.GetReservation")
	defer span.End()

	vars := mux.Vars(req)
	reservation, err := handler.service.GetReservation(ctx, sessionFromContext(req), vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(rw, errors.ReservationNotFound, http.StatusNotFound)
		return
	}
	jsonResponse(reservation, rw)
}

func (handler *AdminHandler) CreateManualReservation(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.CreateManualReservation")
	defer span.End()

	submission := &domain.ReservationSubmission{}
	if err := submission.FromJSON(req.Body); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}

	created, err := handler.service.CreateManualReservation(ctx, sessionFromContext(req), submission)
	if err != nil {
		if validationErr, ok := err.(*domain.ValidationError); ok {
			rw.WriteHeader(http.StatusBadRequest)
			jsonResponse(SubmitResponse{
				Success: false,
				Message: errors.ValidationFailed,
				Errors:  validationErr.Violations,
			}, rw)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusCreated)
	jsonResponse(created, rw)
}

func (handler *AdminHandler) UpdateReservation(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.UpdateReservation")
	defer span.End()

	vars := mux.Vars(req)

	existing, err := handler.service.GetReservation(ctx, sessionFromContext(req), vars["id"])
	if err != nil {
		http.Error(rw, errors.ReservationNotFound, http.StatusNotFound)
		return
	}

	updated := *existing
	if err := jsonRequest(req, &updated); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}
	updated.ID = existing.ID

	if err := handler.service.UpdateReservation(ctx, sessionFromContext(req), &updated); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.InvalidStatusError {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(&updated, rw)
}

type statusUpdateRequest struct {
	Status domain.ReservationStatus `json:"status"`
}

func (handler *AdminHandler) UpdateStatus(rw http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.UpdateStatus")
	defer span.End()

	vars := mux.Vars(req)

	var request statusUpdateRequest
	if err := jsonRequest(req, &request); err != nil {
		http.Error(rw, errors.InvalidRequestFormat, http.StatusBadRequest)
		return
	}

	err := handler.service.UpdateStatus(ctx, sessionFromContext(req), vars["id"], request.Status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.InvalidStatusError {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(rw, errors.ReservationNotFound, http.StatusNotFound)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

// MiddlewareSession resolves the bearer token into an explicit session
// and rejects requests whose session is missing or expired.
func (handler *AdminHandler) MiddlewareSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		bearer := req.Header.Get("Authorization")
		bearerToken := strings.Split(bearer, "Bearer ")
		if len(bearerToken) != 2 {
			http.Error(rw, errors.InvalidTokenError, http.StatusUnauthorized)
			return
		}

		session, err := handler.service.ResolveSession(req.Context(), bearerToken[1])
		if err != nil {
			handler.logger.Warnf("session resolution failed: %s", err)
			http.Error(rw, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(req.Context(), KeySession{}, session)
		next.ServeHTTP(rw, req.WithContext(ctx))
	})
}

func sessionFromContext(req *http.Request) *domain.Session {
	session, _ := req.Context().Value(KeySession{}).(*domain.Session)
	return session
}
