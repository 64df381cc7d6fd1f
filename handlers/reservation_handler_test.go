package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking_service/domain"
	application "booking_service/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
)

type stubReservationStore struct {
	created []*domain.Reservation
	failing bool
}

func (s *stubReservationStore) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if s.failing {
		return nil, assert.AnError
	}
	reservation.ID = primitive.NewObjectID()
	s.created = append(s.created, reservation)
	return reservation, nil
}

func (s *stubReservationStore) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return nil, assert.AnError
}

func (s *stubReservationStore) GetAllReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) UpdateReservation(ctx context.Context, reservation *domain.Reservation) error {
	return nil
}

func (s *stubReservationStore) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	return nil
}

func (s *stubReservationStore) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int64, error) {
	return nil, nil
}

type stubNotifier struct {
	calls int
}

func (s *stubNotifier) Notify(ctx context.Context, reservation *domain.Reservation) error {
	s.calls++
	return nil
}

func newTestRouter(store *stubReservationStore) *mux.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tracer := otel.Tracer("test")
	service := application.NewReservationService(store, &stubNotifier{}, &stubNotifier{}, tracer, logger)
	handler := NewReservationHandler(service, tracer, logger)

	router := mux.NewRouter()
	handler.Init(router)
	return router
}

func postReservation(t *testing.T, router *mux.Router, payload map[string]interface{}, headers map[string]string) (*httptest.ResponseRecorder, SubmitResponse) {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var response SubmitResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return recorder, response
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"firstName": "Jan",
		"lastName":  "Novak",
		"email":     "jan@example.com",
		"phone":     "777123456",
		"date":      "2025-06-01",
	}
}

func TestCreateReservation_Returns201WithID(t *testing.T) {
	store := &stubReservationStore{}
	router := newTestRouter(store)

	recorder, response := postReservation(t, router, validPayload(), nil)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.ReservationID)

	require.Len(t, store.created, 1)
	assert.Equal(t, domain.ServiceOther, store.created[0].Service)
	assert.Equal(t, domain.StatusPending, store.created[0].Status)
}

func TestCreateReservation_ValidationFailureReturns400(t *testing.T) {
	store := &stubReservationStore{}
	router := newTestRouter(store)

	payload := validPayload()
	payload["email"] = "not-an-email"

	recorder, response := postReservation(t, router, payload, nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, response.Success)
	assert.Equal(t, "Validation failed", response.Message)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "email", response.Errors[0].Field)
	assert.Empty(t, store.created)
}

func TestCreateReservation_MalformedBodyReturns400(t *testing.T) {
	router := newTestRouter(&stubReservationStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateReservation_StoreFailureReturns500(t *testing.T) {
	router := newTestRouter(&stubReservationStore{failing: true})

	recorder, response := postReservation(t, router, validPayload(), nil)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, response.Success)
	assert.Equal(t, "Internal server error", response.Message)
	assert.Empty(t, response.Errors)
}

func TestCreateReservation_CapturesRequestMeta(t *testing.T) {
	store := &stubReservationStore{}
	router := newTestRouter(store)

	recorder, _ := postReservation(t, router, validPayload(), map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"User-Agent":      "integration-test",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, "203.0.113.7", store.created[0].Meta.IP)
	assert.Equal(t, "integration-test", store.created[0].Meta.UserAgent)
	assert.NotEmpty(t, store.created[0].Meta.RequestID)
}

func TestCreateReservation_MissingMetaDefaultsToUnknown(t *testing.T) {
	store := &stubReservationStore{}
	router := newTestRouter(store)

	recorder, _ := postReservation(t, router, validPayload(), nil)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, "unknown", store.created[0].Meta.IP)
}
