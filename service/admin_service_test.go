package application

import (
	"context"
	"testing"

	"booking_service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) GetAdminByUsername(ctx context.Context, username string) (*domain.AdminCredentials, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminCredentials), args.Error(1)
}

type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) PostCacheData(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSessionCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSessionCache) DelCachedValue(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func adminSession() *domain.Session {
	return &domain.Session{Token: "session-id", Username: "admin", Role: "admin"}
}

func newTestAdminService(store *MockReservationStore) *AdminService {
	return NewAdminService(store, new(MockAdminStore), new(MockSessionCache), otel.Tracer("test"), testLogger())
}

func manyReservations(n int) []*domain.Reservation {
	reservations := make([]*domain.Reservation, 0, n)
	for i := 0; i < n; i++ {
		reservations = append(reservations, &domain.Reservation{Status: domain.StatusPending})
	}
	return reservations
}

func TestListReservations_SlicesPages(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetAllReservations", mock.Anything).Return(manyReservations(45), nil)

	service := newTestAdminService(store)

	page, err := service.ListReservations(context.Background(), adminSession(), 1)
	require.NoError(t, err)
	assert.Len(t, page.Reservations, 20)
	assert.Equal(t, 45, page.Total)

	page, err = service.ListReservations(context.Background(), adminSession(), 3)
	require.NoError(t, err)
	assert.Len(t, page.Reservations, 5)
	assert.Equal(t, 3, page.Page)
}

func TestListReservations_PageBeyondEndIsEmpty(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetAllReservations", mock.Anything).Return(manyReservations(5), nil)

	service := newTestAdminService(store)

	page, err := service.ListReservations(context.Background(), adminSession(), 7)
	require.NoError(t, err)
	assert.Empty(t, page.Reservations)
	assert.Equal(t, 5, page.Total)
}

func TestListReservations_ZeroPageDefaultsToFirst(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetAllReservations", mock.Anything).Return(manyReservations(3), nil)

	service := newTestAdminService(store)

	page, err := service.ListReservations(context.Background(), adminSession(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Reservations, 3)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	store := new(MockReservationStore)
	service := newTestAdminService(store)

	err := service.UpdateStatus(context.Background(), adminSession(), "abc", domain.ReservationStatus("archived"))
	require.Error(t, err)
	store.AssertNotCalled(t, "UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_AllowsAnyTransitionOrder(t *testing.T) {
	store := new(MockReservationStore)
	store.On("UpdateReservationStatus", mock.Anything, "abc", domain.StatusCancelled).Return(nil)

	service := newTestAdminService(store)

	// cancelled is reachable from any state, order is not enforced
	err := service.UpdateStatus(context.Background(), adminSession(), "abc", domain.StatusCancelled)
	require.NoError(t, err)
	store.AssertCalled(t, "UpdateReservationStatus", mock.Anything, "abc", domain.StatusCancelled)
}

func TestCreateManualReservation_MarksAdminSource(t *testing.T) {
	store := new(MockReservationStore)
	store.On("CreateReservation", mock.Anything, mock.Anything).Return(nil, nil)

	service := newTestAdminService(store)

	created, err := service.CreateManualReservation(context.Background(), adminSession(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "admin", created.Source)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "CZK", created.Currency)
}

func TestCreateManualReservation_ValidatesSubmission(t *testing.T) {
	store := new(MockReservationStore)
	service := newTestAdminService(store)

	submission := validSubmission()
	submission.Phone = ""

	_, err := service.CreateManualReservation(context.Background(), adminSession(), submission)
	require.Error(t, err)

	validationErr, ok := err.(*domain.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "phone", validationErr.Violations[0].Field)
	store.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}
