package application

import (
	"context"
	"fmt"

	"booking_service/authorization"
	"booking_service/domain"
	"booking_service/errors"
	"booking_service/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const ReservationPageSize = 20

// AdminService serves the dashboard. Every operation takes the explicit
// session resolved by the auth middleware; there is no ambient auth state.
type AdminService struct {
	reservations domain.ReservationStore
	admins       domain.AdminStore
	sessions     domain.SessionCache
	tracer       trace.Tracer
	logger       *logrus.Logger
}

func NewAdminService(reservations domain.ReservationStore, admins domain.AdminStore, sessions domain.SessionCache, tracer trace.Tracer, logger *logrus.Logger) *AdminService {
	return &AdminService{
		reservations: reservations,
		admins:       admins,
		sessions:     sessions,
		tracer:       tracer,
		logger:       logger,
	}
}

func (service *AdminService) Login(ctx context.Context, request *domain.LoginRequest) (string, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.Login")
	defer span.End()

	admin, err := service.admins.GetAdminByUsername(ctx, request.Username)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if admin == nil {
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(request.Password)); err != nil {
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	sessionID := uuid.New().String()
	token, err := authorization.GenerateJWT(admin.Username, admin.Role, sessionID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if err := service.sessions.PostCacheData(ctx, sessionID, admin.Username); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return token, nil
}

func (service *AdminService) Logout(ctx context.Context, session *domain.Session) error {
	ctx, span := service.tracer.Start(ctx, "AdminService.Logout")
	defer span.End()

	return service.sessions.DelCachedValue(ctx, session.Token)
}

type ReservationPage struct {
	Reservations []*domain.Reservation `json:"reservations"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
	Total        int                   `json:"total"`
}

// ListReservations fetches the whole collection and slices it here.
// The collection is small enough that server-side pagination has never
// been worth the extra query surface.
func (service *AdminService) ListReservations(ctx context.Context, session *domain.Session, page int) (*ReservationPage, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.ListReservations")
	defer span.End()

	all, err := service.reservations.GetAllReservations(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	start := (page - 1) * ReservationPageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + ReservationPageSize
	if end > len(all) {
		end = len(all)
	}

	return &ReservationPage{
		Reservations: all[start:end],
		Page:         page,
		PageSize:     ReservationPageSize,
		Total:        len(all),
	}, nil
}

func (service *AdminService) GetReservation(ctx context.Context, session *domain.Session, id string) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.GetReservation")
	defer span.End()

	return service.reservations.GetReservation(ctx, id)
}

func (service *AdminService) CountByStatus(ctx context.Context, session *domain.Session) (map[domain.ReservationStatus]int64, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.CountByStatus")
	defer span.End()

	return service.reservations.CountByStatus(ctx)
}

// CreateManualReservation records a booking taken over the phone.
// The submission schema is the same as the public form's.
func (service *AdminService) CreateManualReservation(ctx context.Context, session *domain.Session, submission *domain.ReservationSubmission) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.CreateManualReservation")
	defer span.End()

	if validationErr := submission.Validate(); validationErr != nil {
		span.SetStatus(codes.Error, validationErr.Error())
		return nil, validationErr
	}
	submission.Normalize()

	reservation := &domain.Reservation{
		FirstName:       submission.FirstName,
		LastName:        submission.LastName,
		Email:           submission.Email,
		Phone:           submission.Phone,
		Service:         domain.ServiceType(submission.Service),
		Package:         submission.Package,
		Date:            submission.Date,
		Time:            domain.TimeWindow(submission.Time),
		PickupAddress:   submission.PickupAddress,
		DeliveryAddress: submission.DeliveryAddress,
		Address:         submission.Address,
		ApartmentSize:   submission.ApartmentSize,
		Message:         submission.Message,
		Locale:          domain.Locale(submission.Locale),
		Status:          domain.StatusPending,
		Currency:        store.DefaultCurrency,
		Source:          store.SourceAdmin,
		Meta: domain.RequestMeta{
			IP:        "admin",
			UserAgent: "admin-dashboard",
			RequestID: uuid.New().String(),
		},
	}

	return service.reservations.CreateReservation(ctx, reservation)
}

// UpdateReservation is a full-record overwrite, last-write-wins.
// Concurrent admin edits are not conflict-checked.
func (service *AdminService) UpdateReservation(ctx context.Context, session *domain.Session, reservation *domain.Reservation) error {
	ctx, span := service.tracer.Start(ctx, "AdminService.UpdateReservation")
	defer span.End()

	if !reservation.Status.Valid() {
		return fmt.Errorf(errors.InvalidStatusError)
	}
	return service.reservations.UpdateReservation(ctx, reservation)
}

// UpdateStatus checks enum membership only; transition order is not
// enforced, cancelled is reachable from any state.
func (service *AdminService) UpdateStatus(ctx context.Context, session *domain.Session, id string, status domain.ReservationStatus) error {
	ctx, span := service.tracer.Start(ctx, "AdminService.UpdateStatus")
	defer span.End()

	if !status.Valid() {
		return fmt.Errorf(errors.InvalidStatusError)
	}

	service.logger.Infof("admin %s set reservation %s status to %s", session.Username, id, status)
	return service.reservations.UpdateReservationStatus(ctx, id, status)
}

// ResolveSession turns a verified token into the explicit session object
// handed to the admin operations. The session id must still be present
// in the cache, so logout takes effect immediately.
func (service *AdminService) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	ctx, span := service.tracer.Start(ctx, "AdminService.ResolveSession")
	defer span.End()

	claims, err := authorization.VerifyJWT(token)
	if err != nil {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	username, err := service.sessions.GetCachedValue(ctx, claims.SessionID)
	if err != nil || username != claims.Username {
		return nil, fmt.Errorf(errors.ExpiredSessionError)
	}

	return &domain.Session{
		Token:     claims.SessionID,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
