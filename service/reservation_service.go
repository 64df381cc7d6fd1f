package application

import (
	"context"
	"time"

	"booking_service/domain"
	"booking_service/store"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ReservationService runs the intake pipeline: validate, persist,
// then fire both notifications best-effort. Persistence alone decides
// the outcome; a lost chat message must never lose a booking.
type ReservationService struct {
	store         domain.ReservationStore
	chatNotifier  domain.Notifier
	emailNotifier domain.Notifier
	cbChat        *gobreaker.CircuitBreaker
	cbEmail       *gobreaker.CircuitBreaker
	tracer        trace.Tracer
	logger        *logrus.Logger
}

func NewReservationService(reservationStore domain.ReservationStore, chatNotifier, emailNotifier domain.Notifier, tracer trace.Tracer, logger *logrus.Logger) *ReservationService {
	return &ReservationService{
		store:         reservationStore,
		chatNotifier:  chatNotifier,
		emailNotifier: emailNotifier,
		cbChat:        CircuitBreaker("chatNotifier", logger),
		cbEmail:       CircuitBreaker("emailNotifier", logger),
		tracer:        tracer,
		logger:        logger,
	}
}

func (service *ReservationService) CreateReservation(ctx context.Context, submission *domain.ReservationSubmission, meta domain.RequestMeta) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.CreateReservation")
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
		Source:          store.SourceWebsite,
		Meta:            meta,
	}

	created, err := service.store.CreateReservation(ctx, reservation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		service.logger.Errorf("reservation persist failed: %s", err)
		return nil, err
	}

	// Both notifications are fire-and-forget side channels. Each one
	// is isolated: failure is logged and swallowed, and neither may
	// abort the other.
	service.dispatch(ctx, service.cbChat, service.chatNotifier, created, "chat")
	service.dispatch(ctx, service.cbEmail, service.emailNotifier, created, "email")

	return created, nil
}

func (service *ReservationService) dispatch(ctx context.Context, cb *gobreaker.CircuitBreaker, notifier domain.Notifier, reservation *domain.Reservation, channel string) {
	_, err := cb.Execute(func() (interface{}, error) {
		return nil, notifier.Notify(ctx, reservation)
	})
	if err != nil {
		service.logger.Errorf("%s notification failed for reservation %s: %s", channel, reservation.ID.Hex(), err)
	}
}

func CircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warnf("Circuit Breaker '%s' changed from '%s' to '%s'", name, from, to)
			},
		},
	)
}
