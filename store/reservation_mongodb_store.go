package store

import (
	"context"
	"time"

	"booking_service/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DATABASE               = "booking"
	RESERVATION_COLLECTION = "reservations"
	DefaultCurrency        = "CZK"
	SourceWebsite          = "website"
	SourceAdmin            = "admin"
)

type ReservationMongoDBStore struct {
	reservations *mongo.Collection
	tracer       trace.Tracer
	logger       *logrus.Logger
}

func NewReservationMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.ReservationStore {
	reservations := client.Database(DATABASE).Collection(RESERVATION_COLLECTION)
	return &ReservationMongoDBStore{
		reservations: reservations,
		tracer:       tracer,
		logger:       logger,
	}
}

func (store *ReservationMongoDBStore) CreateReservation(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.CreateReservation")
	defer span.End()

	reservation.ID = primitive.NewObjectID()
	reservation.CreatedAt = time.Now().UTC()

	result, err := store.reservations.InsertOne(ctx, reservation)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("insert reservation: %s", err)
		return nil, err
	}
	reservation.ID = result.InsertedID.(primitive.ObjectID)
	return reservation, nil
}

func (store *ReservationMongoDBStore) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.GetReservation")
	defer span.End()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": objectID}
	return store.filterOne(ctx, filter)
}

func (store *ReservationMongoDBStore) GetAllReservations(ctx context.Context) ([]*domain.Reservation, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.GetAllReservations")
	defer span.End()

	filter := bson.D{{}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return store.filter(ctx, filter, opts)
}

func (store *ReservationMongoDBStore) UpdateReservation(ctx context.Context, reservation *domain.Reservation) error {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.UpdateReservation")
	defer span.End()

	reservation.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": reservation.ID}
	update := bson.M{"$set": bson.M{
		"firstName":       reservation.FirstName,
		"lastName":        reservation.LastName,
		"email":           reservation.Email,
		"phone":           reservation.Phone,
		"service":         reservation.Service,
		"package":         reservation.Package,
		"date":            reservation.Date,
		"time":            reservation.Time,
		"pickupAddress":   reservation.PickupAddress,
		"deliveryAddress": reservation.DeliveryAddress,
		"address":         reservation.Address,
		"apartmentSize":   reservation.ApartmentSize,
		"message":         reservation.Message,
		"locale":          reservation.Locale,
		"status":          reservation.Status,
		"price":           reservation.Price,
		"updatedAt":       reservation.UpdatedAt,
	}}

	result, err := store.reservations.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (store *ReservationMongoDBStore) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.UpdateReservationStatus")
	defer span.End()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := store.reservations.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (store *ReservationMongoDBStore) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int64, error) {
	ctx, span := store.tracer.Start(ctx, "ReservationMongoDBStore.CountByStatus")
	defer span.End()

	statuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	counts := make(map[domain.ReservationStatus]int64, len(statuses))
	for _, status := range statuses {
		count, err := store.reservations.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}

func (store *ReservationMongoDBStore) filter(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]*domain.Reservation, error) {
	cursor, err := store.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeReservations(ctx, cursor)
}

func (store *ReservationMongoDBStore) filterOne(ctx context.Context, filter interface{}) (reservation *domain.Reservation, err error) {
	result := store.reservations.FindOne(ctx, filter)
	err = result.Decode(&reservation)
	return
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) (reservations []*domain.Reservation, err error) {
	for cursor.Next(ctx) {
		var reservation domain.Reservation
		err = cursor.Decode(&reservation)
		if err != nil {
			return
		}
		reservations = append(reservations, &reservation)
	}
	err = cursor.Err()
	return
}
