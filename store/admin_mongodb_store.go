package store

import (
	"context"

	"booking_service/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"
)

const ADMIN_COLLECTION = "admins"

type AdminMongoDBStore struct {
	admins *mongo.Collection
	tracer trace.Tracer
}

func NewAdminMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.AdminStore {
	admins := client.Database(DATABASE).Collection(ADMIN_COLLECTION)
	return &AdminMongoDBStore{
		admins: admins,
		tracer: tracer,
	}
}

func (store *AdminMongoDBStore) GetAdminByUsername(ctx context.Context, username string) (*domain.AdminCredentials, error) {
	ctx, span := store.tracer.Start(ctx, "AdminMongoDBStore.GetAdminByUsername")
	defer span.End()

	filter := bson.M{"username": username}
	result := store.admins.FindOne(ctx, filter)

	var admin domain.AdminCredentials
	if err := result.Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}
