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

const NEWS_COLLECTION = "news"

type NewsMongoDBStore struct {
	news   *mongo.Collection
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewNewsMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.NewsStore {
	news := client.Database(DATABASE).Collection(NEWS_COLLECTION)
	return &NewsMongoDBStore{
		news:   news,
		tracer: tracer,
		logger: logger,
	}
}

func (store *NewsMongoDBStore) CreateNewsItem(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.CreateNewsItem")
	defer span.End()

	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now().UTC()
	if item.Published && item.PublishedAt.IsZero() {
		item.PublishedAt = item.CreatedAt
	}

	result, err := store.news.InsertOne(ctx, item)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("insert news item: %s", err)
		return nil, err
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (store *NewsMongoDBStore) GetNewsItem(ctx context.Context, id string) (*domain.NewsItem, error) {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.GetNewsItem")
	defer span.End()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": objectID}
	return store.filterOne(ctx, filter)
}

func (store *NewsMongoDBStore) GetAllNewsItems(ctx context.Context) ([]*domain.NewsItem, error) {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.GetAllNewsItems")
	defer span.End()

	filter := bson.D{{}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return store.filter(ctx, filter, opts)
}

func (store *NewsMongoDBStore) GetPublishedNewsItems(ctx context.Context) ([]*domain.NewsItem, error) {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.GetPublishedNewsItems")
	defer span.End()

	filter := bson.M{"published": true}
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	return store.filter(ctx, filter, opts)
}

func (store *NewsMongoDBStore) UpdateNewsItem(ctx context.Context, item *domain.NewsItem) error {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.UpdateNewsItem")
	defer span.End()

	item.UpdatedAt = time.Now().UTC()
	if item.Published && item.PublishedAt.IsZero() {
		item.PublishedAt = item.UpdatedAt
	}

	filter := bson.M{"_id": item.ID}
	update := bson.M{"$set": bson.M{
		"title":       item.Title,
		"perex":       item.Perex,
		"content":     item.Content,
		"mainImage":   item.MainImage,
		"published":   item.Published,
		"publishedAt": item.PublishedAt,
		"updatedAt":   item.UpdatedAt,
	}}

	result, err := store.news.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (store *NewsMongoDBStore) DeleteNewsItem(ctx context.Context, id string) error {
	ctx, span := store.tracer.Start(ctx, "NewsMongoDBStore.DeleteNewsItem")
	defer span.End()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := store.news.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (store *NewsMongoDBStore) filter(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]*domain.NewsItem, error) {
	cursor, err := store.news.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeNewsItems(ctx, cursor)
}

func (store *NewsMongoDBStore) filterOne(ctx context.Context, filter interface{}) (item *domain.NewsItem, err error) {
	result := store.news.FindOne(ctx, filter)
	err = result.Decode(&item)
	return
}

func decodeNewsItems(ctx context.Context, cursor *mongo.Cursor) (items []*domain.NewsItem, err error) {
	for cursor.Next(ctx) {
		var item domain.NewsItem
		err = cursor.Decode(&item)
		if err != nil {
			return
		}
		items = append(items, &item)
	}
	err = cursor.Err()
	return
}
