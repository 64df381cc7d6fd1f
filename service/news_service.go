package application

import (
	"context"

	"booking_service/domain"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type NewsService struct {
	store  domain.NewsStore
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewNewsService(store domain.NewsStore, tracer trace.Tracer, logger *logrus.Logger) *NewsService {
	return &NewsService{
		store:  store,
		tracer: tracer,
		logger: logger,
	}
}

func (service *NewsService) GetPublished(ctx context.Context) ([]*domain.NewsItem, error) {
	ctx, span := service.tracer.Start(ctx, "NewsService.GetPublished")
	defer span.End()

	return service.store.GetPublishedNewsItems(ctx)
}

func (service *NewsService) GetAll(ctx context.Context, session *domain.Session) ([]*domain.NewsItem, error) {
	ctx, span := service.tracer.Start(ctx, "NewsService.GetAll")
	defer span.End()

	return service.store.GetAllNewsItems(ctx)
}

func (service *NewsService) Get(ctx context.Context, id string) (*domain.NewsItem, error) {
	ctx, span := service.tracer.Start(ctx, "NewsService.Get")
	defer span.End()

	return service.store.GetNewsItem(ctx, id)
}

func (service *NewsService) Create(ctx context.Context, session *domain.Session, item *domain.NewsItem) (*domain.NewsItem, error) {
	ctx, span := service.tracer.Start(ctx, "NewsService.Create")
	defer span.End()

	created, err := service.store.CreateNewsItem(ctx, item)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	service.logger.Infof("admin %s created news item %s", session.Username, created.ID.Hex())
	return created, nil
}

func (service *NewsService) Update(ctx context.Context, session *domain.Session, item *domain.NewsItem) error {
	ctx, span := service.tracer.Start(ctx, "NewsService.Update")
	defer span.End()

	return service.store.UpdateNewsItem(ctx, item)
}

// Delete is admin-only; reservations are never deleted, news items are.
func (service *NewsService) Delete(ctx context.Context, session *domain.Session, id string) error {
	ctx, span := service.tracer.Start(ctx, "NewsService.Delete")
	defer span.End()

	service.logger.Infof("admin %s deleted news item %s", session.Username, id)
	return service.store.DeleteNewsItem(ctx, id)
}
