package domain

import "context"

type NewsStore interface {
	CreateNewsItem(ctx context.Context, item *NewsItem) (*NewsItem, error)
	GetNewsItem(ctx context.Context, id string) (*NewsItem, error)
	GetAllNewsItems(ctx context.Context) ([]*NewsItem, error)
	GetPublishedNewsItems(ctx context.Context) ([]*NewsItem, error)
	UpdateNewsItem(ctx context.Context, item *NewsItem) error
	DeleteNewsItem(ctx context.Context, id string) error
}
