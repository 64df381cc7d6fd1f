package domain

import "context"

type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*AdminCredentials, error)
}

type SessionCache interface {
	PostCacheData(ctx context.Context, key string, value string) error
	GetCachedValue(ctx context.Context, key string) (string, error)
	DelCachedValue(ctx context.Context, key string) error
}
