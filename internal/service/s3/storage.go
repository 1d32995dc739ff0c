package s3

import (
	"context"
	"time"
)

// Storage определяет интерфейс для работы с S3-совместимым хранилищем.
// Сервис никогда не проксирует байты объектов: клиент ходит в хранилище
// напрямую по подписанным ссылкам.
type Storage interface {
	// ObjectExists проверяет наличие объекта через HEAD-запрос
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	// PresignPutObject выдает подписанную ссылку на загрузку объекта
	PresignPutObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	// PresignGetObject выдает подписанную ссылку на скачивание объекта
	PresignGetObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
