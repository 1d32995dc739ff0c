package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Bucket определяет допустимые бакеты объектного хранилища
type Bucket string

const BucketAudio Bucket = "audio"

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketAudio:
		return BucketAudio, nil
	default:
		return "", fmt.Errorf("unknown bucket: %q", s)
	}
}

// FileObject идентифицирует объект во внешнем хранилище
type FileObject struct {
	Bucket    Bucket `json:"bucket"`
	ObjectKey string `json:"objectKey"`
	FileSize  int64  `json:"fileSize"`
}

// Value сериализует FileObject в jsonb колонку
func (f FileObject) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FileObject) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("cannot scan %T into FileObject", src)
	}
}
