// Package storage persists uploaded post images. The backend is picked from
// config: a local media directory by default, an S3 bucket when configured.
package storage

import (
	"io"
	"net/http"

	"yatube/config"
)

type Storage interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var media Storage

func Init() {
	if config.S3_BUCKET != "" {
		media = NewS3Storage(config.S3_BUCKET, config.S3_REGION, config.S3_PREFIX)
		return
	}
	media = NewDiskStorage(config.MEDIA_BUCKET_DIR)
}

func Media() Storage {
	return media
}
