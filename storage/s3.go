package storage

import (
	"io"
	"net/http"
	"os"
	"strings"

	"yatube/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	bucket   string
	prefix   string
	s3Client *s3.S3
}

func NewS3Storage(bucket, region, prefix string) *S3Storage {
	sess := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return &S3Storage{
		bucket:   bucket,
		prefix:   prefix,
		s3Client: s3.New(sess),
	}
}

func (s *S3Storage) getRemotePath(path string) string {
	if s.prefix == "" {
		return path
	}
	return s.prefix + "/" + path
}

// getTempPath returns a local temp location used when a request needs the
// object as a file
func (s *S3Storage) getTempPath(path string) string {
	return config.TMP_DIR + "/" + strings.ReplaceAll(path, "/", "_")
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.getRemotePath(path)),
		Body:   reader,
	})
	if err != nil {
		return 0, err
	}
	head, err := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.getRemotePath(path)),
	})
	if err != nil || head.ContentLength == nil {
		return 0, err
	}
	return *head.ContentLength, nil
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.getRemotePath(path)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	// Download to a temp file so range requests and content types work
	tempPath := s.getTempPath(path)
	out, err := os.Create(tempPath)
	if err != nil {
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	_, err = s.Load(path, out)
	out.Close()
	if err != nil {
		os.Remove(tempPath)
		http.NotFound(writer, request)
		return
	}
	http.ServeFile(writer, request, tempPath)
	os.Remove(tempPath)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(s.getRemotePath(path)),
	})
	return err
}
