package s3

import (
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/mason-leap-lab/go-utils/logger"
)

var (
	log = &logger.ColorLogger{Color: true, Level: logger.LOG_LEVEL_INFO, Prefix: "S3 "}

	ErrNoBucket = errors.New("no s3 bucket configured")
)

// NewSession creates a session from the shared AWS configuration. An empty
// region keeps the configured default.
func NewSession(region string) *session.Session {
	opts := session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}
	if region != "" {
		opts.Config.Region = aws.String(region)
	}
	return session.Must(session.NewSessionWithOptions(opts))
}

// Fetcher mirrors result files between a bucket prefix and the local results directory.
type Fetcher struct {
	Bucket string
	Prefix string

	downloader s3manageriface.DownloaderAPI
	uploader   s3manageriface.UploaderAPI
}

func NewFetcher(sess *session.Session, bucket string, prefix string) *Fetcher {
	return NewFetcherWithClients(bucket, prefix, s3manager.NewDownloader(sess), s3manager.NewUploader(sess))
}

func NewFetcherWithClients(bucket string, prefix string, downloader s3manageriface.DownloaderAPI, uploader s3manageriface.UploaderAPI) *Fetcher {
	return &Fetcher{
		Bucket:     bucket,
		Prefix:     prefix,
		downloader: downloader,
		uploader:   uploader,
	}
}

// Key returns the object key of a file name.
func (f *Fetcher) Key(name string) string {
	return path.Join(f.Prefix, filepath.ToSlash(name))
}

// Fetch downloads the object of name to dst unless dst already exists. It
// returns false without error when the object does not exist.
func (f *Fetcher) Fetch(ctx aws.Context, name string, dst string) (bool, error) {
	if f.Bucket == "" {
		return false, ErrNoBucket
	}
	if _, err := os.Stat(dst); err == nil {
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".fetch-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	key := f.Key(name)
	n, err := f.downloader.DownloadWithContext(ctx, tmp, &s3.GetObjectInput{
		Bucket: aws.String(f.Bucket),
		Key:    aws.String(key),
	})
	tmp.Close()
	if IsNotFound(err) {
		log.Debug("Object s3://%s/%s does not exist", f.Bucket, key)
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return false, err
	}
	log.Info("Fetched s3://%s/%s to %s (%d bytes)", f.Bucket, key, dst, n)
	return true, nil
}

// Upload puts the local file src under the object of name and returns its location.
func (f *Fetcher) Upload(ctx aws.Context, name string, src string) (string, error) {
	if f.Bucket == "" {
		return "", ErrNoBucket
	}
	file, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer file.Close()

	result, err := f.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(f.Bucket),
		Key:    aws.String(f.Key(name)),
		Body:   file,
	})
	if err != nil {
		return "", err
	}
	log.Info("Uploaded %s to %s", src, result.Location)
	return result.Location, nil
}

// IsNotFound tells if err reports a missing object.
func IsNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	default:
		return false
	}
}
