// Package bucket provides access to the S3 and S3-compatible buckets hosting
// EO products, DEM tiles and the EWoC private archive.
package bucket

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"

	"github.com/ewoc-project/datagateway/service"
	"github.com/ewoc-project/datagateway/service/log"
)

const (
	// downloadWorkers objects of the same product are fetched concurrently
	downloadWorkers = 5
	partSize        = 10 * 1024 * 1024 // 10MB per part

	uploadTries      = 3
	uploadRetryDelay = time.Second
)

// Bucket wraps an S3 bucket, plain AWS or S3-compatible (CloudFerro)
type Bucket struct {
	name         string
	client       *s3.Client
	downloader   *manager.Downloader
	uploader     *manager.Uploader
	requestPayer types.RequestPayer
}

type bucketOptions struct {
	endpoint        string
	region          string
	accessKeyId     string
	secretAccessKey string
	requesterPays   bool
}

// Option configures the bucket connection
type Option func(*bucketOptions)

// WithEndpoint connects to an S3-compatible endpoint instead of AWS
func WithEndpoint(url string) Option {
	return func(o *bucketOptions) { o.endpoint = url }
}

// WithRegion sets the bucket region
func WithRegion(region string) Option {
	return func(o *bucketOptions) { o.region = region }
}

// WithStaticCredentials overrides the default credential chain
func WithStaticCredentials(accessKeyId, secretAccessKey string) Option {
	return func(o *bucketOptions) {
		o.accessKeyId = accessKeyId
		o.secretAccessKey = secretAccessKey
	}
}

// WithRequesterPays enables the requester-pays header on all requests
func WithRequesterPays() Option {
	return func(o *bucketOptions) { o.requesterPays = true }
}

// New connects to the bucket
func New(ctx context.Context, name string, opts ...Option) (*Bucket, error) {
	bo := bucketOptions{}
	for _, opt := range opts {
		opt(&bo)
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if bo.accessKeyId != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(bo.accessKeyId, bo.secretAccessKey, "")))
	}
	if bo.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(bo.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("bucket.New.LoadDefaultConfig: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bo.endpoint != "" {
			o.BaseEndpoint = aws.String(bo.endpoint)
			o.UsePathStyle = true
		}
	})

	b := &Bucket{
		name:   name,
		client: client,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.PartSize = partSize
		}),
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = partSize
		}),
	}
	if bo.requesterPays {
		b.requestPayer = types.RequestPayerRequester
	}
	return b, nil
}

// Name of the bucket
func (b *Bucket) Name() string {
	return b.name
}

// List calls fn for each object under the prefix. Pages are fetched lazily:
// fn returning an error stops the listing.
func (b *Bucket) List(ctx context.Context, prefix string, fn func(key string, size int64) error) error {
	paginator := s3.NewListObjectsV2Paginator(b.client,
		&s3.ListObjectsV2Input{
			Bucket:       aws.String(b.name),
			Prefix:       aws.String(prefix),
			RequestPayer: b.requestPayer,
		},
		func(o *s3.ListObjectsV2PaginatorOptions) {
			o.Limit = 1000
		},
	)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("List[%s].NextPage: %w", prefix, err)
		}
		for _, object := range page.Contents {
			if err := fn(aws.ToString(object.Key), aws.ToInt64(object.Size)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FetchKey downloads a single object to localPath
func (b *Bucket) FetchKey(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("FetchKey.MkdirAll: %w", err)
	}
	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("FetchKey.Create: %w", err)
	}
	defer file.Close()

	if _, err = b.downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket:       aws.String(b.name),
		Key:          aws.String(key),
		RequestPayer: b.requestPayer,
	}); err != nil {
		os.Remove(localPath)
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return ErrObjectNotFound{b.name, key}
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			return ErrObjectNotFound{b.name, key}
		}
		return fmt.Errorf("FetchKey[%s:%s]: %w", b.name, key, err)
	}
	return nil
}

// FetchPrefix downloads all objects under the prefix to localDir, preserving
// the key structure below the prefix. Returns the number of objects fetched.
func (b *Bucket) FetchPrefix(ctx context.Context, prefix, localDir string) (int, error) {
	var keys []string
	if err := b.List(ctx, prefix, func(key string, size int64) error {
		if !strings.HasSuffix(key, "/") {
			keys = append(keys, key)
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("FetchPrefix.%w", err)
	}
	if len(keys) == 0 {
		return 0, ErrObjectNotFound{b.name, prefix}
	}

	log.Logger(ctx).Sugar().Debugf("fetching %d objects from s3://%s/%s", len(keys), b.name, prefix)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadWorkers)
	for _, key := range keys {
		g.Go(func() error {
			return b.FetchKey(gctx, key, path.Join(localDir, strings.TrimPrefix(key, prefix)))
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("FetchPrefix[%s].%w", prefix, err)
	}
	return len(keys), nil
}

// UploadFile puts a single file at the key. The operation is idempotent: a
// retry overwrites the same key with the same content.
func (b *Bucket) UploadFile(ctx context.Context, localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("UploadFile.Open: %w", err)
	}
	defer file.Close()

	if _, err = b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(b.name),
		Key:          aws.String(key),
		Body:         file,
		RequestPayer: b.requestPayer,
	}); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "AccessDenied" || apiErr.ErrorCode() == "AllAccessDisabled") {
			return ErrUploadDenied{b.name, key}
		}
		return fmt.Errorf("UploadFile[%s:%s]: %w", b.name, key, err)
	}
	return nil
}

// UploadProduct puts all the files of localDir under the prefix. suffixFilter
// restricts the upload to files with the given extension ("" uploads all).
// Returns the number of files uploaded.
func (b *Bucket) UploadProduct(ctx context.Context, localDir, prefix, suffixFilter string) (int, error) {
	var files []string
	err := filepath.Walk(localDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && (suffixFilter == "" || strings.HasSuffix(p, suffixFilter)) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("UploadProduct.Walk: %w", err)
	}

	uploaded := 0
	for _, file := range files {
		rel, err := filepath.Rel(localDir, file)
		if err != nil {
			return uploaded, fmt.Errorf("UploadProduct.Rel: %w", err)
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		// the upload of a file is idempotent, a retry overwrites the key
		err = service.Retriable(ctx, func() error {
			err := b.UploadFile(ctx, file, key)
			var denied ErrUploadDenied
			if errors.As(err, &denied) {
				return service.MakeFatal(err)
			}
			return err
		}, uploadRetryDelay, uploadTries)
		if err != nil {
			return uploaded, service.MergeErrors(true, ErrPartialUpload{b.name, prefix, uploaded, len(files)}, err)
		}
		uploaded++
	}
	log.Logger(ctx).Sugar().Infof("uploaded %d files to s3://%s/%s", uploaded, b.name, prefix)
	return uploaded, nil
}
