package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ewoc-project/datagateway/interface/bucket"
	"github.com/ewoc-project/datagateway/service/log"
)

type config struct {
	File         string
	ProductDir   string
	Key          string
	Prefix       string
	Bucket       string
	SuffixFilter string
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.File, "file", "", "single file to upload")
	flag.StringVar(&config.Key, "key", "", "destination key of the file")
	flag.StringVar(&config.ProductDir, "prd", "", "product directory to upload")
	flag.StringVar(&config.Prefix, "prefix", "", "destination prefix of the product")
	flag.StringVar(&config.Bucket, "bucket", "ard", "destination bucket (ard or prd). EWOC_DEV_MODE switches to the dev namespace.")
	flag.StringVar(&config.SuffixFilter, "suffix", "", "only upload the files with this extension (e.g. .tif)")
	flag.Parse()

	if config.File == "" && config.ProductDir == "" {
		return nil, fmt.Errorf("missing file or prd config flag")
	}
	if config.File != "" && config.Key == "" {
		return nil, fmt.Errorf("file upload requires a key")
	}
	if config.ProductDir != "" && config.Prefix == "" {
		return nil, fmt.Errorf("product upload requires a prefix")
	}
	return &config, nil
}

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		log.Fatal("error", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	config, err := newAppConfig()
	if err != nil {
		return err
	}

	cloudProvider := os.Getenv("EWOC_CLOUD_PROVIDER")
	devMode := bucket.EWoCDevMode()

	var b *bucket.Bucket
	switch config.Bucket {
	case "ard":
		b, err = bucket.NewEWoCARD(ctx, cloudProvider, devMode)
	case "prd":
		b, err = bucket.NewEWoCPRD(ctx, cloudProvider, devMode)
	default:
		return fmt.Errorf("bucket must be ard or prd")
	}
	if err != nil {
		return err
	}

	if config.File != "" {
		if err := b.UploadFile(ctx, config.File, config.Key); err != nil {
			return err
		}
		log.Logger(ctx).Sugar().Infof("uploaded %s to s3://%s/%s", config.File, b.Name(), config.Key)
		return nil
	}

	uploaded, err := b.UploadProduct(ctx, config.ProductDir, config.Prefix, config.SuffixFilter)
	if err != nil {
		return err
	}
	log.Logger(ctx).Sugar().Infof("uploaded %d files to s3://%s/%s", uploaded, b.Name(), config.Prefix)
	return nil
}
