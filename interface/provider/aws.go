package provider

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/bucket"
	"github.com/ewoc-project/datagateway/tiling"
)

// AWSProvider implements Provider on top of the AWS open-data buckets
type AWSProvider struct {
	// MaskOnly restricts Sentinel-2 L2A retrieval to the scene classification mask
	MaskOnly bool
}

// NewAWSProvider creates a new Provider from the AWS open-data buckets
func NewAWSProvider() *AWSProvider {
	return &AWSProvider{}
}

// Name implements Provider
func (p *AWSProvider) Name() string {
	return NameAWS
}

// Download implements Provider
func (p *AWSProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	b, err := bucket.NewAWS(ctx, product.Kind)
	if err != nil {
		return fmt.Errorf("AWSProvider: %w", err)
	}

	switch product.Kind {
	case common.DemCOP1s, common.DemCOP3s:
		return p.downloadCopDemTile(ctx, b, product, localDir)
	case common.Sentinel2L2A:
		if p.MaskOnly {
			return p.downloadS2Mask(ctx, b, product, localDir)
		}
	}

	prefix, err := bucket.AWSProductPrefix(product)
	if err != nil {
		return fmt.Errorf("AWSProvider.%w", err)
	}
	if _, err := b.FetchPrefix(ctx, prefix, path.Join(localDir, product.ID)); err != nil {
		return fmt.Errorf("AWSProvider.%w", notFoundAs(err, product.ID))
	}
	return nil
}

func (p *AWSProvider) downloadCopDemTile(ctx context.Context, b *bucket.Bucket, product common.Product, localDir string) error {
	tile, err := tiling.ParseDemTile(product.ID)
	if err != nil {
		return fmt.Errorf("AWSProvider: %w", err)
	}
	key, err := bucket.CopDemKey(tile, product.Kind)
	if err != nil {
		return fmt.Errorf("AWSProvider.%w", err)
	}
	if err := b.FetchKey(ctx, key, path.Join(localDir, path.Base(key))); err != nil {
		return fmt.Errorf("AWSProvider.%w", notFoundAs(err, product.ID))
	}
	return nil
}

func (p *AWSProvider) downloadS2Mask(ctx context.Context, b *bucket.Bucket, product common.Product, localDir string) error {
	prefix, err := bucket.AWSTilePrefix(product)
	if err != nil {
		return fmt.Errorf("AWSProvider.%w", err)
	}
	key := prefix + "R20m/SCL.jp2"
	if err := b.FetchKey(ctx, key, path.Join(localDir, product.ID, "SCL.jp2")); err != nil {
		return fmt.Errorf("AWSProvider.%w", notFoundAs(err, product.ID))
	}
	return nil
}

// notFoundAs turns a missing object into a product-level not-found error
func notFoundAs(err error, productID string) error {
	var notFound bucket.ErrObjectNotFound
	if errors.As(err, &notFound) {
		return ErrProductNotFound{productID}
	}
	return err
}
