package provider

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/bucket"
	"github.com/ewoc-project/datagateway/tiling"
)

// CreodiasProvider implements Provider on top of the DIAS bucket, reachable
// from virtual machines running on Creodias
type CreodiasProvider struct{}

// NewCreodiasProvider creates a new Provider from the DIAS bucket
func NewCreodiasProvider() *CreodiasProvider {
	return &CreodiasProvider{}
}

// Name implements Provider
func (p *CreodiasProvider) Name() string {
	return NameCreodias
}

// Download implements Provider
func (p *CreodiasProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	b, err := bucket.NewCreodias(ctx)
	if err != nil {
		return fmt.Errorf("CreodiasProvider: %w", err)
	}

	if product.Kind == common.DemSRTM1s {
		return p.downloadSRTMTile(ctx, b, product, localDir)
	}

	prefix, err := bucket.CreodiasProductPrefix(product)
	if err != nil {
		return fmt.Errorf("CreodiasProvider.%w", err)
	}
	if _, err := b.FetchPrefix(ctx, prefix, path.Join(localDir, product.ID)); err != nil {
		return fmt.Errorf("CreodiasProvider.%w", notFoundAs(err, product.ID))
	}
	return nil
}

// downloadSRTMTile fetches the zipped SRTMGL1 tile and unpacks the hgt file
func (p *CreodiasProvider) downloadSRTMTile(ctx context.Context, b *bucket.Bucket, product common.Product, localDir string) error {
	tile, err := tiling.ParseDemTile(product.ID)
	if err != nil {
		return fmt.Errorf("CreodiasProvider: %w", err)
	}
	key := bucket.CreodiasSRTMKey(tile)
	localZip := path.Join(localDir, path.Base(key))
	if err := b.FetchKey(ctx, key, localZip); err != nil {
		return fmt.Errorf("CreodiasProvider.%w", notFoundAs(err, product.ID))
	}
	defer os.Remove(localZip)
	if err := unarchive(localZip, localDir); err != nil {
		return fmt.Errorf("CreodiasProvider.Unarchive: %w", err)
	}
	return nil
}
