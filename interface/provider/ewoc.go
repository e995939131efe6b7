package provider

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/bucket"
)

// EWoCProvider implements Provider on top of the EWoC auxiliary-data bucket
type EWoCProvider struct {
	// CloudProvider selects the endpoint hosting the archive (creodias or aws)
	CloudProvider string
}

// NewEWoCProvider creates a new Provider from the EWoC auxiliary-data bucket
func NewEWoCProvider(cloudProvider string) *EWoCProvider {
	return &EWoCProvider{CloudProvider: cloudProvider}
}

// Name implements Provider
func (p *EWoCProvider) Name() string {
	return NameEWoC
}

// Download implements Provider. The aux-data bucket stores the 90m SRTM
// tiles zipped on the CGIAR 5°x5° grid; they are unpacked into a srtm3s
// subdirectory.
func (p *EWoCProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	if product.Kind != common.DemSRTM3s {
		return fmt.Errorf("EWoCProvider: kind %s not supported", product.Kind)
	}
	b, err := bucket.NewEWoCAuxData(ctx, p.CloudProvider)
	if err != nil {
		return fmt.Errorf("EWoCProvider: %w", err)
	}

	key := bucket.EWoCSRTM3sKey(product.ID)
	localZip := path.Join(localDir, path.Base(key))
	if err := b.FetchKey(ctx, key, localZip); err != nil {
		return fmt.Errorf("EWoCProvider.%w", notFoundAs(err, product.ID))
	}
	defer os.Remove(localZip)

	outDir := path.Join(localDir, "srtm3s")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("EWoCProvider.MkdirAll: %w", err)
	}
	if err := unarchive(localZip, outDir); err != nil {
		return fmt.Errorf("EWoCProvider.Unarchive: %w", err)
	}
	return nil
}
