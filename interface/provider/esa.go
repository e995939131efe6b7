package provider

import (
	"context"
	"fmt"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/tiling"
)

const esaSRTMRoot = "http://step.esa.int/auxdata/dem/SRTMGL1/"

// ESAProvider implements Provider for the SRTMGL1 tiles published on the
// ESA SNAP auxdata website
type ESAProvider struct{}

// NewESAProvider creates a new Provider from the ESA auxdata website
func NewESAProvider() *ESAProvider {
	return &ESAProvider{}
}

// Name implements Provider
func (p *ESAProvider) Name() string {
	return NameESA
}

// Download implements Provider
func (p *ESAProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	if product.Kind != common.DemSRTM1s {
		return fmt.Errorf("ESAProvider: kind %s not supported", product.Kind)
	}
	tile, err := tiling.ParseDemTile(product.ID)
	if err != nil {
		return fmt.Errorf("ESAProvider: %w", err)
	}
	url := esaSRTMRoot + tile.ID() + ".SRTMGL1.hgt.zip"
	if err := downloadZip(ctx, url, localDir, tile.ID(), p.Name(), nil); err != nil {
		return fmt.Errorf("ESAProvider.%w", err)
	}
	return nil
}
