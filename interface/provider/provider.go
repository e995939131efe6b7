package provider

import (
	"context"

	"github.com/ewoc-project/datagateway/common"
)

// Provider is the interface of a data retrieval service
type Provider interface {
	// Download a product to the given localDir
	// product.ID is for example S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3
	// or a DEM tile id like N43E001
	Download(ctx context.Context, product common.Product, localDir string) error

	// Name of the provider
	Name() string
}
