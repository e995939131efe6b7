package provider

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/ewoc-project/datagateway/common"
)

// LocalProvider serves products pre-staged on the local filesystem, laid out
// as {root}/{year}/{month}/{day}/{productID}.zip
type LocalProvider struct {
	root string
}

// NewLocalProvider creates a provider reading from the given root directory
func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{root: root}
}

// Name implements Provider
func (p *LocalProvider) Name() string {
	return NameLocal + " (" + p.root + ")"
}

// Download implements Provider
func (p *LocalProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	date, err := common.GetDateFromProductId(product.ID)
	if err != nil {
		return fmt.Errorf("LocalProvider: %w", err)
	}

	folders := strings.Split(date.Format("2006-01-02"), "-")
	srcZip := path.Join(p.root, folders[0], folders[1], folders[2], product.ID+".zip")
	if _, err := os.Stat(srcZip); err != nil {
		if os.IsNotExist(err) {
			return ErrProductNotFound{product.ID}
		}
		return fmt.Errorf("LocalProvider: %w", err)
	}
	if err := unarchive(srcZip, localDir); err != nil {
		return fmt.Errorf("LocalProvider.Unarchive: %w", err)
	}
	return nil
}
