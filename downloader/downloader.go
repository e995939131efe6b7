// Package downloader orchestrates the retrieval of EO products and DEM tiles
// through an ordered list of providers.
package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/provider"
	"github.com/ewoc-project/datagateway/service"
	"github.com/ewoc-project/datagateway/service/log"
	"github.com/ewoc-project/datagateway/tiling"
)

// AttemptFailure records why a provider attempt failed
type AttemptFailure struct {
	Provider string
	Err      error
}

// ErrRetrievalExhausted is returned when every candidate provider failed.
// Failures are listed in attempt order.
type ErrRetrievalExhausted struct {
	Product  string
	Failures []AttemptFailure
}

func (e ErrRetrievalExhausted) Error() string {
	reasons := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		reasons[i] = fmt.Sprintf("%s: %v", f.Provider, f.Err)
	}
	return fmt.Sprintf("retrieval of %s exhausted after %d providers [%s]", e.Product, len(e.Failures), strings.Join(reasons, "; "))
}

// ErrInvalidOutputTarget is returned before any provider is tried when the
// output directory cannot receive the product
type ErrInvalidOutputTarget struct {
	Path   string
	Reason string
}

func (e ErrInvalidOutputTarget) Error() string {
	return fmt.Sprintf("invalid output target %s: %s", e.Path, e.Reason)
}

// MaterializedProduct describes a successful retrieval
type MaterializedProduct struct {
	Product  common.Product
	Provider string
	// Path of the materialized data below the output directory
	Path string
}

// checkOutputTarget validates the output directory before any attempt
func checkOutputTarget(outDir string) error {
	info, err := os.Stat(outDir)
	if os.IsNotExist(err) {
		return ErrInvalidOutputTarget{outDir, "does not exist"}
	}
	if err != nil {
		return ErrInvalidOutputTarget{outDir, err.Error()}
	}
	if !info.IsDir() {
		return ErrInvalidOutputTarget{outDir, "not a directory"}
	}
	probe, err := os.CreateTemp(outDir, ".write-check-")
	if err != nil {
		return ErrInvalidOutputTarget{outDir, "not writable"}
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// Retrieve downloads the product through the first successful provider.
// Candidates are tried strictly in order; at most one succeeds. The product
// is staged in a scratch directory and moved into outDir only on success, so
// a failed attempt leaves no partial data behind.
func Retrieve(ctx context.Context, providers []provider.Provider, product common.Product, outDir string) (MaterializedProduct, error) {
	if err := checkOutputTarget(outDir); err != nil {
		return MaterializedProduct{}, err
	}
	if len(providers) == 0 {
		return MaterializedProduct{}, ErrNoProviderAvailable{product.Kind}
	}

	scratch := filepath.Join(outDir, ".stage-"+uuid.New().String())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return MaterializedProduct{}, ErrInvalidOutputTarget{outDir, err.Error()}
	}
	defer os.RemoveAll(scratch)

	log.Logger(ctx).Sugar().Infof("downloading %s", product.ID)
	var failures []AttemptFailure
	for _, p := range providers {
		err := p.Download(ctx, product, scratch)
		if err == nil {
			materialized, err := materialize(scratch, outDir, product)
			if err != nil {
				return MaterializedProduct{}, fmt.Errorf("Retrieve.%w", err)
			}
			materialized.Provider = p.Name()
			log.Logger(ctx).Sugar().Infof("downloaded %s from %s", product.ID, p.Name())
			return materialized, nil
		}
		log.Logger(ctx).Sugar().Warnf("%s: %v", p.Name(), err)
		failures = append(failures, AttemptFailure{Provider: p.Name(), Err: err})
		// clean the scratch between attempts
		if entries, e := os.ReadDir(scratch); e == nil {
			for _, entry := range entries {
				os.RemoveAll(filepath.Join(scratch, entry.Name()))
			}
		}
		if ctx.Err() != nil {
			break
		}
	}
	// a cancelled request is not an exhausted one
	if ctxErr := ctx.Err(); ctxErr != nil {
		return MaterializedProduct{}, fmt.Errorf("Retrieve of %s interrupted after %d attempts: %w", product.ID, len(failures), ctxErr)
	}
	return MaterializedProduct{}, ErrRetrievalExhausted{Product: product.ID, Failures: failures}
}

// materialize moves the staged entries into the output directory with a
// rename, which is atomic on the same filesystem
func materialize(scratch, outDir string, product common.Product) (MaterializedProduct, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return MaterializedProduct{}, service.MakeTemporary(fmt.Errorf("materialize.ReadDir: %w", err))
	}
	if len(entries) == 0 {
		return MaterializedProduct{}, fmt.Errorf("materialize: provider produced no file")
	}
	materializedPath := outDir
	for _, entry := range entries {
		target := filepath.Join(outDir, entry.Name())
		os.RemoveAll(target)
		if err := os.Rename(filepath.Join(scratch, entry.Name()), target); err != nil {
			return MaterializedProduct{}, service.MakeTemporary(fmt.Errorf("materialize.Rename: %w", err))
		}
		if entry.Name() == product.ID || len(entries) == 1 {
			materializedPath = target
		}
	}
	return MaterializedProduct{Product: product, Path: materializedPath}, nil
}

// RetrieveByID infers the kind of a bare product id and retrieves it
func RetrieveByID(ctx context.Context, registry *provider.Registry, cfg Config, productID, override, outDir string) (MaterializedProduct, error) {
	kind := common.GetDataKindFromProductId(productID)
	if kind == common.Unknown {
		return MaterializedProduct{}, fmt.Errorf("RetrieveByID: cannot infer the data kind of %s", productID)
	}
	if _, err := common.Info(productID); err != nil {
		return MaterializedProduct{}, fmt.Errorf("RetrieveByID: %w", err)
	}
	providers, err := SelectProviders(registry, cfg, kind, override)
	if err != nil {
		return MaterializedProduct{}, err
	}
	return retrieveWithAttemptTimeout(ctx, cfg, providers, common.Product{ID: productID, Kind: kind}, outDir)
}

// RetrieveDem resolves the S2 grid tile to its DEM tiles and retrieves each
// of them, sequentially
func RetrieveDem(ctx context.Context, registry *provider.Registry, cfg Config, kind common.DataKind, s2TileID, override, outDir string) ([]MaterializedProduct, error) {
	var ids []string
	switch kind {
	case common.DemSRTM3s:
		srtm3s, err := tiling.SRTM3sIDsFromTileID(s2TileID)
		if err != nil {
			return nil, err
		}
		ids = srtm3s
	case common.DemSRTM1s, common.DemCOP1s, common.DemCOP3s:
		tiles, err := tiling.DemTilesFromTileID(s2TileID)
		if err != nil {
			return nil, err
		}
		for _, tile := range tiles {
			ids = append(ids, tile.ID())
		}
	default:
		return nil, fmt.Errorf("RetrieveDem: %s is not a DEM kind", kind)
	}

	providers, err := SelectProviders(registry, cfg, kind, override)
	if err != nil {
		return nil, err
	}

	var materialized []MaterializedProduct
	for _, id := range ids {
		m, err := retrieveWithAttemptTimeout(ctx, cfg, providers, common.Product{ID: id, Kind: kind}, outDir)
		if err != nil {
			return materialized, fmt.Errorf("RetrieveDem[%s].%w", s2TileID, err)
		}
		materialized = append(materialized, m)
	}
	return materialized, nil
}

func retrieveWithAttemptTimeout(ctx context.Context, cfg Config, providers []provider.Provider, product common.Product, outDir string) (MaterializedProduct, error) {
	if cfg.AttemptTimeout <= 0 {
		return Retrieve(ctx, providers, product, outDir)
	}
	bounded := make([]provider.Provider, len(providers))
	for i, p := range providers {
		bounded[i] = timeoutProvider{p, cfg}
	}
	return Retrieve(ctx, bounded, product, outDir)
}

type timeoutProvider struct {
	provider.Provider
	cfg Config
}

func (t timeoutProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.AttemptTimeout)
	defer cancel()
	return t.Provider.Download(ctx, product, localDir)
}
