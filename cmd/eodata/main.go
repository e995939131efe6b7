package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/downloader"
	"github.com/ewoc-project/datagateway/interface/provider"
	"github.com/ewoc-project/datagateway/service/log"
)

type config struct {
	ProductID   string
	TileID      string
	Kind        string
	DateStart   string
	DateEnd     string
	Provider    string
	OutDir      string
	L2AMaskOnly bool
	Timeout     time.Duration
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.ProductID, "product", "", "EO product id to download (e.g. S1B_IW_GRDH_1SDV_...). The data kind is inferred from the id.")
	flag.StringVar(&config.TileID, "tile", "", "S2 grid tile id (e.g. 31TCJ). With -date-start/-date-end, searches and downloads the matching products.")
	flag.StringVar(&config.Kind, "kind", "s2", "data kind for the tile search (s1, s2, s2_l2a)")
	flag.StringVar(&config.DateStart, "date-start", "", "start of the search date range")
	flag.StringVar(&config.DateEnd, "date-end", "", "end of the search date range")
	flag.StringVar(&config.Provider, "provider", "", "provider to use, bypassing the automatic selection (aws, creodias, eodata-finder)")
	flag.StringVar(&config.OutDir, "o", ".", "output directory")
	flag.BoolVar(&config.L2AMaskOnly, "l2a-mask-only", false, "only download the scene classification mask of L2A products (aws provider)")
	flag.DurationVar(&config.Timeout, "timeout", 0, "timeout of each provider attempt (0: none)")
	flag.Parse()

	if config.ProductID == "" && config.TileID == "" {
		return nil, fmt.Errorf("missing product or tile config flag")
	}
	if config.TileID != "" && (config.DateStart == "" || config.DateEnd == "") {
		return nil, fmt.Errorf("tile search requires date-start and date-end")
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

	registry := provider.DefaultRegistry()
	cfg := downloader.ConfigFromEnv()
	cfg.L2AMaskOnly = config.L2AMaskOnly
	cfg.AttemptTimeout = config.Timeout

	if config.ProductID != "" {
		materialized, err := downloader.RetrieveByID(ctx, registry, cfg, config.ProductID, config.Provider, config.OutDir)
		if err != nil {
			return err
		}
		log.Logger(ctx).Sugar().Infof("%s materialized at %s (provider %s)", materialized.Product.ID, materialized.Path, materialized.Provider)
		return nil
	}

	kind := common.GetDataKindFromString(config.Kind)
	start, err := dateparse.ParseAny(config.DateStart)
	if err != nil {
		return fmt.Errorf("date-start: %w", err)
	}
	end, err := dateparse.ParseAny(config.DateEnd)
	if err != nil {
		return fmt.Errorf("date-end: %w", err)
	}

	finder := provider.NewFinderProvider(cfg.FinderUsername, cfg.FinderPassword)
	ids, err := finder.Search(ctx, kind, config.TileID, start, end)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no %s product found on %s between %s and %s", kind, config.TileID, config.DateStart, config.DateEnd)
	}
	log.Logger(ctx).Sugar().Infof("found %d products on %s", len(ids), config.TileID)

	for _, id := range ids {
		materialized, err := downloader.RetrieveByID(ctx, registry, cfg, id, config.Provider, config.OutDir)
		if err != nil {
			return err
		}
		log.Logger(ctx).Sugar().Infof("%s materialized at %s (provider %s)", id, materialized.Path, materialized.Provider)
	}
	return nil
}
