package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/downloader"
	"github.com/ewoc-project/datagateway/interface/bucket"
	"github.com/ewoc-project/datagateway/interface/provider"
	"github.com/ewoc-project/datagateway/service/log"
	"github.com/ewoc-project/datagateway/tiling"
)

type config struct {
	TileID     string
	DemType    string
	Resolution string
	Provider   string
	OutDir     string
	IDsOnly    bool
	VRTList    string
	Timeout    time.Duration
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.TileID, "tile", "", "S2 grid tile id (e.g. 31TCJ)")
	flag.StringVar(&config.DemType, "type", "srtm", "DEM type (srtm or copdem)")
	flag.StringVar(&config.Resolution, "res", "1s", "DEM resolution (1s or 3s)")
	flag.StringVar(&config.Provider, "provider", "", "provider to use, bypassing the automatic selection")
	flag.StringVar(&config.OutDir, "o", ".", "output directory")
	flag.BoolVar(&config.IDsOnly, "ids-only", false, "print the DEM tile ids covering the tile and exit")
	flag.StringVar(&config.VRTList, "vrt-list", "", "write the gdalbuildvrt input-file list (/vsis3 paths, copdem only) and exit")
	flag.DurationVar(&config.Timeout, "timeout", 0, "timeout of each provider attempt (0: none)")
	flag.Parse()

	if config.TileID == "" {
		return nil, fmt.Errorf("missing tile config flag")
	}
	if config.Resolution != "1s" && config.Resolution != "3s" {
		return nil, fmt.Errorf("resolution must be 1s or 3s")
	}
	return &config, nil
}

func demKind(demType, resolution string) (common.DataKind, error) {
	switch demType {
	case "srtm":
		if resolution == "3s" {
			return common.DemSRTM3s, nil
		}
		return common.DemSRTM1s, nil
	case "copdem":
		if resolution == "3s" {
			return common.DemCOP3s, nil
		}
		return common.DemCOP1s, nil
	}
	return common.Unknown, fmt.Errorf("DEM type %s not supported", demType)
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
	kind, err := demKind(config.DemType, config.Resolution)
	if err != nil {
		return err
	}

	if config.IDsOnly {
		ids, err := demIDs(kind, config.TileID)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(ids, ";"))
		return nil
	}

	if config.VRTList != "" {
		return writeVRTList(config.VRTList, kind, config.TileID)
	}

	registry := provider.DefaultRegistry()
	cfg := downloader.ConfigFromEnv()
	cfg.AttemptTimeout = config.Timeout
	materialized, err := downloader.RetrieveDem(ctx, registry, cfg, kind, config.TileID, config.Provider, config.OutDir)
	if err != nil {
		return err
	}
	log.Logger(ctx).Sugar().Infof("%d DEM tiles materialized in %s", len(materialized), config.OutDir)
	return nil
}

func demIDs(kind common.DataKind, tileID string) ([]string, error) {
	if kind == common.DemSRTM3s {
		return tiling.SRTM3sIDsFromTileID(tileID)
	}
	tiles, err := tiling.DemTilesFromTileID(tileID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tiles))
	for i, tile := range tiles {
		ids[i] = tile.ID()
	}
	return ids, nil
}

// writeVRTList writes the /vsis3 input-file list consumed by gdalbuildvrt
func writeVRTList(path string, kind common.DataKind, tileID string) error {
	if kind != common.DemCOP1s && kind != common.DemCOP3s {
		return fmt.Errorf("vrt-list is only available for copdem")
	}
	tiles, err := tiling.DemTilesFromTileID(tileID)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		vsis3, err := bucket.CopDemVSIS3Path(tile, kind)
		if err != nil {
			return err
		}
		lines = append(lines, vsis3)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
