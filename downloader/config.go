package downloader

import (
	"os"
	"time"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/provider"
)

// Config drives provider selection and retrieval. It is built once from the
// environment (or flags) and passed explicitly: selection never reads the
// environment itself.
type Config struct {
	// CloudProvider is the cloud context the gateway runs in (creodias or
	// aws). It supersedes the per-kind defaults.
	CloudProvider string
	// KindProviders holds the per-kind default provider names
	KindProviders map[common.DataKind]string

	FinderUsername string
	FinderPassword string

	// LocalRoot points to a directory of pre-staged product archives
	LocalRoot string

	// L2AMaskOnly restricts Sentinel-2 L2A retrieval to the scene
	// classification mask
	L2AMaskOnly bool

	// AttemptTimeout bounds each provider attempt (0 means no bound)
	AttemptTimeout time.Duration
}

// ConfigFromEnv reads the EWoC environment variables
func ConfigFromEnv() Config {
	return Config{
		CloudProvider: os.Getenv("EWOC_CLOUD_PROVIDER"),
		KindProviders: map[common.DataKind]string{
			common.Sentinel1:    os.Getenv("EWOC_S1_PROVIDER"),
			common.Sentinel2L1C: os.Getenv("EWOC_S2_PROVIDER"),
			common.Sentinel2L2A: os.Getenv("EWOC_S2_PROVIDER"),
			common.Landsat8:     os.Getenv("EWOC_L8_PROVIDER"),
			common.DemSRTM1s:    os.Getenv("EWOC_SRTM_SOURCE"),
			common.DemSRTM3s:    os.Getenv("EWOC_SRTM_SOURCE"),
			common.DemCOP1s:     os.Getenv("EWOC_COPDEM_SOURCE"),
			common.DemCOP3s:     os.Getenv("EWOC_COPDEM_SOURCE"),
		},
		FinderUsername: os.Getenv("EWOC_FINDER_USERNAME"),
		FinderPassword: os.Getenv("EWOC_FINDER_PASSWORD"),
		LocalRoot:      os.Getenv("EWOC_LOCAL_ROOT"),
	}
}

// builtin defaults when neither the cloud context nor the per-kind variable
// names a provider
func defaultProviderName(kind common.DataKind) string {
	switch kind {
	case common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A:
		return provider.NameFinder
	case common.Landsat8, common.DemCOP1s, common.DemCOP3s:
		return provider.NameAWS
	case common.DemSRTM1s:
		return provider.NameESA
	case common.DemSRTM3s:
		return provider.NameEWoC
	}
	return ""
}

// normalizeProviderName maps the historic configuration aliases to the
// registered provider names
func normalizeProviderName(name string) string {
	switch name {
	case "eodag", "finder":
		return provider.NameFinder
	}
	return name
}
