package common

import "strings"

//go:generate go run github.com/dmarkham/enumer -json -type DataKind

// DataKind defines the kind of earth-observation data handled by the gateway
type DataKind int

const (
	Unknown      DataKind = iota
	Sentinel1             // MMM_BB_TTTR_LFPP_YYYYMMDDTHHMMSS_YYYYMMDDTHHMMSS_OOOOOO_DDDDDD_CCCC
	Sentinel2L1C          // MMM_MSIL1C_YYYYMMDDTHHMMSS_Nxxyy_ROOO_Txxxxx_<Product Discriminator>
	Sentinel2L2A          // MMM_MSIL2A_YYYYMMDDTHHMMSS_Nxxyy_ROOO_Txxxxx_<Product Discriminator>
	Landsat8              // LXSS_LLLL_PPPRRR_YYYYMMDD_yyyymmdd_CX_TX
	DemSRTM1s             // 1"x1" SRTMGL1 tile, e.g. N43E001
	DemSRTM3s             // 5°x5° CGIAR tile, e.g. srtm_37_04
	DemCOP1s              // Copernicus DEM GLO-30 1°x1° tile
	DemCOP3s              // Copernicus DEM GLO-90 1°x1° tile
)

// IsDem returns true for the DEM kinds
func (k DataKind) IsDem() bool {
	switch k {
	case DemSRTM1s, DemSRTM3s, DemCOP1s, DemCOP3s:
		return true
	}
	return false
}

// GetDataKindFromString returns the data kind from the user input
func GetDataKindFromString(input string) DataKind {
	switch strings.ToLower(input) {
	case "s1", "sentinel1", "sentinel-1":
		return Sentinel1
	case "s2", "s2_l1c", "sentinel2", "sentinel-2":
		return Sentinel2L1C
	case "s2_l2a", "l2a":
		return Sentinel2L2A
	case "l8", "landsat8", "landsat-8", "l8_l2sp":
		return Landsat8
	case "srtm", "srtm1s":
		return DemSRTM1s
	case "srtm3s", "srtm90":
		return DemSRTM3s
	case "copdem", "copdem1s", "copdem30":
		return DemCOP1s
	case "copdem3s", "copdem90":
		return DemCOP3s
	}
	return GetDataKindFromProductId(input)
}

// GetDataKindFromProductId infers the data kind from a product identifier
func GetDataKindFromProductId(productID string) DataKind {
	switch {
	case strings.HasPrefix(productID, "S1"):
		return Sentinel1
	case strings.HasPrefix(productID, "S2") && strings.Contains(productID, "MSIL2A"):
		return Sentinel2L2A
	case strings.HasPrefix(productID, "S2"):
		return Sentinel2L1C
	case landsatIdRe.MatchString(productID):
		return Landsat8
	}
	return Unknown
}

// Product is the unit of retrieval: an EO product or a DEM tile
type Product struct {
	// ID is the product identifier (e.g. S1B_IW_GRDH_...) or the DEM tile id (e.g. N43E001)
	ID   string
	Kind DataKind
}
