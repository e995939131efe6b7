package bucket

import (
	"fmt"
	"strings"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/tiling"
)

// AWSProductPrefix returns the object prefix of an EO product in the AWS
// open-data buckets. Month and day are not zero-padded there.
func AWSProductPrefix(product common.Product) (string, error) {
	info, err := common.Info(product.ID)
	if err != nil {
		return "", ErrInvalidKeyPattern{product.ID, err.Error()}
	}
	switch product.Kind {
	case common.Sentinel1:
		return strings.Join([]string{
			info["PRODUCT_TYPE"],
			info["YEAR"],
			unpad(info["MONTH"]),
			unpad(info["DAY"]),
			info["MODE"],
			info["POLARISATION"],
			product.ID,
		}, "/") + "/", nil
	case common.Sentinel2L1C, common.Sentinel2L2A:
		return strings.Join([]string{
			"products",
			info["YEAR"],
			unpad(info["MONTH"]),
			unpad(info["DAY"]),
			product.ID,
		}, "/") + "/", nil
	case common.Landsat8:
		return strings.Join([]string{
			"collection02",
			"level-2",
			"standard",
			"oli-tirs",
			info["YEAR"],
			info["PATH"],
			info["ROW"],
			product.ID,
		}, "/") + "/", nil
	}
	return "", ErrInvalidKeyPattern{product.ID, "kind not hosted on the AWS open-data buckets"}
}

// AWSTilePrefix returns the per-tile object prefix of a Sentinel-2 product
// (tiles/{zone}/{band}/{square}/{year}/{month}/{day}/{sequence}/)
func AWSTilePrefix(product common.Product) (string, error) {
	info, err := common.Info(product.ID)
	if err != nil {
		return "", ErrInvalidKeyPattern{product.ID, err.Error()}
	}
	switch product.Kind {
	case common.Sentinel2L1C, common.Sentinel2L2A:
	default:
		return "", ErrInvalidKeyPattern{product.ID, "tile prefixes only exist for Sentinel-2"}
	}
	return strings.Join([]string{
		"tiles",
		unpad(info["UTM_ZONE"]),
		info["LATITUDE_BAND"],
		info["GRID_SQUARE"],
		info["YEAR"],
		unpad(info["MONTH"]),
		unpad(info["DAY"]),
		"0",
	}, "/") + "/", nil
}

// CreodiasProductPrefix returns the object prefix of an EO product in the
// Creodias DIAS bucket. Month and day are zero-padded there.
func CreodiasProductPrefix(product common.Product) (string, error) {
	info, err := common.Info(product.ID)
	if err != nil {
		return "", ErrInvalidKeyPattern{product.ID, err.Error()}
	}
	date := fmt.Sprintf("%s/%s/%s", info["YEAR"], info["MONTH"], info["DAY"])
	switch product.Kind {
	case common.Sentinel1:
		return fmt.Sprintf("Sentinel-1/SAR/%s/%s/%s/", info["PRODUCT_TYPE"], date, product.ID), nil
	case common.Sentinel2L1C, common.Sentinel2L2A:
		return fmt.Sprintf("Sentinel-2/MSI/%s/%s/%s/", info["PRODUCT_LEVEL"], date, product.ID), nil
	}
	return "", ErrInvalidKeyPattern{product.ID, "kind not hosted on the DIAS bucket"}
}

// CreodiasSRTMKey returns the key of an SRTMGL1 tile archive in the DIAS bucket
func CreodiasSRTMKey(tile tiling.DemTile) string {
	return "auxdata/SRTMGL1/dem/" + tile.ID() + ".SRTMGL1.hgt.zip"
}

// EWoCSRTM3sKey returns the key of a CGIAR 90m tile archive in the aux-data bucket
func EWoCSRTM3sKey(srtmTileID string) string {
	return "srtm90/" + srtmTileID + ".zip"
}

// CopDemObjectName returns the AWS object directory name of a Copernicus DEM tile
// e.g. N43E001 -> Copernicus_DSM_COG_10_N43_00_E001_00_DEM
func CopDemObjectName(tile tiling.DemTile, kind common.DataKind) (string, error) {
	var prefix string
	switch kind {
	case common.DemCOP1s:
		prefix = "Copernicus_DSM_COG_10_"
	case common.DemCOP3s:
		prefix = "Copernicus_DSM_COG_30_"
	default:
		return "", ErrInvalidKeyPattern{tile.ID(), "not a Copernicus DEM kind"}
	}
	id := tile.ID()
	return prefix + id[:3] + "_00_" + id[3:] + "_00_DEM", nil
}

// CopDemKey returns the object key of a Copernicus DEM tile
func CopDemKey(tile tiling.DemTile, kind common.DataKind) (string, error) {
	name, err := CopDemObjectName(tile, kind)
	if err != nil {
		return "", err
	}
	return name + "/" + name + ".tif", nil
}

// CopDemVSIS3Path returns the GDAL /vsis3 path of a Copernicus DEM tile
func CopDemVSIS3Path(tile tiling.DemTile, kind common.DataKind) (string, error) {
	key, err := CopDemKey(tile, kind)
	if err != nil {
		return "", err
	}
	return "/vsis3/" + CopDemBucketName(kind) + "/" + key, nil
}

// ARDPathComponent returns the part of an ARD key derived from the tile id
// 31TCJ -> 31/T/CJ
func ARDPathComponent(tileID string) (string, error) {
	zone, band, square, err := common.SplitTileID(tileID)
	if err != nil {
		return "", ErrInvalidKeyPattern{tileID, err.Error()}
	}
	return zone + "/" + band + "/" + square, nil
}

// ARDPrefix returns the prefix of the ARD products of a tile for a production
func ARDPrefix(productionID, mission, tileID string) (string, error) {
	component, err := ARDPathComponent(tileID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", productionID, mission, component), nil
}

func unpad(s string) string {
	return strings.TrimLeft(s, "0")
}
