package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	landsatIdRe = regexp.MustCompile(`^L[OTC]0[89]`)
	dateRe      = regexp.MustCompile(`^[0-9]{8}$`)
	tileIdRe    = regexp.MustCompile(`^[0-9]{1,2}[C-X][A-Z]{2}$`)
)

// GetDateFromProductId returns the acquisition date of the product
func GetDateFromProductId(productID string) (time.Time, error) {
	info, err := Info(productID)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("20060102", fmt.Sprintf("%s%s%s", info["YEAR"], info["MONTH"], info["DAY"]))
}

// Info parses a product identifier and returns its fields
// keys depend on the data kind, see the per-kind layouts below
func Info(productID string) (map[string]string, error) {
	switch GetDataKindFromProductId(productID) {
	case Sentinel1:
		// S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3
		if len(productID) < len("MMM_BB_TTTR_LFPP_YYYYMMDDTHHMMSS_YYYYMMDDTHHMMSS_OOOOOO_DDDDDD_CCCC") {
			return nil, fmt.Errorf("invalid Sentinel1 product id: %s", productID)
		}
		info := map[string]string{
			"PRODUCT":          productID,
			"MISSION_ID":       productID[0:3],
			"MISSION_VERSION":  productID[2:3],
			"MODE":             productID[4:6],
			"PRODUCT_TYPE":     productID[7:10],
			"RESOLUTION":       productID[10:11],
			"PROCESSING_LEVEL": productID[12:13],
			"PRODUCT_CLASS":    productID[13:14],
			"POLARISATION":     productID[14:16],
			"DATE":             productID[17:25],
			"YEAR":             productID[17:21],
			"MONTH":            productID[21:23],
			"DAY":              productID[23:25],
			"TIME":             productID[26:32],
			"HOUR":             productID[26:28],
			"MINUTE":           productID[28:30],
			"SECOND":           productID[30:32],
			"ORBIT":            productID[49:55],
			"MISSION":          productID[56:62],
			"UNIQUE_ID":        productID[63:67],
		}
		if m := info["MISSION_ID"]; m != "S1A" && m != "S1B" {
			return nil, fmt.Errorf("invalid Sentinel1 mission id: %s", m)
		}
		switch info["PRODUCT_TYPE"] {
		case "GRD", "SLC", "OCN", "RAW":
		default:
			return nil, fmt.Errorf("invalid Sentinel1 product type: %s", info["PRODUCT_TYPE"])
		}
		switch info["POLARISATION"] {
		case "SH", "SV", "DH", "DV", "HH", "HV", "VV", "VH":
		default:
			return nil, fmt.Errorf("invalid Sentinel1 polarisation: %s", info["POLARISATION"])
		}
		if !dateRe.MatchString(info["DATE"]) {
			return nil, fmt.Errorf("invalid Sentinel1 date: %s", info["DATE"])
		}
		return info, nil
	case Sentinel2L1C, Sentinel2L2A:
		// S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924
		if len(productID) < len("MMM_MSIXXX_YYYYMMDDTHHMMSS_Nxxyy_ROOO_Txxxxx_YYYYMMDDTHHMMSS") {
			return nil, fmt.Errorf("invalid Sentinel2 product id: %s", productID)
		}
		info := map[string]string{
			"PRODUCT":         productID,
			"MISSION_ID":      productID[0:3],
			"MISSION_VERSION": productID[2:3],
			"PRODUCT_LEVEL":   productID[7:10],
			"DATE":            productID[11:19],
			"YEAR":            productID[11:15],
			"MONTH":           productID[15:17],
			"DAY":             productID[17:19],
			"TIME":            productID[20:26],
			"HOUR":            productID[20:22],
			"MINUTE":          productID[22:24],
			"SECOND":          productID[24:26],
			"PDGS":            productID[28:32],
			"ORBIT":           productID[34:37],
			"TILE":            productID[39:44],
			"UTM_ZONE":        productID[39:41],
			"LATITUDE_BAND":   productID[41:42],
			"GRID_SQUARE":     productID[42:44],
			"PRODUCT_DISC":    productID[45:],
		}
		if m := info["MISSION_ID"]; m != "S2A" && m != "S2B" {
			return nil, fmt.Errorf("invalid Sentinel2 mission id: %s", m)
		}
		if l := info["PRODUCT_LEVEL"]; l != "L1C" && l != "L2A" {
			return nil, fmt.Errorf("invalid Sentinel2 product level: %s", l)
		}
		if !dateRe.MatchString(info["DATE"]) {
			return nil, fmt.Errorf("invalid Sentinel2 date: %s", info["DATE"])
		}
		if !tileIdRe.MatchString(info["TILE"]) {
			return nil, fmt.Errorf("invalid Sentinel2 tile id: %s", info["TILE"])
		}
		return info, nil
	case Landsat8:
		// LC08_L2SP_197030_20210603_20210608_02_T1
		if len(productID) < len("LXSS_LLLL_PPPRRR_YYYYMMDD_yyyymmdd_CX_TX") {
			return nil, fmt.Errorf("invalid Landsat product id: %s", productID)
		}
		info := map[string]string{
			"PRODUCT":          productID,
			"MISSION_ID":       productID[0:1] + productID[2:4],
			"SENSOR":           sensorCollection(productID[1:2]),
			"PROCESSING_LEVEL": productID[5:9],
			"PATH":             productID[10:13],
			"ROW":              productID[13:16],
			"DATE":             productID[17:25],
			"YEAR":             productID[17:21],
			"MONTH":            productID[21:23],
			"DAY":              productID[23:25],
			"COLLECTION":       productID[35:37],
			"TIER":             productID[38:40],
		}
		if !dateRe.MatchString(info["DATE"]) {
			return nil, fmt.Errorf("invalid Landsat date: %s", info["DATE"])
		}
		if info["COLLECTION"] != "02" {
			return nil, fmt.Errorf("unsupported Landsat collection: %s", info["COLLECTION"])
		}
		return info, nil
	}
	return nil, fmt.Errorf("Info: data kind not supported")
}

func sensorCollection(c string) string {
	switch c {
	case "O":
		return "oli"
	case "T":
		return "tirs"
	}
	return "oli-tirs"
}

// SplitTileID splits an S2 tile id into UTM zone, latitude band and grid square
// 31TCJ -> "31", "T", "CJ"
func SplitTileID(tileID string) (zone, band, square string, err error) {
	tileID = strings.TrimPrefix(tileID, "T")
	if !tileIdRe.MatchString(tileID) || len(tileID) != 5 {
		return "", "", "", fmt.Errorf("invalid tile id: %s", tileID)
	}
	return tileID[0:2], tileID[2:3], tileID[3:5], nil
}

/**
 * FormatBrackets replaces in <str> all {keys} of <info> by the corresponding value
 * keys must be one of PRODUCT, MISSION_ID, PRODUCT_LEVEL, DATE(YEAR/MONTH/DAY), TIME(HOUR/MINUTE/SECOND), PDGS, ORBIT, TILE (UTM_ZONE/LATITUDE_BAND/GRID_SQUARE)
 */
func FormatBrackets(str string, infos ...map[string]string) string {
	for _, info := range infos {
		for k, v := range info {
			str = strings.ReplaceAll(str, "{"+k+"}", v)
		}
	}
	return str
}
