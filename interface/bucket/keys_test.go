package bucket

import (
	"errors"
	"testing"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/tiling"
)

func TestAWSProductPrefix(t *testing.T) {
	fixtures := map[common.Product]string{
		{ID: "S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3", Kind: common.Sentinel1}: "GRD/2020/3/22/IW/DV/S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3/",
		{ID: "S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924", Kind: common.Sentinel2L1C}:     "products/2019/8/22/S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924/",
		{ID: "LC08_L2SP_197030_20210603_20210608_02_T1", Kind: common.Landsat8}:                            "collection02/level-2/standard/oli-tirs/2021/197/030/LC08_L2SP_197030_20210603_20210608_02_T1/",
	}
	for product, expected := range fixtures {
		prefix, err := AWSProductPrefix(product)
		if err != nil {
			t.Fatalf("%s: %v", product.ID, err)
		}
		if prefix != expected {
			t.Errorf("expected %s, got %s", expected, prefix)
		}
	}

	if _, err := AWSProductPrefix(common.Product{ID: "N43E001", Kind: common.DemSRTM1s}); err == nil {
		t.Errorf("expected error for a DEM tile")
	} else {
		var invalid ErrInvalidKeyPattern
		if !errors.As(err, &invalid) {
			t.Errorf("expected ErrInvalidKeyPattern, got %v", err)
		}
	}
}

func TestAWSTilePrefix(t *testing.T) {
	prefix, err := AWSTilePrefix(common.Product{ID: "S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924", Kind: common.Sentinel2L1C})
	if err != nil {
		t.Fatal(err)
	}
	if prefix != "tiles/31/T/CJ/2019/8/22/0/" {
		t.Errorf("unexpected tile prefix: %s", prefix)
	}
}

func TestCreodiasProductPrefix(t *testing.T) {
	prefix, err := CreodiasProductPrefix(common.Product{ID: "S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3", Kind: common.Sentinel1})
	if err != nil {
		t.Fatal(err)
	}
	if prefix != "Sentinel-1/SAR/GRD/2020/03/22/S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3/" {
		t.Errorf("unexpected prefix: %s", prefix)
	}
	prefix, err = CreodiasProductPrefix(common.Product{ID: "S2A_MSIL2A_20201230T105441_N0214_R051_T31TCJ_20201230T122554", Kind: common.Sentinel2L2A})
	if err != nil {
		t.Fatal(err)
	}
	if prefix != "Sentinel-2/MSI/L2A/2020/12/30/S2A_MSIL2A_20201230T105441_N0214_R051_T31TCJ_20201230T122554/" {
		t.Errorf("unexpected prefix: %s", prefix)
	}
	if _, err := CreodiasProductPrefix(common.Product{ID: "LC08_L2SP_197030_20210603_20210608_02_T1", Kind: common.Landsat8}); err == nil {
		t.Errorf("expected error: Landsat is not on the DIAS bucket")
	}
}

func TestCopDemKeys(t *testing.T) {
	tile := tiling.DemTile{Lat: 43, Lon: 0}
	key, err := CopDemKey(tile, common.DemCOP1s)
	if err != nil {
		t.Fatal(err)
	}
	if key != "Copernicus_DSM_COG_10_N43_00_E000_00_DEM/Copernicus_DSM_COG_10_N43_00_E000_00_DEM.tif" {
		t.Errorf("unexpected key: %s", key)
	}
	path, err := CopDemVSIS3Path(tile, common.DemCOP1s)
	if err != nil {
		t.Fatal(err)
	}
	if path != "/vsis3/copernicus-dem-30m/Copernicus_DSM_COG_10_N43_00_E000_00_DEM/Copernicus_DSM_COG_10_N43_00_E000_00_DEM.tif" {
		t.Errorf("unexpected vsis3 path: %s", path)
	}
	name, err := CopDemObjectName(tiling.DemTile{Lat: -1, Lon: -72}, common.DemCOP3s)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Copernicus_DSM_COG_30_S01_00_W072_00_DEM" {
		t.Errorf("unexpected object name: %s", name)
	}
	if _, err := CopDemKey(tile, common.DemSRTM1s); err == nil {
		t.Errorf("expected error for a non-copdem kind")
	}
}

func TestSRTMKeys(t *testing.T) {
	tile := tiling.DemTile{Lat: 43, Lon: 1}
	if key := CreodiasSRTMKey(tile); key != "auxdata/SRTMGL1/dem/N43E001.SRTMGL1.hgt.zip" {
		t.Errorf("unexpected key: %s", key)
	}
	if key := EWoCSRTM3sKey("srtm_37_04"); key != "srtm90/srtm_37_04.zip" {
		t.Errorf("unexpected key: %s", key)
	}
}

func TestARDPathComponent(t *testing.T) {
	component, err := ARDPathComponent("31TCJ")
	if err != nil {
		t.Fatal(err)
	}
	if component != "31/T/CJ" {
		t.Errorf("expected 31/T/CJ, got %s", component)
	}
	if _, err := ARDPathComponent("invalid"); err == nil {
		t.Errorf("expected error")
	}
	prefix, err := ARDPrefix("c728b264", "SAR", "31TCJ")
	if err != nil {
		t.Fatal(err)
	}
	if prefix != "c728b264/SAR/31/T/CJ" {
		t.Errorf("unexpected prefix: %s", prefix)
	}
}
