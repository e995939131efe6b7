package common

import (
	"testing"
)

func checkKeyValue(t *testing.T, info map[string]string, key, value string) {
	if v, ok := info[key]; !ok {
		t.Errorf("key %s not found", key)
	} else if v != value {
		t.Errorf("expected %s for key %s, got %s", value, key, v)
	}
}

func TestInfo(t *testing.T) {
	if _, err := Info("S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T13092"); err == nil {
		t.Errorf("too short product id")
	}
	if info, err := Info("S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924"); err != nil {
		t.Error(err)
	} else {
		checkKeyValue(t, info, "MISSION_ID", "S2B")
		checkKeyValue(t, info, "PRODUCT_LEVEL", "L1C")
		checkKeyValue(t, info, "DATE", "20190822")
		checkKeyValue(t, info, "YEAR", "2019")
		checkKeyValue(t, info, "MONTH", "08")
		checkKeyValue(t, info, "DAY", "22")
		checkKeyValue(t, info, "TIME", "105629")
		checkKeyValue(t, info, "PDGS", "0208")
		checkKeyValue(t, info, "ORBIT", "094")
		checkKeyValue(t, info, "TILE", "31TCJ")
		checkKeyValue(t, info, "UTM_ZONE", "31")
		checkKeyValue(t, info, "LATITUDE_BAND", "T")
		checkKeyValue(t, info, "GRID_SQUARE", "CJ")
		checkKeyValue(t, info, "PRODUCT_DISC", "20190822T130924")
	}
	if info, err := Info("S2A_MSIL2A_20201230T105441_N0214_R051_T31TCJ_20201230T122554"); err != nil {
		t.Error(err)
	} else {
		checkKeyValue(t, info, "PRODUCT_LEVEL", "L2A")
	}
	if _, err := Info("S1A_IW_SLC__1SDV_20190115T170106_20190115T170133_025491_02D361_7F7"); err == nil {
		t.Errorf("too short product id")
	}
	if info, err := Info("S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3"); err != nil {
		t.Error(err)
	} else {
		checkKeyValue(t, info, "MISSION_ID", "S1B")
		checkKeyValue(t, info, "MODE", "IW")
		checkKeyValue(t, info, "PRODUCT_TYPE", "GRD")
		checkKeyValue(t, info, "RESOLUTION", "H")
		checkKeyValue(t, info, "PROCESSING_LEVEL", "1")
		checkKeyValue(t, info, "PRODUCT_CLASS", "S")
		checkKeyValue(t, info, "POLARISATION", "DV")
		checkKeyValue(t, info, "DATE", "20200322")
		checkKeyValue(t, info, "YEAR", "2020")
		checkKeyValue(t, info, "MONTH", "03")
		checkKeyValue(t, info, "DAY", "22")
		checkKeyValue(t, info, "ORBIT", "020847")
		checkKeyValue(t, info, "MISSION", "027813")
		checkKeyValue(t, info, "UNIQUE_ID", "B9F3")
	}
	if _, err := Info("S1X_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3"); err == nil {
		t.Errorf("invalid mission id accepted")
	}
	if info, err := Info("LC08_L2SP_197030_20210603_20210608_02_T1"); err != nil {
		t.Error(err)
	} else {
		checkKeyValue(t, info, "MISSION_ID", "L08")
		checkKeyValue(t, info, "SENSOR", "oli-tirs")
		checkKeyValue(t, info, "PROCESSING_LEVEL", "L2SP")
		checkKeyValue(t, info, "PATH", "197")
		checkKeyValue(t, info, "ROW", "030")
		checkKeyValue(t, info, "DATE", "20210603")
		checkKeyValue(t, info, "COLLECTION", "02")
	}
	if _, err := Info("LC08_L2SP_197030_20210603_20210608_01_T1"); err == nil {
		t.Errorf("unsupported collection accepted")
	}
}

func TestGetDataKindFromProductId(t *testing.T) {
	fixtures := map[string]DataKind{
		"S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3": Sentinel1,
		"S2B_MSIL1C_20190822T105629_N0208_R094_T31TCJ_20190822T130924":        Sentinel2L1C,
		"S2A_MSIL2A_20201230T105441_N0214_R051_T31TCJ_20201230T122554":        Sentinel2L2A,
		"LC08_L2SP_197030_20210603_20210608_02_T1":                            Landsat8,
		"N43E001": Unknown,
	}
	for id, kind := range fixtures {
		if k := GetDataKindFromProductId(id); k != kind {
			t.Errorf("expected %s for %s, got %s", kind, id, k)
		}
	}
}

func TestSplitTileID(t *testing.T) {
	zone, band, square, err := SplitTileID("31TCJ")
	if err != nil {
		t.Fatal(err)
	}
	if zone != "31" || band != "T" || square != "CJ" {
		t.Errorf("expected 31/T/CJ, got %s/%s/%s", zone, band, square)
	}
	if _, _, _, err := SplitTileID("31tcj"); err == nil {
		t.Errorf("invalid tile id accepted")
	}
	if _, _, _, err := SplitTileID("311CJ"); err == nil {
		t.Errorf("invalid tile id accepted")
	}
}
