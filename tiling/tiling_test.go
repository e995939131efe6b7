package tiling

import (
	"errors"
	"sort"
	"testing"

	"github.com/go-spatial/geom"
)

func checkDemTiles(t *testing.T, tileID string, expected []string) {
	t.Helper()
	tiles, err := DemTilesFromTileID(tileID)
	if err != nil {
		t.Fatalf("%s: %v", tileID, err)
	}
	var ids []string
	for _, tile := range tiles {
		ids = append(ids, tile.ID())
	}
	sort.Strings(ids)
	sort.Strings(expected)
	if len(ids) != len(expected) {
		t.Fatalf("%s: expected %v, got %v", tileID, expected, ids)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Fatalf("%s: expected %v, got %v", tileID, expected, ids)
		}
	}
}

func TestDemTilesFromTileID(t *testing.T) {
	checkDemTiles(t, "30SXH", []string{"N38W001", "N38W002", "N37W001", "N37W002"})
	checkDemTiles(t, "31TCJ", []string{"N43E001", "N43E000", "N44E000", "N44E001"})
	checkDemTiles(t, "33VVJ", []string{"N62E015", "N62E014", "N62E013", "N61E015", "N61E014", "N61E013"})
	// id with the product prefix
	checkDemTiles(t, "T31TCJ", []string{"N43E001", "N43E000", "N44E000", "N44E001"})
}

func TestParseTileInvalid(t *testing.T) {
	for _, tileID := range []string{"", "31", "31TC", "00TCJ", "61TCJ", "31ICJ", "31TIJ", "31TCO", "31tcj", "ABCDEF"} {
		if _, err := ParseTile(tileID); err == nil {
			t.Errorf("%s: expected error", tileID)
		} else {
			var invalid ErrInvalidTileID
			if !errors.As(err, &invalid) {
				t.Errorf("%s: expected ErrInvalidTileID, got %v", tileID, err)
			}
		}
	}
}

func TestResolveFootprint(t *testing.T) {
	ext, err := ResolveFootprint("31TCJ")
	if err != nil {
		t.Fatal(err)
	}
	// 31TCJ is the Toulouse tile, roughly 0.5E,43.2N to 2.0E,44.3N
	if ext.MinX() < 0.3 || ext.MinX() > 0.7 || ext.MaxX() < 1.8 || ext.MaxX() > 2.1 {
		t.Errorf("unexpected longitude range: %f..%f", ext.MinX(), ext.MaxX())
	}
	if ext.MinY() < 43.0 || ext.MinY() > 43.5 || ext.MaxY() < 44.1 || ext.MaxY() > 44.5 {
		t.Errorf("unexpected latitude range: %f..%f", ext.MinY(), ext.MaxY())
	}
}

func TestCoverFootprint(t *testing.T) {
	// a footprint touching the lon=2 edge includes the neighbouring column
	tiles, err := CoverFootprint(geom.NewExtent([2]float64{0.5, 0.5}, [2]float64{2.0, 1.5}))
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 6 {
		t.Errorf("expected 6 tiles, got %d: %v", len(tiles), tiles)
	}

	// single cell
	tiles, err = CoverFootprint(geom.NewExtent([2]float64{0.2, 0.2}, [2]float64{0.8, 0.8}))
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 1 || tiles[0].ID() != "N00E000" {
		t.Errorf("expected [N00E000], got %v", tiles)
	}

	if _, err = CoverFootprint(nil); !errors.As(err, &ErrEmptyFootprint{}) {
		t.Errorf("expected ErrEmptyFootprint, got %v", err)
	}

	// degenerate footprints cover nothing
	for _, ext := range []*geom.Extent{
		geom.NewExtent([2]float64{1.5, 1.5}),
		geom.NewExtent([2]float64{0.0, 1.0}, [2]float64{2.0, 1.0}),
		geom.NewExtent([2]float64{1.0, 0.0}, [2]float64{1.0, 2.0}),
	} {
		if _, err := CoverFootprint(ext); !errors.As(err, &ErrEmptyFootprint{}) {
			t.Errorf("%v: expected ErrEmptyFootprint, got %v", ext, err)
		}
		if _, err := SRTM3sIDs(ext); !errors.As(err, &ErrEmptyFootprint{}) {
			t.Errorf("%v: expected ErrEmptyFootprint, got %v", ext, err)
		}
	}
}

func TestDemTileID(t *testing.T) {
	for id, tile := range map[string]DemTile{
		"N43E001": {43, 1},
		"N00E000": {0, 0},
		"S01W072": {-1, -72},
		"N38W002": {38, -2},
	} {
		if tile.ID() != id {
			t.Errorf("expected %s, got %s", id, tile.ID())
		}
		parsed, err := ParseDemTile(id)
		if err != nil {
			t.Fatal(err)
		}
		if parsed != tile {
			t.Errorf("%s: expected %v, got %v", id, tile, parsed)
		}
	}
	for _, id := range []string{"", "43N001E", "N91E000", "N00E181", "n43e001", "N43E1"} {
		if _, err := ParseDemTile(id); err == nil {
			t.Errorf("%s: expected error", id)
		}
	}
}

func TestSRTM3sIDs(t *testing.T) {
	ids, err := SRTM3sIDsFromTileID("31TCJ")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "srtm_37_04" {
		t.Errorf("expected [srtm_37_04], got %v", ids)
	}
	ids, err = SRTM3sIDsFromTileID("33VVJ")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "srtm_39_00" || ids[1] != "srtm_40_00" {
		t.Errorf("expected [srtm_39_00 srtm_40_00], got %v", ids)
	}
}
