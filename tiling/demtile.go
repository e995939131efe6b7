package tiling

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/go-spatial/geom"
)

// ErrEmptyFootprint is returned when a footprint covers no DEM tile
type ErrEmptyFootprint struct{}

func (e ErrEmptyFootprint) Error() string {
	return "empty footprint"
}

// ErrInvalidDemTileID is returned when a DEM tile id cannot be parsed
type ErrInvalidDemTileID struct {
	TileID string
}

func (e ErrInvalidDemTileID) Error() string {
	return "invalid dem tile id: " + e.TileID
}

var demTileRe = regexp.MustCompile(`^([NS])([0-9]{2})([EW])([0-9]{3})$`)

// DemTile is a 1°x1° DEM tile, identified by its south-west corner
type DemTile struct {
	Lat int // latitude of the south-west corner, degrees
	Lon int // longitude of the south-west corner, degrees
}

// ID returns the tile id, e.g. N43E001 or S01W072
func (t DemTile) ID() string {
	ns, lat := 'N', t.Lat
	if lat < 0 {
		ns, lat = 'S', -lat
	}
	ew, lon := 'E', t.Lon
	if lon < 0 {
		ew, lon = 'W', -lon
	}
	return fmt.Sprintf("%c%02d%c%03d", ns, lat, ew, lon)
}

// ParseDemTile parses a DEM tile id such as N43E001
func ParseDemTile(tileID string) (DemTile, error) {
	m := demTileRe.FindStringSubmatch(tileID)
	if m == nil {
		return DemTile{}, ErrInvalidDemTileID{tileID}
	}
	lat, _ := strconv.Atoi(m[2])
	lon, _ := strconv.Atoi(m[4])
	if m[1] == "S" {
		lat = -lat
	}
	if m[3] == "W" {
		lon = -lon
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return DemTile{}, ErrInvalidDemTileID{tileID}
	}
	return DemTile{Lat: lat, Lon: lon}, nil
}

// CoverFootprint returns the 1°x1° DEM tiles covering the footprint.
// A footprint touching a tile edge includes the neighbouring tile.
// A degenerate footprint (zero area) covers nothing.
func CoverFootprint(footprint *geom.Extent) ([]DemTile, error) {
	if footprint == nil || footprint.MinX() >= footprint.MaxX() || footprint.MinY() >= footprint.MaxY() {
		return nil, ErrEmptyFootprint{}
	}
	minLon, minLat := int(math.Floor(footprint.MinX())), int(math.Floor(footprint.MinY()))
	maxLon, maxLat := int(math.Floor(footprint.MaxX())), int(math.Floor(footprint.MaxY()))

	var tiles []DemTile
	for lat := maxLat; lat >= minLat; lat-- {
		for lon := minLon; lon <= maxLon; lon++ {
			tiles = append(tiles, DemTile{Lat: lat, Lon: lon})
		}
	}
	if len(tiles) == 0 {
		return nil, ErrEmptyFootprint{}
	}
	return tiles, nil
}

// DemTilesFromTileID resolves an S2 grid tile to its covering DEM tiles
func DemTilesFromTileID(tileID string) ([]DemTile, error) {
	footprint, err := ResolveFootprint(tileID)
	if err != nil {
		return nil, err
	}
	return CoverFootprint(footprint)
}

// SRTM3sIDs returns the 5°x5° CGIAR grid tiles covering the footprint (srtm_37_04 style)
func SRTM3sIDs(footprint *geom.Extent) ([]string, error) {
	if footprint == nil || footprint.MinX() >= footprint.MaxX() || footprint.MinY() >= footprint.MaxY() {
		return nil, ErrEmptyFootprint{}
	}
	minCol := int(math.Floor((footprint.MinX()+180)/5)) + 1
	maxCol := int(math.Floor((footprint.MaxX()+180)/5)) + 1
	minRow := int(math.Floor((60-footprint.MaxY())/5)) + 1
	maxRow := int(math.Floor((60-footprint.MinY())/5)) + 1

	var ids []string
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			ids = append(ids, fmt.Sprintf("srtm_%02d_%02d", col, row))
		}
	}
	return ids, nil
}

// SRTM3sIDsFromTileID resolves an S2 grid tile to its covering CGIAR 5°x5° tiles
func SRTM3sIDsFromTileID(tileID string) ([]string, error) {
	footprint, err := ResolveFootprint(tileID)
	if err != nil {
		return nil, err
	}
	return SRTM3sIDs(footprint)
}
