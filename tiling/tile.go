// Package tiling resolves Sentinel-2 grid tiles to geographic footprints and
// to the digital-elevation-model tiles covering them.
package tiling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-spatial/geom"
)

const (
	// tileSpan is the ground span of an S2 grid tile in meters (110km granule, 100km grid step)
	tileSpan = 109800.0
	// gridStep is the distance between two neighbouring tile origins
	gridStep = 100000.0
)

const (
	latitudeBands = "CDEFGHJKLMNPQRSTUVWX"
	rowLetters    = "ABCDEFGHJKLMNPQRSTUV"
)

// columnLetters per (zone-1)%3
var columnLetters = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

// ErrInvalidTileID is returned when a tile id does not belong to the S2 grid
type ErrInvalidTileID struct {
	TileID string
	Reason string
}

func (e ErrInvalidTileID) Error() string {
	return fmt.Sprintf("invalid tile id %s: %s", e.TileID, e.Reason)
}

// Tile is a tile of the Sentinel-2 grid (military grid 100km square)
type Tile struct {
	Zone   int    // UTM zone, 1..60
	Band   byte   // latitude band letter, C..X without I and O
	Square string // two-letter grid square
}

// ParseTile parses an S2 grid tile id such as 31TCJ or T31TCJ
func ParseTile(tileID string) (Tile, error) {
	id := strings.TrimPrefix(tileID, "T")
	if len(id) != 5 && len(id) != 4 {
		return Tile{}, ErrInvalidTileID{tileID, "expected <zone><band><square>"}
	}
	square := id[len(id)-2:]
	band := id[len(id)-3]
	zone, err := strconv.Atoi(id[:len(id)-3])
	if err != nil || zone < 1 || zone > 60 {
		return Tile{}, ErrInvalidTileID{tileID, "utm zone must be in 1..60"}
	}
	if !strings.ContainsRune(latitudeBands, rune(band)) {
		return Tile{}, ErrInvalidTileID{tileID, "invalid latitude band"}
	}
	if !strings.ContainsRune(columnLetters[(zone-1)%3], rune(square[0])) {
		return Tile{}, ErrInvalidTileID{tileID, "grid square column out of zone"}
	}
	if !strings.ContainsRune(rowLetters, rune(square[1])) {
		return Tile{}, ErrInvalidTileID{tileID, "invalid grid square row"}
	}
	return Tile{Zone: zone, Band: band, Square: square}, nil
}

// ID returns the canonical tile id (zero-padded zone)
func (t Tile) ID() string {
	return fmt.Sprintf("%02d%c%s", t.Zone, t.Band, t.Square)
}

// Southern returns true for tiles of the southern hemisphere
func (t Tile) Southern() bool {
	return strings.IndexByte(latitudeBands, t.Band) < strings.IndexByte(latitudeBands, 'N')
}

// utmBounds returns the easting/northing bounds of the tile in its UTM zone
func (t Tile) utmBounds() (minE, minN, maxE, maxN float64) {
	colIdx := strings.IndexByte(columnLetters[(t.Zone-1)%3], t.Square[0])
	minE = float64(colIdx+1) * gridStep

	// row letters cycle every 2,000km; even zones are shifted by 5 letters
	rowIdx := strings.IndexByte(rowLetters, t.Square[1])
	if t.Zone%2 == 0 {
		rowIdx = (rowIdx + len(rowLetters) - 5) % len(rowLetters)
	}
	n := float64(rowIdx) * gridStep

	// lift the northing into the 2,000km cycle containing the latitude band
	bandBottom := bandBottomNorthing(t.Band)
	for n+gridStep <= bandBottom {
		n += 2000000
	}

	maxN = n + gridStep
	return minE, maxN - tileSpan, minE + tileSpan, maxN
}

// bandBottomNorthing returns the UTM northing of the bottom latitude of the band
func bandBottomNorthing(band byte) float64 {
	idx := strings.IndexByte(latitudeBands, band)
	lat := float64(-80 + 8*idx)
	n := k0 * meridianArc(lat*math.Pi/180)
	if lat < 0 {
		n += falseNorthing
	}
	return n
}

// ResolveFootprint returns the geographic bounding box (lon/lat, WGS84) of the tile
func ResolveFootprint(tileID string) (*geom.Extent, error) {
	t, err := ParseTile(tileID)
	if err != nil {
		return nil, err
	}
	minE, minN, maxE, maxN := t.utmBounds()

	// sample corners and edge midpoints: meridian convergence bends the edges
	midE, midN := (minE+maxE)/2, (minN+maxN)/2
	samples := [][2]float64{
		{minE, minN}, {minE, maxN}, {maxE, minN}, {maxE, maxN},
		{midE, minN}, {midE, maxN}, {minE, midN}, {maxE, midN},
	}

	points := make([][2]float64, 0, len(samples))
	for _, s := range samples {
		lon, lat := utmInverse(s[0], s[1], t.Zone, t.Southern())
		points = append(points, [2]float64{lon, lat})
	}
	return geom.NewExtent(points...), nil
}
