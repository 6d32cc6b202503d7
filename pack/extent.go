package pack

import (
	"fmt"
	"strconv"

	"github.com/ganeshsahu2020/EcoListing/tile"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// extent accumulates the geographic bound of stored tiles.
type extent struct {
	bound orb.Bound
	count int
}

func (e *extent) add(tileID tile.ID) {
	bound := maptile.New(tileID.X, tileID.Y, maptile.Zoom(tileID.Z)).Bound()
	if e.count == 0 {
		e.bound = bound
	} else {
		e.bound = e.bound.Union(bound)
	}
	e.count++
}

func (e *extent) empty() bool { return e.count == 0 }

// boundsString formats the extent as "minLon,minLat,maxLon,maxLat".
func (e *extent) boundsString() string {
	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(e.bound.Min.Lon()), formatCoord(e.bound.Min.Lat()),
		formatCoord(e.bound.Max.Lon()), formatCoord(e.bound.Max.Lat()))
}

// centerString formats the extent center as "lon,lat,zoom".
func (e *extent) centerString(zoom uint32) string {
	center := e.bound.Center()
	return fmt.Sprintf("%s,%s,%d", formatCoord(center.Lon()), formatCoord(center.Lat()), zoom)
}

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
