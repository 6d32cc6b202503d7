package mb

import "strconv"

// Metadata holds the descriptive entries of the metadata table.
type Metadata struct {
	Name        string
	Format      string // tile pixel format, e.g. "png"
	Type        string // "baselayer" or "overlay"
	Version     string
	Description string
	Bounds      string // "minLon,minLat,maxLon,maxLat"
	Center      string // "lon,lat,zoom"
	MinZoom     uint32
	MaxZoom     uint32
}

// Map returns the metadata as name/value pairs ready for Writer.WriteMetadata.
func (m Metadata) Map() map[string]string {
	return map[string]string{
		"name":        m.Name,
		"format":      m.Format,
		"type":        m.Type,
		"version":     m.Version,
		"minzoom":     strconv.FormatUint(uint64(m.MinZoom), 10),
		"maxzoom":     strconv.FormatUint(uint64(m.MaxZoom), 10),
		"bounds":      m.Bounds,
		"center":      m.Center,
		"description": m.Description,
	}
}
