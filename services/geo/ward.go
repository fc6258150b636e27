package geo

import "math"

// The served municipality is divided into a fixed grid of wards around the
// city center. Reports from outside the box, or with unusable coordinates,
// land in DefaultWard so they are never dropped.
const (
	minLat = 22.20
	maxLat = 22.40
	minLon = 70.70
	maxLon = 70.90

	gridRows = 4
	gridCols = 4

	DefaultWard = 1
)

// Default report location used when a submission carries no usable
// coordinates.
const (
	DefaultLatitude  = 22.30
	DefaultLongitude = 70.80
)

// WardFor maps coordinates to a ward id in [1, gridRows*gridCols]. The
// mapping is deterministic; the same point always yields the same ward.
func WardFor(lat, lon float64) int {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return DefaultWard
	}
	if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
		return DefaultWard
	}

	row := int((lat - minLat) / (maxLat - minLat) * gridRows)
	col := int((lon - minLon) / (maxLon - minLon) * gridCols)
	if row >= gridRows {
		row = gridRows - 1
	}
	if col >= gridCols {
		col = gridCols - 1
	}

	return row*gridCols + col + 1
}
