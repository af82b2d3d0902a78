package geo2d

import "math"

// EarthRadius is the sphere radius (metres) EPSG:3857 Web-Mercator
// projects onto, per spec.md §4.5.
const EarthRadius = 6_378_137.0

// WebMercator projects (lon, lat) in degrees to planar EPSG:3857 (x, y) in
// metres: x = R*lon_rad, y = R*ln(tan(pi/4 + lat_rad/2)).
func WebMercator(lonDeg, latDeg float64) (x, y float64) {
	lonRad := lonDeg * math.Pi / 180
	latRad := latDeg * math.Pi / 180
	x = EarthRadius * lonRad
	y = EarthRadius * math.Log(math.Tan(math.Pi/4+latRad/2))
	return x, y
}
