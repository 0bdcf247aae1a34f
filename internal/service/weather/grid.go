package weather

import "math"

// Lambert conformal conic parameters of the 5km forecast grid.
const (
	earthRadiusKm = 6371.00877
	gridSpacingKm = 5.0
	stdLat1       = 30.0
	stdLat2       = 60.0
	originLon     = 126.0
	originLat     = 38.0
	originX       = 43.0
	originY       = 136.0

	gridMaxX = 149
	gridMaxY = 253
)

// ToGrid converts WGS84 coordinates to forecast grid indices. ok is false when the
// point falls outside the grid.
func ToGrid(lat, lon float64) (nx, ny int, ok bool) {
	const degRad = math.Pi / 180.0

	re := earthRadiusKm / gridSpacingKm
	slat1 := stdLat1 * degRad
	slat2 := stdLat2 * degRad
	olon := originLon * degRad
	olat := originLat * degRad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn
	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	ra := math.Tan(math.Pi*0.25 + lat*degRad*0.5)
	ra = re * sf / math.Pow(ra, sn)
	theta := lon*degRad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	x := math.Floor(ra*math.Sin(theta) + originX + 0.5)
	y := math.Floor(ro - ra*math.Cos(theta) + originY + 0.5)
	if math.IsNaN(x) || math.IsNaN(y) || x < 1 || x > gridMaxX || y < 1 || y > gridMaxY {
		return 0, 0, false
	}
	return int(x), int(y), true
}
