package geo

import (
	"math"

	"github.com/examallot/router/pkg/util"
)

// Coordinate is a WGS84 (lat, lon) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

const (
	earthRadiusM = 6371000.0

	// MaxSpeedMPS is the highest default highway speed (motorway, 100 km/h)
	// converted to metres/second. It is the A* heuristic's speed bound: no
	// default speed exceeds it, but an explicit maxspeed tag above 100 km/h
	// is used as-is and does.
	MaxSpeedMPS = 27.8
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// HaversineMeters returns the great-circle distance between two WGS84 points
// in metres, over a sphere of radius 6,371,000 m.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)
	lat2 = util.DegreeToRadians(lat2)
	lon2 = util.DegreeToRadians(lon2)

	a := havFunction(lat2-lat1) + math.Cos(lat1)*math.Cos(lat2)*havFunction(lon2-lon1)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusM * c
}

// TimeSeconds converts a distance in metres travelled at kmh km/h into
// seconds.
func TimeSeconds(metres, kmh float64) float64 {
	mps := kmh * 1000.0 / 3600.0
	return metres / mps
}

// DefaultSpeedKMH returns the default speed, in km/h, for an OSM highway
// classification. Unknown or unlisted classes fall back to the residential
// default.
func DefaultSpeedKMH(highway string) float64 {
	switch highway {
	case "motorway":
		return 100
	case "trunk":
		return 90
	case "primary":
		return 80
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 40
	case "residential":
		return 30
	case "living_street":
		return 20
	case "service":
		return 20
	default:
		return 30
	}
}

// DestinationPoint returns the point reached by travelling distM metres from
// (lat, lon) along initial bearing bearingDeg (degrees clockwise from north).
func DestinationPoint(lat, lon float64, bearingDeg, distM float64) (float64, float64) {
	dr := distM / earthRadiusM
	bearing := util.DegreeToRadians(bearingDeg)

	latRad := util.DegreeToRadians(lat)
	lonRad := util.DegreeToRadians(lon)

	lat2 := math.Asin(math.Sin(latRad)*math.Cos(dr) + math.Cos(latRad)*math.Sin(dr)*math.Cos(bearing))
	lon2 := lonRad + math.Atan2(
		math.Sin(bearing)*math.Sin(dr)*math.Cos(latRad),
		math.Cos(dr)-math.Sin(latRad)*math.Sin(lat2),
	)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// Midpoint returns the midpoint of the great-circle path between two points.
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)
	lat2 = util.DegreeToRadians(lat2)
	lon2 = util.DegreeToRadians(lon2)

	bx := math.Cos(lat2) * math.Cos(lon2-lon1)
	by := math.Cos(lat2) * math.Sin(lon2-lon1)
	denom := math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx) + by*by)

	lat := math.Atan2(math.Sin(lat1)+math.Sin(lat2), denom)
	lon := lon1 + math.Atan2(by, math.Cos(lat1)+bx)
	return util.RadiansToDegree(lat), normalizeLongitude(util.RadiansToDegree(lon))
}

func normalizeLongitude(lon float64) float64 {
	return math.Mod(lon+540, 360) - 180.0
}
