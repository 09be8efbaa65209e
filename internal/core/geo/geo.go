// Package geo converts projected Gauss-Laborde Réunion coordinates to WGS84.
//
// The projection is a transverse Mercator with origin lat -21.11666667,
// lon 55.53333333, scale 1, false easting 160000 and false northing 50000 on
// the WGS84 ellipsoid. The inverse uses the standard series expansion
// (Snyder, Map Projections: A Working Manual, eq. 8-17..8-25)
package geo

import (
	"math"
	"strconv"
	"strings"
)

// Projection constants for Gauss-Laborde Réunion
const (
	OriginLat     = -21.11666667
	OriginLon     = 55.53333333
	ScaleFactor   = 1.0
	FalseEasting  = 160000.0
	FalseNorthing = 50000.0
)

// WGS84 ellipsoid
const (
	semiMajor  = 6378137.0
	flattening = 1.0 / 298.257223563
)

var (
	e2  = flattening * (2 - flattening) // first eccentricity squared
	ep2 = e2 / (1 - e2)                 // second eccentricity squared

	// meridian arc at the projection origin
	m0 = meridianArc(OriginLat * math.Pi / 180)
)

// meridianArc returns the ellipsoidal meridian arc length from the equator
func meridianArc(phi float64) float64 {
	return semiMajor * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))
}

// GaussLabordeToWGS84 converts projected (x, y) meters to geographic
// (lat, lon) degrees. ok is false when the input or the transformation is
// outside the projection's domain; callers treat that as "not mappable"
func GaussLabordeToWGS84(x, y float64) (lat, lon float64, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}

	m := m0 + (y-FalseNorthing)/ScaleFactor
	mu := m / (semiMajor * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	sqrt1e2 := math.Sqrt(1 - e2)
	e1 := (1 - sqrt1e2) / (1 + sqrt1e2)

	// footpoint latitude
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	if cosPhi1 == 0 {
		return 0, 0, false
	}
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	den := 1 - e2*sinPhi1*sinPhi1
	n1 := semiMajor / math.Sqrt(den)
	r1 := semiMajor * (1 - e2) / math.Pow(den, 1.5)
	d := (x - FalseEasting) / (n1 * ScaleFactor)

	phi := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lambda := (d -
		(1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	lat = phi * 180 / math.Pi
	lon = OriginLon + lambda*180/math.Pi

	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// ConvertStrings parses projected coordinates from operator cells (accepting
// the French decimal comma) and returns the WGS84 pair rendered as decimal
// strings. ok is false on any parse or transformation failure
func ConvertStrings(xs, ys string) (lat, lon string, ok bool) {
	x, errX := parseCoord(xs)
	y, errY := parseCoord(ys)
	if errX != nil || errY != nil {
		return "", "", false
	}
	la, lo, ok := GaussLabordeToWGS84(x, y)
	if !ok {
		return "", "", false
	}
	return strconv.FormatFloat(la, 'f', 6, 64), strconv.FormatFloat(lo, 'f', 6, 64), true
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	return strconv.ParseFloat(s, 64)
}
