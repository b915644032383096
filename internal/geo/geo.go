package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aerocats/massprops/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// BODY-FRAME POINTS
// CGs are stored as XYZ points in the aircraft body frame (metres, x aft,
// y right, z up) with no spatial reference system. They are written as WKB,
// which the geometry type's own Scan and Value move in and out of SQLite
// blobs and Postgres bytea.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ErrEmptyPoint is returned when converting an empty point to a vector.
var ErrEmptyPoint = errors.New("empty point")

// PointFromVec converts a body-frame vector to an XYZ point. Non-finite
// components are rejected with ErrInvalidCoordinates.
func PointFromVec(v core.Vec3) (geom.Point, error) {
	if !v.IsFinite() {
		return geom.NewEmptyPoint(geom.DimXYZ), ErrInvalidCoordinates
	}
	point, err := geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: v.X, Y: v.Y},
			Z:    v.Z,
			Type: geom.DimXYZ,
		},
	)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), ErrInvalidCoordinates
	}
	return point, nil
}

// VecFromPoint converts a point back to a vector. 2D points get z=0.
func VecFromPoint(p geom.Point) (core.Vec3, error) {
	c, ok := p.Coordinates()
	if !ok {
		return core.Vec3{}, ErrEmptyPoint
	}
	return core.NewVec3(c.X, c.Y, c.Z), nil
}

// ParseVec parses "x,y" or "x,y,z" into a vector. Whitespace around values
// is ignored and a missing z is zero.
func ParseVec(coords string) (core.Vec3, error) {
	return parseVec(coords, 2)
}

// ParseVec3 parses "x,y,z" into a vector. All three components are required.
func ParseVec3(coords string) (core.Vec3, error) {
	return parseVec(coords, 3)
}

func parseVec(coords string, minParts int) (core.Vec3, error) {
	parts := strings.Split(coords, ",")
	if len(parts) < minParts || len(parts) > 3 {
		return core.Vec3{}, ErrInvalidCoordinates
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, ErrInvalidCoordinates
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// ParsePoint parses "x,y" or "x,y,z" directly into an XYZ point.
func ParsePoint(coords string) (geom.Point, error) {
	v, err := ParseVec(coords)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), err
	}
	return PointFromVec(v)
}
