package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

type region struct {
	name  string
	state string
	shape orb.Polygon
}

// Simplified county outlines used for the map overlay.
var regions = []region{
	{
		name:  "Travis County",
		state: "TX",
		shape: orb.Polygon{{
			{-97.9, 30.1}, {-97.5, 30.1}, {-97.5, 30.5}, {-97.9, 30.5}, {-97.9, 30.1},
		}},
	},
	{
		name:  "Williamson County",
		state: "TX",
		shape: orb.Polygon{{
			{-98.05, 30.5}, {-97.15, 30.5}, {-97.15, 30.9}, {-98.05, 30.9}, {-98.05, 30.5},
		}},
	},
	{
		name:  "Gallatin County",
		state: "MT",
		shape: orb.Polygon{{
			{-111.8, 44.9}, {-110.8, 44.9}, {-110.8, 46.1}, {-111.8, 46.1}, {-111.8, 44.9},
		}},
	},
}

// RegionBoundaries returns the county outlines for a state. An empty state returns all of them.
func RegionBoundaries(state string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range regions {
		if state != "" && r.state != state {
			continue
		}
		f := geojson.NewFeature(r.shape)
		f.Properties = geojson.Properties{"name": r.name, "state": r.state}
		fc.Append(f)
	}
	return fc
}

// RegionAt returns the name of the county outline containing the coordinate, if any.
func RegionAt(lat, lng float64) (string, bool) {
	pt := orb.Point{lng, lat}
	for _, r := range regions {
		if !r.shape.Bound().Contains(pt) {
			continue
		}
		if planar.PolygonContains(r.shape, pt) {
			return r.name, true
		}
	}
	return "", false
}
