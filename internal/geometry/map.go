package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"landscout/server/config"
	"landscout/server/internal/models"
)

type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

func point(p *models.Parcel) orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// located reports whether the parcel has a position. Rows imported without a shape sit
// at 0,0 until they are geocoded.
func located(p *models.Parcel) bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Center is the mean position of the located parcels, or the national centre when there are none.
func Center(parcels []models.Parcel) models.LatLng {
	return CenterOr(parcels, models.LatLng{Lat: config.DefaultCenter[0], Lng: config.DefaultCenter[1]})
}

// CenterOr is Center with a caller-supplied fallback.
func CenterOr(parcels []models.Parcel, fallback models.LatLng) models.LatLng {
	var sumLat, sumLng float64
	var n int
	for i := range parcels {
		if !located(&parcels[i]) {
			continue
		}
		sumLat += parcels[i].Latitude
		sumLng += parcels[i].Longitude
		n++
	}
	if n == 0 {
		return fallback
	}
	return models.LatLng{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}
}

// ParcelBounds returns the box enclosing every located parcel. ok is false when there is none.
func ParcelBounds(parcels []models.Parcel) (b Bounds, ok bool) {
	var mp orb.MultiPoint
	for i := range parcels {
		if located(&parcels[i]) {
			mp = append(mp, point(&parcels[i]))
		}
	}
	if len(mp) == 0 {
		return Bounds{}, false
	}

	bound := mp.Bound()
	return Bounds{
		MinLat: bound.Min.Lat(),
		MaxLat: bound.Max.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLng: bound.Max.Lon(),
	}, true
}

// FeatureCollection renders located parcels as GeoJSON points carrying their list-view fields.
func FeatureCollection(parcels []models.Parcel) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range parcels {
		p := &parcels[i]
		if !located(p) {
			continue
		}
		feature := geojson.NewFeature(point(p))
		feature.ID = p.ID
		feature.Properties = geojson.Properties{
			"id":             p.ID,
			"address":        p.Address,
			"city":           p.City,
			"state":          p.State,
			"price":          p.Price,
			"acres":          p.Acres,
			"zoning":         string(p.Zoning),
			"price_per_acre": p.PricePerAcre(),
		}
		fc.Append(feature)
	}
	return fc
}
