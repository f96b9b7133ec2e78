package search

import (
	"landscout/server/config"
	"landscout/server/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerMile = 1609.344

// FilterParcels returns the parcels that satisfy every active constraint in filters,
// in their original order. It never modifies its input.
func FilterParcels(parcels []models.Parcel, filters models.SearchFilters) []models.Parcel {
	result := make([]models.Parcel, 0, len(parcels))
	for i := range parcels {
		if Matches(&parcels[i], &filters) {
			result = append(result, parcels[i])
		}
	}
	return result
}

// Matches checks if a parcel satisfies the filter criteria
func Matches(p *models.Parcel, f *models.SearchFilters) bool {
	if f == nil {
		return true
	}

	// Location is an exact, case-sensitive match on each populated field
	if f.Location.State != "" && p.State != f.Location.State {
		return false
	}
	if f.Location.County != "" && p.County != f.Location.County {
		return false
	}
	if f.Location.City != "" && p.City != f.Location.City {
		return false
	}
	if f.Location.MSA != "" && !inMarket(p, &f.Location) {
		return false
	}

	if !f.PriceRange.Contains(p.Price) {
		return false
	}
	if !f.SizeRange.Contains(p.Acres) {
		return false
	}

	if len(f.Zoning) > 0 {
		allowed := false
		for _, z := range f.Zoning {
			if z == p.Zoning {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if f.Radius.Active() && DistanceMiles(*f.Radius.Center, p.Latitude, p.Longitude) > f.Radius.Distance {
		return false
	}

	return true
}

// inMarket matches the parcel's MSA exactly. With IncludeOutlyingCounties set it also
// accepts parcels in any county the market lists, within the market's state.
func inMarket(p *models.Parcel, loc *models.LocationFilter) bool {
	if p.MSA == loc.MSA {
		return true
	}
	if !loc.IncludeOutlyingCounties {
		return false
	}

	m := config.GetMarketByName(loc.MSA)
	if m == nil || (m.State != "" && p.State != m.State) {
		return false
	}
	for _, county := range m.Counties {
		if county == p.County {
			return true
		}
	}
	return false
}

// DistanceMiles is the great-circle distance between center and the given coordinate.
func DistanceMiles(center models.LatLng, lat, lng float64) float64 {
	meters := geo.DistanceHaversine(orb.Point{center.Lng, center.Lat}, orb.Point{lng, lat})
	return meters / metersPerMile
}
