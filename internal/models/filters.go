package models

import "time"

type LocationFilter struct {
	State                   string `json:"state" form:"state"`
	County                  string `json:"county" form:"county"`
	City                    string `json:"city" form:"city"`
	MSA                     string `json:"msa,omitempty" form:"msa"`
	IncludeOutlyingCounties bool   `json:"includeOutlyingCounties,omitempty" form:"includeOutlyingCounties"`
}

// Range is an inclusive numeric range. A nil bound is unbounded on that side.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RadiusFilter limits results to parcels within Distance miles of Center.
type RadiusFilter struct {
	Enabled  bool    `json:"enabled"`
	Center   *LatLng `json:"center"`
	Distance float64 `json:"distance"`
}

// Active reports whether the radius should constrain results.
func (r *RadiusFilter) Active() bool {
	return r != nil && r.Enabled && r.Center != nil
}

// AmenityOptions are carried with a search but never evaluated against parcels.
type AmenityOptions struct {
	HasImages    bool `json:"hasImages"`
	HasWater     bool `json:"hasWater"`
	HasUtilities bool `json:"hasUtilities"`
	IsCornerLot  bool `json:"isCornerLot"`
}

// SearchFilters is the structured query built by the search form.
type SearchFilters struct {
	Location   LocationFilter  `json:"location"`
	PriceRange Range           `json:"priceRange"`
	SizeRange  Range           `json:"sizeRange"`
	Zoning     []Zoning        `json:"zoning"`
	Radius     *RadiusFilter   `json:"radius,omitempty"`
	Options    *AmenityOptions `json:"options,omitempty"`
}

// SavedSearch is a named set of filters a user can reload later.
type SavedSearch struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" binding:"required" gorm:"uniqueIndex"`
	Filters   SearchFilters `json:"filters" gorm:"serializer:json"`
	CreatedAt time.Time     `json:"createdAt"`
}
