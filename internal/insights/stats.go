// Package insights aggregates parcel listings into the figures shown on the
// market insights page.
package insights

import (
	"sort"

	"landscout/server/internal/models"
)

// GroupStats summarises the parcels sharing one key.
type GroupStats struct {
	Key             string  `json:"key"`
	ParcelCount     int     `json:"parcel_count"`
	TotalAcres      float64 `json:"total_acres"`
	AveragePrice    float64 `json:"average_price"`
	AvgPricePerAcre float64 `json:"avg_price_per_acre"`
	MinPrice        float64 `json:"min_price"`
	MaxPrice        float64 `json:"max_price"`
}

type MarketStats struct {
	Overall  GroupStats   `json:"overall"`
	ByZoning []GroupStats `json:"by_zoning"`
	ByState  []GroupStats `json:"by_state"`
}

type accumulator struct {
	count       int
	acres       float64
	priceSum    float64
	perAcreSum  float64
	perAcreSeen int
	min, max    float64
}

func (a *accumulator) add(p *models.Parcel) {
	if a.count == 0 || p.Price < a.min {
		a.min = p.Price
	}
	if a.count == 0 || p.Price > a.max {
		a.max = p.Price
	}
	a.count++
	a.acres += p.Acres
	a.priceSum += p.Price
	// Parcels without positive acreage are left out of the per-acre average
	if p.Acres > 0 {
		a.perAcreSum += p.PricePerAcre()
		a.perAcreSeen++
	}
}

func (a *accumulator) stats(key string) GroupStats {
	s := GroupStats{Key: key, ParcelCount: a.count, TotalAcres: a.acres, MinPrice: a.min, MaxPrice: a.max}
	if a.count > 0 {
		s.AveragePrice = a.priceSum / float64(a.count)
	}
	if a.perAcreSeen > 0 {
		s.AvgPricePerAcre = a.perAcreSum / float64(a.perAcreSeen)
	}
	return s
}

// Compute aggregates parcels overall, by zoning and by state. Groups are sorted by key.
func Compute(parcels []models.Parcel) MarketStats {
	var overall accumulator
	byZoning := make(map[string]*accumulator)
	byState := make(map[string]*accumulator)

	for i := range parcels {
		p := &parcels[i]
		overall.add(p)
		group(byZoning, string(p.Zoning)).add(p)
		group(byState, p.State).add(p)
	}

	return MarketStats{
		Overall:  overall.stats("all"),
		ByZoning: flatten(byZoning),
		ByState:  flatten(byState),
	}
}

func group(m map[string]*accumulator, key string) *accumulator {
	a, ok := m[key]
	if !ok {
		a = &accumulator{}
		m[key] = a
	}
	return a
}

func flatten(m map[string]*accumulator) []GroupStats {
	out := make([]GroupStats, 0, len(m))
	for key, a := range m {
		out = append(out, a.stats(key))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
