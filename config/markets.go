package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Market is a metropolitan statistical area the search form offers as a location filter.
type Market struct {
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Counties  []string  `json:"counties"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// MarketConfig is the on-disk shape of a markets file.
type MarketConfig struct {
	Markets []Market `json:"markets"`
}

// DefaultCenter is the geographic centre of the contiguous United States.
var DefaultCenter = []float64{39.8283, -98.5795}

const defaultZoom = 4

var (
	marketsLock sync.RWMutex
	markets     = []Market{
		{
			Name:      "Austin-Round Rock-Georgetown",
			State:     "TX",
			Counties:  []string{"Travis", "Williamson", "Hays", "Bastrop", "Caldwell"},
			Center:    []float64{30.2672, -97.7431},
			ZoomLevel: 9,
		},
		{
			Name:      "Phoenix-Mesa-Chandler",
			State:     "AZ",
			Counties:  []string{"Maricopa", "Pinal"},
			Center:    []float64{33.4484, -112.0740},
			ZoomLevel: 9,
		},
		{
			Name:      "Prescott Valley-Prescott",
			State:     "AZ",
			Counties:  []string{"Yavapai"},
			Center:    []float64{34.5400, -112.4685},
			ZoomLevel: 9,
		},
		{
			Name:      "Bozeman",
			State:     "MT",
			Counties:  []string{"Gallatin"},
			Center:    []float64{45.6770, -111.0429},
			ZoomLevel: 10,
		},
		{
			Name:      "Asheville",
			State:     "NC",
			Counties:  []string{"Buncombe", "Haywood", "Henderson", "Madison"},
			Center:    []float64{35.5951, -82.5515},
			ZoomLevel: 9,
		},
	}
)

// LoadMarkets replaces the built-in market list with the contents of path.
func LoadMarkets(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read markets file: %w", err)
	}

	var cfg MarketConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse markets file: %w", err)
	}
	if len(cfg.Markets) == 0 {
		return fmt.Errorf("markets file %s defines no markets", path)
	}

	marketsLock.Lock()
	defer marketsLock.Unlock()
	markets = cfg.Markets
	return nil
}

// GetMarkets returns a copy of the configured markets
func GetMarkets() []Market {
	marketsLock.RLock()
	defer marketsLock.RUnlock()

	out := make([]Market, len(markets))
	copy(out, markets)
	return out
}

// GetMarketByName returns nil when no market has that name.
func GetMarketByName(name string) *Market {
	marketsLock.RLock()
	defer marketsLock.RUnlock()

	for _, m := range markets {
		if m.Name == name {
			market := m
			return &market
		}
	}
	return nil
}

// MapView returns the map centre and zoom for a market, or the national view
// when the market is unknown or has no centre.
func MapView(name string) ([]float64, int) {
	m := GetMarketByName(name)
	if m == nil || len(m.Center) != 2 {
		return DefaultCenter, defaultZoom
	}
	zoom := m.ZoomLevel
	if zoom == 0 {
		zoom = defaultZoom
	}
	return m.Center, zoom
}
