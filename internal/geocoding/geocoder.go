package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"landscout/server/internal/models"
)

var ErrNoResults = errors.New("no geocoding results")

const cacheFileName = "geocode_cache.json"

type Options struct {
	Endpoint  string
	CacheDir  string
	UserAgent string
	// Delay is the pause before each uncached request.
	Delay time.Duration
}

type Geocoder struct {
	logger    *logrus.Logger
	opts      Options
	cache     map[string][]float64
	cacheLock sync.RWMutex
	client    *http.Client
}

func NewGeocoder(logger *logrus.Logger, opts Options) *Geocoder {
	if err := os.MkdirAll(opts.CacheDir, 0755); err != nil {
		logger.WithError(err).Warn("Could not create geocode cache directory")
	}

	g := &Geocoder{
		logger: logger,
		opts:   opts,
		cache:  make(map[string][]float64),
		client: &http.Client{Timeout: 10 * time.Second},
	}
	g.loadCache()
	return g
}

func (g *Geocoder) cachePath() string {
	return filepath.Join(g.opts.CacheDir, cacheFileName)
}

func (g *Geocoder) loadCache() {
	data, err := os.ReadFile(g.cachePath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			g.logger.WithError(err).Warn("Could not load geocode cache")
		}
		return
	}

	if err := json.Unmarshal(data, &g.cache); err != nil {
		g.logger.WithError(err).Error("Failed to parse geocode cache")
		return
	}
	g.logger.Infof("Loaded %d cached addresses", len(g.cache))
}

// SaveCache writes the address cache to disk.
func (g *Geocoder) SaveCache() error {
	g.cacheLock.RLock()
	data, err := json.Marshal(g.cache)
	g.cacheLock.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal geocode cache: %w", err)
	}

	if err := os.WriteFile(g.cachePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to save geocode cache: %w", err)
	}
	return nil
}

// FormatAddress builds the one-line US address sent to the geocoder.
func FormatAddress(p *models.Parcel) string {
	var parts []string
	for _, s := range []string{p.Address, p.City, strings.TrimSpace(p.State + " " + p.Zip)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, "USA")
	return strings.Join(parts, ", ")
}

type nominatimResponse []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Geocoder) GeocodeAddress(ctx context.Context, address string) (float64, float64, error) {
	g.cacheLock.RLock()
	coords, ok := g.cache[address]
	g.cacheLock.RUnlock()
	if ok {
		if len(coords) != 2 {
			return 0, 0, fmt.Errorf("invalid cached coordinates for %q", address)
		}
		g.logger.WithField("address", address).Debug("Found coordinates in cache")
		return coords[0], coords[1], nil
	}

	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case <-time.After(g.opts.Delay):
	}

	params := url.Values{
		"q":            []string{address},
		"format":       []string{"json"},
		"limit":        []string{"1"},
		"countrycodes": []string{"us"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.opts.Endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", g.opts.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read response: %w", err)
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result) == 0 {
		return 0, 0, fmt.Errorf("%w for %q", ErrNoResults, address)
	}

	lat, err := strconv.ParseFloat(result[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", result[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(result[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", result[0].Lon, err)
	}

	g.logger.WithFields(logrus.Fields{
		"address":   address,
		"latitude":  lat,
		"longitude": lon,
	}).Info("Geocoded address")

	g.cacheLock.Lock()
	g.cache[address] = []float64{lat, lon}
	g.cacheLock.Unlock()

	return lat, lon, nil
}
