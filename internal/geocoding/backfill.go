package geocoding

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"landscout/server/internal/models"
)

// Store is the part of the parcel store the backfill needs.
type Store interface {
	ParcelsMissingCoordinates() ([]models.Parcel, error)
	UpdateCoordinates(id string, lat, lng float64) error
}

type BackfillResult struct {
	Updated int
	Failed  int
}

// Backfill geocodes every parcel without coordinates. Lookup failures are logged and
// counted; store errors and cancellation stop the run.
func Backfill(ctx context.Context, store Store, g *Geocoder, logger *logrus.Logger) (BackfillResult, error) {
	var result BackfillResult

	parcels, err := store.ParcelsMissingCoordinates()
	if err != nil {
		return result, err
	}
	if len(parcels) == 0 {
		logger.Info("No parcels need geocoding")
		return result, nil
	}
	logger.Infof("Found %d parcels that need geocoding", len(parcels))

	defer func() {
		if err := g.SaveCache(); err != nil {
			logger.WithError(err).Error("Failed to save geocode cache")
		}
	}()

	for i := range parcels {
		p := &parcels[i]
		lat, lng, err := g.GeocodeAddress(ctx, FormatAddress(p))
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.WithError(err).WithField("id", p.ID).Warn("Failed to geocode parcel")
			result.Failed++
			continue
		}

		if err := store.UpdateCoordinates(p.ID, lat, lng); err != nil {
			return result, fmt.Errorf("failed to store coordinates: %w", err)
		}
		result.Updated++
	}

	logger.WithFields(logrus.Fields{
		"updated": result.Updated,
		"failed":  result.Failed,
	}).Info("Geocoding finished")
	return result, nil
}
