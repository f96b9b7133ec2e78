package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"

	"landscout/server/internal/models"
	"landscout/server/internal/queue"
)

const squareMetersPerAcre = 4046.8564224

// Result summarises one import run.
type Result struct {
	Read    int `json:"read"`
	Skipped int `json:"skipped"`
	Queued  int `json:"queued"`
}

// Importer reads parcel shapefiles and hands validated parcels to the batch queue.
type Importer struct {
	queue     *queue.ParcelQueue
	batchSize int
	logger    *logrus.Logger
}

func NewImporter(q *queue.ParcelQueue, batchSize int, logger *logrus.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Importer{queue: q, batchSize: batchSize, logger: logger}
}

// shapeReader is the part of *shp.Reader the import reads through.
type shapeReader interface {
	Fields() []shp.Field
	Next() bool
	Shape() (int, shp.Shape)
	ReadAttribute(row int, field int) string
	Err() error
}

// ImportShapefile streams parcels from path onto the queue and waits for them to be handled.
// Rows that fail validation are logged and skipped. A read error part way through fails the
// import after the parcels read so far have been queued.
func (i *Importer) ImportShapefile(ctx context.Context, path string) (Result, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open shapefile %s: %w", path, err)
	}
	defer r.Close()

	return i.importFrom(ctx, r, path)
}

func (i *Importer) importFrom(ctx context.Context, r shapeReader, path string) (Result, error) {
	var result Result

	columns := fieldIndex(r.Fields())
	prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	batch := make([]*models.Parcel, 0, i.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.queue.PushContext(ctx, batch); err != nil {
			return fmt.Errorf("failed to queue parcel batch: %w", err)
		}
		result.Queued += len(batch)
		batch = make([]*models.Parcel, 0, i.batchSize)
		return nil
	}

	for r.Next() {
		idx, shape := r.Shape()
		result.Read++

		attrs := func(name string) string {
			col, ok := columns[name]
			if !ok {
				return ""
			}
			// DBF values are padded with spaces or NULs depending on the writer
			return strings.Trim(r.ReadAttribute(idx, col), " \x00")
		}

		parcel, err := parcelFromShape(shape, attrs)
		if err == nil {
			if parcel.ID == "" {
				parcel.ID = fmt.Sprintf("%s-%d", prefix, idx)
			}
			err = parcel.Validate()
		}
		if err != nil {
			i.logger.WithFields(logrus.Fields{"row": idx, "file": path}).WithError(err).Warn("Skipping parcel")
			result.Skipped++
			continue
		}

		batch = append(batch, parcel)
		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}
	if err := flush(); err != nil {
		return result, err
	}
	i.queue.Flush()

	if err := r.Err(); err != nil {
		return result, fmt.Errorf("failed to read shapefile %s: %w", path, err)
	}

	i.logger.WithFields(logrus.Fields{
		"file":    path,
		"read":    result.Read,
		"queued":  result.Queued,
		"skipped": result.Skipped,
	}).Info("Shapefile import finished")
	return result, nil
}

// fieldIndex maps upper-cased DBF field names to their column.
func fieldIndex(fields []shp.Field) map[string]int {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.ToUpper(f.String())] = i
	}
	return index
}

func parcelFromShape(shape shp.Shape, attr func(string) string) (*models.Parcel, error) {
	p := &models.Parcel{
		ID:          attr("PARCEL_ID"),
		Address:     attr("ADDRESS"),
		City:        attr("CITY"),
		State:       strings.ToUpper(attr("STATE")),
		Zip:         attr("ZIP"),
		County:      attr("COUNTY"),
		MSA:         attr("MSA"),
		Description: attr("DESC"),
	}

	zoning, ok := models.ParseZoning(attr("ZONING"))
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownZoning, attr("ZONING"))
	}
	p.Zoning = zoning

	var err error
	if p.Price, err = parseNumber(attr("PRICE")); err != nil {
		return nil, fmt.Errorf("invalid PRICE: %w", err)
	}
	if p.Acres, err = parseNumber(attr("ACRES")); err != nil {
		return nil, fmt.Errorf("invalid ACRES: %w", err)
	}

	switch s := shape.(type) {
	case *shp.Point:
		p.Latitude, p.Longitude = s.Y, s.X
	case *shp.Polygon:
		poly := toPolygon(s)
		if len(poly) == 0 {
			return nil, fmt.Errorf("polygon has no rings")
		}
		center, _ := planar.CentroidArea(poly)
		p.Latitude, p.Longitude = center.Lat(), center.Lon()
		if p.Acres == 0 {
			p.Acres = geo.Area(poly) / squareMetersPerAcre
		}
	case *shp.Null:
		// Left at 0,0 for the geocoding backfill
	default:
		return nil, fmt.Errorf("unsupported shape type %T", shape)
	}

	return p, nil
}

// toPolygon treats the first part as the outer ring and any further parts as holes.
func toPolygon(s *shp.Polygon) orb.Polygon {
	var poly orb.Polygon
	for part := 0; part < len(s.Parts); part++ {
		start := s.Parts[part]
		end := int32(len(s.Points))
		if part+1 < len(s.Parts) {
			end = s.Parts[part+1]
		}
		ring := make(orb.Ring, 0, end-start)
		for _, pt := range s.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if len(ring) >= 3 {
			poly = append(poly, ring)
		}
	}
	return poly
}

// parseNumber accepts blanks as zero and tolerates thousands separators and a leading $.
func parseNumber(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
