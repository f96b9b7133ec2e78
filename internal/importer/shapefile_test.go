package importer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landscout/server/internal/models"
	"landscout/server/internal/queue"
)

var testFields = []shp.Field{
	shp.StringField("PARCEL_ID", 20),
	shp.StringField("ADDRESS", 60),
	shp.StringField("CITY", 40),
	shp.StringField("STATE", 2),
	shp.StringField("COUNTY", 40),
	shp.StringField("ZONING", 20),
	shp.FloatField("PRICE", 14, 2),
	shp.FloatField("ACRES", 12, 4),
}

type row struct {
	id, address, city, state, county, zoning string
	price, acres                             float64
}

func writeAttributes(t *testing.T, w *shp.Writer, idx int32, r row) {
	t.Helper()
	values := []interface{}{r.id, r.address, r.city, r.state, r.county, r.zoning, r.price, r.acres}
	for col, v := range values {
		require.NoError(t, w.WriteAttribute(int(idx), col, v))
	}
}

func writePointShapefile(t *testing.T, rows []row, points []shp.Point) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcels.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields(testFields))

	for i := range rows {
		pt := points[i]
		idx := w.Write(&pt)
		writeAttributes(t, w, idx, rows[i])
	}
	w.Close()
	return path
}

// collector subscribes to q and records every parcel it sees.
type collector struct {
	mu      sync.Mutex
	parcels []*models.Parcel
	batches int
}

func (c *collector) handle(batch []*models.Parcel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parcels = append(c.parcels, batch...)
	c.batches++
	return nil
}

func startQueue(t *testing.T) (*queue.ParcelQueue, *collector) {
	t.Helper()
	q := queue.NewParcelQueue(4, logrus.New())
	c := &collector{}
	q.Subscribe(c.handle)
	q.Start()
	t.Cleanup(func() { q.Close() })
	return q, c
}

func TestImportShapefile_Points(t *testing.T) {
	rows := []row{
		{"TX-1", "12 Ranch Rd", "Austin", "tx", "Travis", "AG", 250000, 10},
		{"TX-2", "99 Mill St", "Round Rock", "TX", "Williamson", "commercial", 1200000, 25},
		{"TX-3", "1 Nowhere", "Austin", "TX", "Travis", "PD-7", 100000, 2},
		{"TX-4", "5 Creek Ln", "Austin", "TX", "Travis", "Residential", 95000, 0},
		{"", "7 Oak Dr", "Austin", "TX", "Travis", "RES", 150000, 1.25},
	}
	points := []shp.Point{
		{X: -97.7431, Y: 30.2672},
		{X: -97.6789, Y: 30.5083},
		{X: -97.70, Y: 30.30},
		{X: -97.80, Y: 30.30},
		{X: -97.75, Y: 30.28},
	}
	path := writePointShapefile(t, rows, points)

	q, c := startQueue(t)
	imp := NewImporter(q, 2, logrus.New())

	result, err := imp.ImportShapefile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Result{Read: 5, Skipped: 2, Queued: 3}, result)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, 2, c.batches)
	require.Len(t, c.parcels, 3)

	sort.Slice(c.parcels, func(i, j int) bool { return c.parcels[i].ID < c.parcels[j].ID })

	first := c.parcels[0]
	assert.Equal(t, "TX-1", first.ID)
	assert.Equal(t, "TX", first.State)
	assert.Equal(t, models.ZoningAgricultural, first.Zoning)
	assert.InDelta(t, 250000, first.Price, 0.01)
	assert.InDelta(t, 30.2672, first.Latitude, 1e-6)
	assert.InDelta(t, -97.7431, first.Longitude, 1e-6)

	assert.Equal(t, models.ZoningCommercial, c.parcels[1].Zoning)

	// Rows without an id get one derived from the file name and row
	assert.Equal(t, "parcels-4", c.parcels[2].ID)
	assert.Equal(t, models.ZoningResidential, c.parcels[2].Zoning)
}

func TestImportShapefile_PolygonAcreageFromGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracts.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields(testFields))

	// Roughly 0.01 x 0.01 degrees near Bozeman, clockwise outer ring
	ring := []shp.Point{
		{X: -111.05, Y: 45.68},
		{X: -111.04, Y: 45.68},
		{X: -111.04, Y: 45.67},
		{X: -111.05, Y: 45.67},
		{X: -111.05, Y: 45.68},
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	idx := w.Write(&poly)
	writeAttributes(t, w, idx, row{"MT-1", "Bridger Canyon", "Bozeman", "MT", "Gallatin", "Recreation", 640000, 0})
	w.Close()

	q, c := startQueue(t)
	result, err := NewImporter(q, 10, logrus.New()).ImportShapefile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Result{Read: 1, Queued: 1}, result)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.parcels, 1)
	p := c.parcels[0]
	assert.InDelta(t, 45.675, p.Latitude, 1e-4)
	assert.InDelta(t, -111.045, p.Longitude, 1e-4)

	// 0.01 degrees is ~1112 m north-south and ~778 m east-west at this latitude
	assert.InDelta(t, 214, p.Acres, 10)
}

func TestImportShapefile_TruncatedFile(t *testing.T) {
	rows := []row{
		{"TX-1", "12 Ranch Rd", "Austin", "TX", "Travis", "AG", 250000, 10},
		{"TX-2", "99 Mill St", "Round Rock", "TX", "Williamson", "Commercial", 1200000, 25},
		{"TX-3", "7 Oak Dr", "Austin", "TX", "Travis", "Residential", 150000, 1.25},
	}
	points := []shp.Point{{X: -97.74, Y: 30.26}, {X: -97.67, Y: 30.50}, {X: -97.75, Y: 30.28}}
	path := writePointShapefile(t, rows, points)

	// Cut the last point record short
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-10))

	q, c := startQueue(t)
	result, err := NewImporter(q, 10, logrus.New()).ImportShapefile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read shapefile")
	assert.Equal(t, Result{Read: 2, Queued: 2}, result)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.parcels, 2)
}

// fakeReader serves shapes and attribute rows from memory.
type fakeReader struct {
	fields []shp.Field
	shapes []shp.Shape
	rows   [][]string
	pos    int
}

func (f *fakeReader) Fields() []shp.Field { return f.fields }

func (f *fakeReader) Next() bool {
	if f.pos >= len(f.shapes) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeReader) Shape() (int, shp.Shape) { return f.pos - 1, f.shapes[f.pos-1] }

func (f *fakeReader) ReadAttribute(row, field int) string { return f.rows[row][field] }

func (f *fakeReader) Err() error { return nil }

func TestImport_NullShapeQueuedWithoutPosition(t *testing.T) {
	r := &fakeReader{
		fields: testFields,
		shapes: []shp.Shape{&shp.Null{}, &shp.Point{X: -97.74, Y: 30.26}},
		rows: [][]string{
			{"TX-9", "400 County Rd 12", "Lockhart", "TX", "Caldwell", "AG", "180000", "40"},
			{"TX-10", "12 Ranch Rd", "Austin", "TX", "Travis", "AG", "250000", "10"},
		},
	}

	q, c := startQueue(t)
	result, err := NewImporter(q, 10, logrus.New()).importFrom(context.Background(), r, "county.shp")
	require.NoError(t, err)
	assert.Equal(t, Result{Read: 2, Queued: 2}, result)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.parcels, 2)
	pending := c.parcels[0]
	assert.Equal(t, "TX-9", pending.ID)
	assert.Equal(t, "400 County Rd 12", pending.Address)
	assert.Equal(t, 40.0, pending.Acres)
	assert.Zero(t, pending.Latitude)
	assert.Zero(t, pending.Longitude)
}

func TestParcelFromShape_PolygonWithHole(t *testing.T) {
	outer := []shp.Point{
		{X: -111.05, Y: 45.68},
		{X: -111.04, Y: 45.68},
		{X: -111.04, Y: 45.67},
		{X: -111.05, Y: 45.67},
		{X: -111.05, Y: 45.68},
	}
	// Pond in the eastern part of the tract, 18% of the outer ring
	hole := []shp.Point{
		{X: -111.044, Y: 45.672},
		{X: -111.044, Y: 45.678},
		{X: -111.041, Y: 45.678},
		{X: -111.041, Y: 45.672},
		{X: -111.044, Y: 45.672},
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, hole}))

	attrs := map[string]string{"PARCEL_ID": "MT-2", "STATE": "mt", "ZONING": "Recreation"}
	p, err := parcelFromShape(&poly, func(name string) string { return attrs[name] })
	require.NoError(t, err)

	require.Len(t, toPolygon(&poly), 2)
	assert.Equal(t, "MT", p.State)
	// The hole is subtracted from the ~214 acre outer ring
	assert.InDelta(t, 214*0.82, p.Acres, 10)
	// and pulls the centroid west of the outer ring's centre
	assert.Less(t, p.Longitude, -111.045)
	assert.InDelta(t, 45.675, p.Latitude, 1e-4)
}

func TestImportShapefile_MissingFile(t *testing.T) {
	q, _ := startQueue(t)
	_, err := NewImporter(q, 10, logrus.New()).ImportShapefile(context.Background(), filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"", 0, false},
		{"  1,250,000 ", 1250000, false},
		{"$95000.50", 95000.5, false},
		{"n/a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := parseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
