package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"landscout/server/config"
	"landscout/server/internal/database"
	"landscout/server/internal/geometry"
	"landscout/server/internal/insights"
	"landscout/server/internal/models"
	"landscout/server/internal/proforma"
	"landscout/server/internal/search"
)

// Store is the parcel and saved-search persistence the handlers read from.
type Store interface {
	GetAllParcels() ([]models.Parcel, error)
	GetParcelByID(id string) (*models.Parcel, error)
	SaveSearch(search *models.SavedSearch) error
	GetSavedSearches() ([]models.SavedSearch, error)
	DeleteSavedSearch(id string) error
}

type Handler struct {
	store  Store
	logger *logrus.Logger
	now    func() time.Time
}

// ParcelQuery is the query-string form of SearchFilters.
type ParcelQuery struct {
	State    string   `form:"state"`
	County   string   `form:"county"`
	City     string   `form:"city"`
	MSA      string   `form:"msa"`
	Outlying bool     `form:"includeOutlyingCounties"`
	MinPrice *float64 `form:"minPrice"`
	MaxPrice *float64 `form:"maxPrice"`
	MinAcres *float64 `form:"minAcres"`
	MaxAcres *float64 `form:"maxAcres"`
	Zoning   []string `form:"zoning"`
	Lat      *float64 `form:"lat"`
	Lng      *float64 `form:"lng"`
	Radius   *float64 `form:"radius" binding:"omitempty,gt=0"`
}

// Filters converts the query into SearchFilters. A radius only applies when lat, lng
// and radius are all present.
func (q ParcelQuery) Filters() models.SearchFilters {
	f := models.SearchFilters{
		Location: models.LocationFilter{
			State:  q.State,
			County: q.County,
			City:   q.City,
			MSA:    q.MSA,

			IncludeOutlyingCounties: q.Outlying,
		},
		PriceRange: models.Range{Min: q.MinPrice, Max: q.MaxPrice},
		SizeRange:  models.Range{Min: q.MinAcres, Max: q.MaxAcres},
	}
	for _, z := range q.Zoning {
		f.Zoning = append(f.Zoning, models.Zoning(z))
	}
	if q.Lat != nil && q.Lng != nil && q.Radius != nil {
		f.Radius = &models.RadiusFilter{
			Enabled:  true,
			Center:   &models.LatLng{Lat: *q.Lat, Lng: *q.Lng},
			Distance: *q.Radius,
		}
	}
	return f
}

type SavedSearchRequest struct {
	Name    string               `json:"name" binding:"required"`
	Filters models.SearchFilters `json:"filters"`
}

type ParcelDetail struct {
	Parcel       *models.Parcel `json:"parcel"`
	PricePerAcre float64        `json:"price_per_acre"`
	Region       string         `json:"region,omitempty"`
}

type MapResponse struct {
	Center   models.LatLng              `json:"center"`
	Bounds   *geometry.Bounds           `json:"bounds"`
	Features *geojson.FeatureCollection `json:"features"`
	Count    int                        `json:"count"`
}

func NewHandler(store Store, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// filteredParcels loads every parcel and applies filters.
func (h *Handler) filteredParcels(c *gin.Context, filters models.SearchFilters) ([]models.Parcel, bool) {
	parcels, err := h.store.GetAllParcels()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get parcels")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get parcels"})
		return nil, false
	}
	return search.FilterParcels(parcels, filters), true
}

func (h *Handler) GetParcels(c *gin.Context) {
	var query ParcelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Warn("Invalid parcel query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	parcels, ok := h.filteredParcels(c, query.Filters())
	if !ok {
		return
	}
	c.JSON(http.StatusOK, parcels)
}

func (h *Handler) SearchParcels(c *gin.Context) {
	var filters models.SearchFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.WithError(err).Warn("Invalid search filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search filters"})
		return
	}

	parcels, ok := h.filteredParcels(c, filters)
	if !ok {
		return
	}
	h.logger.WithField("results", len(parcels)).Debug("Parcel search")
	c.JSON(http.StatusOK, parcels)
}

func (h *Handler) GetParcel(c *gin.Context) {
	id := c.Param("id")
	parcel, err := h.store.GetParcelByID(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to get parcel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get parcel"})
		return
	}

	region, _ := geometry.RegionAt(parcel.Latitude, parcel.Longitude)
	c.JSON(http.StatusOK, ParcelDetail{
		Parcel:       parcel,
		PricePerAcre: parcel.PricePerAcre(),
		Region:       region,
	})
}

func (h *Handler) GetParcelMap(c *gin.Context) {
	var query ParcelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	parcels, ok := h.filteredParcels(c, query.Filters())
	if !ok {
		return
	}

	// With nothing to place, centre on the requested market
	center, _ := config.MapView(query.MSA)
	resp := MapResponse{
		Center:   geometry.CenterOr(parcels, models.LatLng{Lat: center[0], Lng: center[1]}),
		Features: geometry.FeatureCollection(parcels),
		Count:    len(parcels),
	}
	if b, ok := geometry.ParcelBounds(parcels); ok {
		resp.Bounds = &b
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, geometry.RegionBoundaries(c.Query("state")))
}

// Analyze runs the pro-forma calculator. Omitted financing fields keep the form defaults.
func (h *Handler) Analyze(c *gin.Context) {
	inputs := proforma.DefaultInputs()
	if err := c.ShouldBindJSON(&inputs); err != nil {
		h.logger.WithError(err).Warn("Invalid analysis inputs")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis inputs"})
		return
	}

	c.JSON(http.StatusOK, proforma.Analyze(inputs))
}

func (h *Handler) GetInsights(c *gin.Context) {
	filters := models.SearchFilters{Location: models.LocationFilter{State: c.Query("state")}}
	parcels, ok := h.filteredParcels(c, filters)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, insights.Compute(parcels))
}

func (h *Handler) ListSavedSearches(c *gin.Context) {
	searches, err := h.store.GetSavedSearches()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get saved searches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get saved searches"})
		return
	}
	c.JSON(http.StatusOK, searches)
}

func (h *Handler) CreateSavedSearch(c *gin.Context) {
	var req SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A search name is required"})
		return
	}

	saved := &models.SavedSearch{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Filters:   req.Filters,
		CreatedAt: h.now().UTC(),
	}
	err := h.store.SaveSearch(saved)
	if errors.Is(err, database.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "A saved search with that name already exists"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to save search")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	h.logger.WithFields(logrus.Fields{"id": saved.ID, "name": saved.Name}).Info("Saved search")
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) DeleteSavedSearch(c *gin.Context) {
	id := c.Param("id")
	err := h.store.DeleteSavedSearch(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved search not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to delete saved search")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saved search"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, config.GetMarkets())
}

func (h *Handler) GetZoning(c *gin.Context) {
	c.JSON(http.StatusOK, models.ZoningCategories)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
