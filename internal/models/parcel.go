package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidAcreage = errors.New("acreage must be greater than zero")
	ErrNegativePrice  = errors.New("price must not be negative")
	ErrUnknownZoning  = errors.New("unknown zoning category")
)

type Zoning string

const (
	ZoningAgricultural Zoning = "Agricultural"
	ZoningResidential  Zoning = "Residential"
	ZoningCommercial   Zoning = "Commercial"
	ZoningMixedUse     Zoning = "Mixed Use"
	ZoningIndustrial   Zoning = "Industrial"
	ZoningRecreation   Zoning = "Recreation"
	ZoningResort       Zoning = "Resort"
)

// ZoningCategories lists every zoning designation a parcel may carry, in display order.
var ZoningCategories = []Zoning{
	ZoningAgricultural,
	ZoningResidential,
	ZoningCommercial,
	ZoningMixedUse,
	ZoningIndustrial,
	ZoningRecreation,
	ZoningResort,
}

// Valid reports whether z is one of the known zoning categories.
func (z Zoning) Valid() bool {
	for _, c := range ZoningCategories {
		if c == z {
			return true
		}
	}
	return false
}

// Parcel is a single land listing.
type Parcel struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Address     string      `json:"address"`
	City        string      `json:"city" gorm:"index"`
	State       string      `json:"state" gorm:"size:2;index"`
	Zip         string      `json:"zip"`
	County      string      `json:"county"`
	MSA         string      `json:"msa,omitempty"`
	Price       float64     `json:"price"`
	Acres       float64     `json:"acres"`
	Zoning      Zoning      `json:"zoning"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Description string      `json:"description"`
	Images      []string    `json:"images" gorm:"serializer:json"`
	Features    []string    `json:"features" gorm:"serializer:json"`
	Financials  *Financials `json:"financials,omitempty" gorm:"serializer:json"`
	ParcelData  *ParcelData `json:"parcelData,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// Validate rejects parcels that downstream calculations cannot handle.
func (p *Parcel) Validate() error {
	if p.Acres <= 0 {
		return fmt.Errorf("parcel %s: %w", p.ID, ErrInvalidAcreage)
	}
	if p.Price < 0 {
		return fmt.Errorf("parcel %s: %w", p.ID, ErrNegativePrice)
	}
	if !p.Zoning.Valid() {
		return fmt.Errorf("parcel %s: %w: %q", p.ID, ErrUnknownZoning, p.Zoning)
	}
	return nil
}

// PricePerAcre returns 0 when acreage is not positive.
func (p *Parcel) PricePerAcre() float64 {
	if p.Acres <= 0 {
		return 0
	}
	return p.Price / p.Acres
}

type DevelopmentCosts struct {
	LandCost  float64 `json:"landCost" binding:"gte=0"`
	Sitework  float64 `json:"sitework" binding:"gte=0"`
	Utilities float64 `json:"utilities" binding:"gte=0"`
	Permits   float64 `json:"permits" binding:"gte=0"`
	Other     float64 `json:"other" binding:"gte=0"`
}

type Revenue struct {
	ProjectedSalePrice float64 `json:"projectedSalePrice" binding:"gte=0"`
	RentalIncome       float64 `json:"rentalIncome" binding:"gte=0"`
}

type Financing struct {
	LoanAmount   float64 `json:"loanAmount" binding:"gte=0"`
	InterestRate float64 `json:"interestRate" binding:"gte=0"`
	Term         float64 `json:"term" binding:"gte=0"`
}

// Financials is the projection shown on a parcel's financial tab.
type Financials struct {
	DevelopmentCosts DevelopmentCosts `json:"developmentCosts"`
	Revenue          Revenue          `json:"revenue"`
	Financing        Financing        `json:"financing"`
}

type Elevation struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

type WaterBody struct {
	Type string  `json:"type"`
	Area float64 `json:"area"`
}

type Water struct {
	Bodies     []WaterBody `json:"bodies"`
	Percentage float64     `json:"percentage"`
}

type SoilComponent struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
}

type Soil struct {
	Type            string          `json:"type"`
	Composition     []SoilComponent `json:"composition"`
	PercolationRate float64         `json:"percolationRate"`
}

type ParcelMetrics struct {
	Flatness      float64 `json:"flatness"`
	Squareness    float64 `json:"squareness"`
	WaterCoverage float64 `json:"waterCoverage"`
}

// ParcelData holds physical characteristics. Display only.
type ParcelData struct {
	Elevation Elevation     `json:"elevation"`
	Water     Water         `json:"water"`
	Soil      Soil          `json:"soil"`
	Metrics   ParcelMetrics `json:"metrics"`
}

var zoningAliases = map[string]Zoning{
	"AG":    ZoningAgricultural,
	"A":     ZoningAgricultural,
	"RES":   ZoningResidential,
	"R":     ZoningResidential,
	"COM":   ZoningCommercial,
	"C":     ZoningCommercial,
	"MU":    ZoningMixedUse,
	"MIXED": ZoningMixedUse,
	"IND":   ZoningIndustrial,
	"I":     ZoningIndustrial,
	"REC":   ZoningRecreation,
}

// ParseZoning maps a category name or common county abbreviation to a Zoning,
// ignoring case and surrounding whitespace.
func ParseZoning(s string) (Zoning, bool) {
	s = strings.TrimSpace(s)
	for _, c := range ZoningCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	if z, ok := zoningAliases[strings.ToUpper(s)]; ok {
		return z, true
	}
	return "", false
}
