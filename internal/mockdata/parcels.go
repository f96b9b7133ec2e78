// Package mockdata holds the demo listings served before real parcel data is imported.
package mockdata

import "landscout/server/internal/models"

// Parcels returns a fresh copy of the demo listings.
func Parcels() []models.Parcel {
	return []models.Parcel{
		{
			ID:          "prop-001",
			Address:     "4200 Hamilton Pool Rd",
			City:        "Austin",
			State:       "TX",
			Zip:         "78738",
			County:      "Travis",
			MSA:         "Austin-Round Rock-Georgetown",
			Price:       1250000,
			Acres:       42.5,
			Zoning:      models.ZoningAgricultural,
			Latitude:    30.3258,
			Longitude:   -98.0125,
			Description: "Rolling Hill Country acreage with mature oaks, a seasonal creek and long views to the west.",
			Images:      []string{"https://images.pexels.com/photos/5997992/pexels-photo-5997992.jpeg"},
			Features:    []string{"Creek", "Road frontage", "Ag exemption", "Electric at road"},
			Financials: &models.Financials{
				DevelopmentCosts: models.DevelopmentCosts{LandCost: 1250000, Sitework: 180000, Utilities: 95000, Permits: 25000, Other: 40000},
				Revenue:          models.Revenue{ProjectedSalePrice: 2400000},
				Financing:        models.Financing{LoanAmount: 1000000, InterestRate: 7.25, Term: 20},
			},
			ParcelData: &models.ParcelData{
				Elevation: models.Elevation{Min: 820, Max: 965, Average: 890},
				Water: models.Water{
					Bodies:     []models.WaterBody{{Type: "Creek", Area: 0.8}, {Type: "Stock pond", Area: 0.4}},
					Percentage: 2.8,
				},
				Soil: models.Soil{
					Type: "Clay loam",
					Composition: []models.SoilComponent{
						{Type: "Clay", Percentage: 38},
						{Type: "Silt", Percentage: 34},
						{Type: "Sand", Percentage: 28},
					},
					PercolationRate: 35,
				},
				Metrics: models.ParcelMetrics{Flatness: 0.62, Squareness: 0.71, WaterCoverage: 2.8},
			},
		},
		{
			ID:          "prop-002",
			Address:     "1801 N Mays St",
			City:        "Round Rock",
			State:       "TX",
			Zip:         "78664",
			County:      "Williamson",
			MSA:         "Austin-Round Rock-Georgetown",
			Price:       3400000,
			Acres:       8.2,
			Zoning:      models.ZoningCommercial,
			Latitude:    30.5320,
			Longitude:   -97.6890,
			Description: "Hard corner commercial pad on a signalised intersection with all utilities on site.",
			Images:      []string{"https://images.pexels.com/photos/280221/pexels-photo-280221.jpeg"},
			Features:    []string{"Corner lot", "Water", "Sewer", "Three-phase power"},
			Financials: &models.Financials{
				DevelopmentCosts: models.DevelopmentCosts{LandCost: 3400000, Sitework: 420000, Utilities: 60000, Permits: 85000, Other: 120000},
				Revenue:          models.Revenue{ProjectedSalePrice: 5200000, RentalIncome: 38000},
				Financing:        models.Financing{LoanAmount: 2700000, InterestRate: 6.75, Term: 25},
			},
		},
		{
			ID:          "prop-003",
			Address:     "Lot 14 Bastrop Pines Dr",
			City:        "Bastrop",
			State:       "TX",
			Zip:         "78602",
			County:      "Bastrop",
			MSA:         "Austin-Round Rock-Georgetown",
			Price:       89000,
			Acres:       1.1,
			Zoning:      models.ZoningResidential,
			Latitude:    30.1105,
			Longitude:   -97.3153,
			Description: "Wooded homesite in the Lost Pines, paved road and electric available.",
			Features:    []string{"Wooded", "Paved road"},
		},
		{
			ID:          "prop-004",
			Address:     "2450 W Cactus Rd",
			City:        "Phoenix",
			State:       "AZ",
			Zip:         "85029",
			County:      "Maricopa",
			MSA:         "Phoenix-Mesa-Chandler",
			Price:       2150000,
			Acres:       12,
			Zoning:      models.ZoningMixedUse,
			Latitude:    33.5970,
			Longitude:   -112.1120,
			Description: "Infill mixed-use site entitled for ground floor retail with residential above.",
			Images:      []string{"https://images.pexels.com/photos/1036936/pexels-photo-1036936.jpeg"},
			Features:    []string{"Entitled", "Transit corridor", "Utilities on site"},
		},
		{
			ID:          "prop-005",
			Address:     "600 Airport Industrial Pkwy",
			City:        "Prescott",
			State:       "AZ",
			Zip:         "86301",
			County:      "Yavapai",
			MSA:         "Prescott Valley-Prescott",
			Price:       975000,
			Acres:       18.6,
			Zoning:      models.ZoningIndustrial,
			Latitude:    34.6445,
			Longitude:   -112.4210,
			Description: "Flat industrial tract adjacent to the regional airport with rail spur access.",
			Features:    []string{"Rail access", "Flat", "Heavy power"},
		},
		{
			ID:          "prop-006",
			Address:     "Bridger Canyon Rd",
			City:        "Bozeman",
			State:       "MT",
			Zip:         "59715",
			County:      "Gallatin",
			MSA:         "Bozeman",
			Price:       1640000,
			Acres:       160,
			Zoning:      models.ZoningRecreation,
			Latitude:    45.7402,
			Longitude:   -110.9345,
			Description: "Quarter section bordering national forest with elk habitat and year-round spring.",
			Images:      []string{"https://images.pexels.com/photos/1770809/pexels-photo-1770809.jpeg"},
			Features:    []string{"Borders public land", "Spring", "Timber"},
			ParcelData: &models.ParcelData{
				Elevation: models.Elevation{Min: 5200, Max: 5980, Average: 5560},
				Water: models.Water{
					Bodies:     []models.WaterBody{{Type: "Spring", Area: 0.1}},
					Percentage: 0.1,
				},
				Soil: models.Soil{
					Type: "Gravelly loam",
					Composition: []models.SoilComponent{
						{Type: "Gravel", Percentage: 30},
						{Type: "Loam", Percentage: 70},
					},
					PercolationRate: 12,
				},
				Metrics: models.ParcelMetrics{Flatness: 0.35, Squareness: 0.94, WaterCoverage: 0.1},
			},
		},
		{
			ID:          "prop-007",
			Address:     "77 Sky Ridge Ln",
			City:        "Asheville",
			State:       "NC",
			Zip:         "28804",
			County:      "Buncombe",
			MSA:         "Asheville",
			Price:       2800000,
			Acres:       35,
			Zoning:      models.ZoningResort,
			Latitude:    35.6400,
			Longitude:   -82.5600,
			Description: "Blue Ridge view property suited to a boutique lodge or cabin resort.",
			Features:    []string{"Mountain views", "Paved access", "Well"},
			Financials: &models.Financials{
				DevelopmentCosts: models.DevelopmentCosts{LandCost: 2800000, Sitework: 650000, Utilities: 210000, Permits: 90000, Other: 250000},
				Revenue:          models.Revenue{ProjectedSalePrice: 6500000, RentalIncome: 85000},
				Financing:        models.Financing{LoanAmount: 3000000, InterestRate: 7, Term: 30},
			},
		},
		{
			ID:          "prop-008",
			Address:     "Old Leicester Hwy",
			City:        "Leicester",
			State:       "NC",
			Zip:         "28748",
			County:      "Buncombe",
			MSA:         "Asheville",
			Price:       315000,
			Acres:       22,
			Zoning:      models.ZoningAgricultural,
			Latitude:    35.6540,
			Longitude:   -82.6990,
			Description: "Pasture and hardwoods with a barn site and creek frontage.",
			Features:    []string{"Creek", "Pasture"},
		},
	}
}
