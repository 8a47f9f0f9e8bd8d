package catalog

// Catalog data mirrors the published price list: detailing, paint
// correction, ceramic coating and window tinting per vehicle type, with
// headlight restoration and engine bay wash doubling as add-ons.

var servicesData = map[string][]Entry{
	"sedan": {
		{
			ID:          "sedan-detail-interior",
			Category:    "Detailing",
			Title:       "Interior Only",
			Description: "Factory reset interior: vacuum, garbage removal, mats restored & conditioned, carpets & seats steam cleaned + shampooed, plastics conditioned, streak-free glass.",
			Price:       150,
			Duration:    "2–3 hrs",
			Features:    []string{"Vacuum & garbage removal", "Mats restored & conditioned", "Carpets & seats steam cleaned + shampooed", "Plastics & upholstery conditioned", "Streak-free glass"},
		},
		{
			ID:          "sedan-detail-exterior",
			Category:    "Detailing",
			Title:       "Exterior Only",
			Description: "Deep clean exterior: rims & tires deep clean, pre-treatment, foam wash, hand dry, paint protection, tire shine, rim polish, streak-free windows.",
			Price:       150,
			Duration:    "1–2 hrs",
			Features:    []string{"Rims & tires deep cleaned", "Pre-treatment & foam wash", "Hand dry + paint protection", "Tire shine & rim polish", "Streak-free windows"},
		},
		{
			ID:          "sedan-detail-full",
			Category:    "Detailing",
			Title:       "Interior + Exterior",
			Description: "Complete detail inside & out.",
			Price:       200,
			Duration:    "3–4 hrs",
			Popular:     true,
			Features:    []string{"Interior full detail", "Exterior full detail", "Paint sealant / ceramic spray"},
		},
		{
			ID:          "sedan-engine",
			Category:    "Detailing",
			Title:       "Engine Bay Wash",
			Description: "Degrease & detail engine bay (safe for electronics).",
			Price:       80,
			Duration:    "30-40 mins",
			Features:    []string{"Engine degreased", "Plastics dressed", "Safe for electronics"},
		},
		{
			ID:          "sedan-pc-1",
			Category:    "Paint Correction",
			Title:       "Stage 1 Paint Correction",
			Description: "Removes ~50–60% of swirls with machine polish.",
			Price:       399,
			Duration:    "4–5 hrs",
			Features:    []string{"50–60% swirl removal", "Restores gloss"},
		},
		{
			ID:          "sedan-pc-2",
			Category:    "Paint Correction",
			Title:       "Stage 2 Paint Correction",
			Description: "Removes ~60–80% of swirls (Stage 1 + extra correction).",
			Price:       549,
			Duration:    "5–6 hrs",
			Features:    []string{"60–80% swirl removal", "Higher gloss finish"},
		},
		{
			ID:          "sedan-pc-3",
			Category:    "Paint Correction",
			Title:       "Stage 3 Paint Correction",
			Description: "Removes ~80–99% of swirls for near-showroom finish.",
			Price:       699,
			Duration:    "6–8 hrs",
			Features:    []string{"80–99% swirl removal", "Showroom finish"},
		},
		{
			ID:          "sedan-ceramic",
			Category:    "Ceramic Coating",
			Title:       "Ceramic Coating",
			Description: "Durable ceramic protection, with or without paint correction.",
			Price:       800,
			Duration:    "5–6 hrs",
			Features:    []string{"Long-lasting protection", "Hydrophobic effect", "Enhanced gloss"},
		},
		{
			ID:          "sedan-tint",
			Category:    "Window Tinting",
			Title:       "Window Tinting",
			Description: "Choose tint percentage for sedan windows.",
			Price:       220,
			Duration:    "2–3 hrs",
			Features:    []string{"Custom shades", "UV protection"},
		},
	},
	"suv": {
		{
			ID:          "suv-detail-interior",
			Category:    "Detailing",
			Title:       "Interior Only",
			Description: "Full interior reset for SUVs: vacuum, steam clean, shampoo, conditioning.",
			Price:       180,
			Duration:    "2–3 hrs",
			Features:    []string{"Vacuum & garbage removal", "Carpets & seats steam cleaned + shampooed", "Plastics & upholstery conditioned"},
		},
		{
			ID:          "suv-detail-exterior",
			Category:    "Detailing",
			Title:       "Exterior Only",
			Description: "Deep clean exterior with paint protection.",
			Price:       180,
			Duration:    "1–2 hrs",
			Features:    []string{"Rims & tires deep cleaned", "Foam wash + hand dry", "Tire shine & rim polish"},
		},
		{
			ID:          "suv-detail-full",
			Category:    "Detailing",
			Title:       "Interior + Exterior",
			Description: "Complete detail inside & out.",
			Price:       240,
			Duration:    "3–5 hrs",
			Popular:     true,
			Features:    []string{"Interior full detail", "Exterior full detail", "Paint sealant / ceramic spray"},
		},
		{
			ID:          "suv-engine",
			Category:    "Detailing",
			Title:       "Engine Bay Wash",
			Description: "Degrease & detail engine bay (safe for electronics).",
			Price:       90,
			Duration:    "30-40 mins",
			Features:    []string{"Engine degreased", "Plastics dressed"},
		},
		{
			ID:          "suv-pc-1",
			Category:    "Paint Correction",
			Title:       "Stage 1 Paint Correction",
			Description: "Removes ~50–60% of swirls.",
			Price:       449,
			Duration:    "4–6 hrs",
			Features:    []string{"50–60% swirl removal", "Restores gloss"},
		},
		{
			ID:          "suv-pc-2",
			Category:    "Paint Correction",
			Title:       "Stage 2 Paint Correction",
			Description: "Removes ~60–80% of swirls.",
			Price:       599,
			Duration:    "5–7 hrs",
			Features:    []string{"60–80% swirl removal", "Higher gloss finish"},
		},
		{
			ID:          "suv-pc-3",
			Category:    "Paint Correction",
			Title:       "Stage 3 Paint Correction",
			Description: "Removes ~80–99% of swirls.",
			Price:       749,
			Duration:    "7–9 hrs",
			Features:    []string{"80–99% swirl removal", "Showroom finish"},
		},
		{
			ID:          "suv-ceramic",
			Category:    "Ceramic Coating",
			Title:       "Ceramic Coating",
			Description: "Durable ceramic protection for larger panels.",
			Price:       900,
			Duration:    "6–7 hrs",
			Features:    []string{"Long-lasting protection", "Hydrophobic effect"},
		},
		{
			ID:          "suv-tint",
			Category:    "Window Tinting",
			Title:       "Window Tinting",
			Description: "Choose tint percentage for SUV windows.",
			Price:       260,
			Duration:    "2–3 hrs",
			Features:    []string{"Custom shades", "UV protection"},
		},
	},
	"truck": {
		{
			ID:          "truck-detail-interior",
			Category:    "Detailing",
			Title:       "Interior Only",
			Description: "Full interior reset for trucks.",
			Price:       200,
			Duration:    "2–3 hrs",
			Features:    []string{"Vacuum & garbage removal", "Carpets & seats steam cleaned + shampooed"},
		},
		{
			ID:          "truck-detail-exterior",
			Category:    "Detailing",
			Title:       "Exterior Only",
			Description: "Deep clean exterior, bed included.",
			Price:       200,
			Duration:    "2–3 hrs",
			Features:    []string{"Rims & tires deep cleaned", "Foam wash + hand dry", "Bed washed out"},
		},
		{
			ID:          "truck-detail-full",
			Category:    "Detailing",
			Title:       "Interior + Exterior",
			Description: "Complete detail inside & out.",
			Price:       280,
			Duration:    "4–5 hrs",
			Popular:     true,
			Features:    []string{"Interior full detail", "Exterior full detail"},
		},
		{
			ID:          "truck-engine",
			Category:    "Detailing",
			Title:       "Engine Bay Wash",
			Description: "Degrease & detail engine bay.",
			Price:       100,
			Duration:    "40-50 mins",
			Features:    []string{"Engine degreased", "Plastics dressed"},
		},
		{
			ID:          "truck-pc-1",
			Category:    "Paint Correction",
			Title:       "Stage 1 Paint Correction",
			Description: "Removes ~50–60% of swirls.",
			Price:       499,
			Duration:    "5–6 hrs",
			Features:    []string{"50–60% swirl removal"},
		},
		{
			ID:          "truck-pc-2",
			Category:    "Paint Correction",
			Title:       "Stage 2 Paint Correction",
			Description: "Removes ~60–80% of swirls.",
			Price:       649,
			Duration:    "6–8 hrs",
			Features:    []string{"60–80% swirl removal"},
		},
		{
			ID:          "truck-pc-3",
			Category:    "Paint Correction",
			Title:       "Stage 3 Paint Correction",
			Description: "Removes ~80–99% of swirls.",
			Price:       799,
			Duration:    "8–10 hrs",
			Features:    []string{"80–99% swirl removal"},
		},
		{
			ID:          "truck-ceramic",
			Category:    "Ceramic Coating",
			Title:       "Ceramic Coating",
			Description: "Durable ceramic protection.",
			Price:       950,
			Duration:    "6–8 hrs",
			Features:    []string{"Long-lasting protection", "Hydrophobic effect"},
		},
		{
			ID:          "truck-tint",
			Category:    "Window Tinting",
			Title:       "Window Tinting",
			Description: "Choose tint percentage for truck windows.",
			Price:       240,
			Duration:    "2–3 hrs",
			Features:    []string{"Custom shades", "UV protection"},
		},
	},
	"coupe": {
		{
			ID:          "coupe-detail-interior",
			Category:    "Detailing",
			Title:       "Interior Only",
			Description: "Full interior reset for coupes.",
			Price:       140,
			Duration:    "1–2 hrs",
			Features:    []string{"Vacuum & garbage removal", "Carpets & seats steam cleaned + shampooed"},
		},
		{
			ID:          "coupe-detail-exterior",
			Category:    "Detailing",
			Title:       "Exterior Only",
			Description: "Deep clean exterior with paint protection.",
			Price:       140,
			Duration:    "1–2 hrs",
			Features:    []string{"Rims & tires deep cleaned", "Foam wash + hand dry"},
		},
		{
			ID:          "coupe-detail-full",
			Category:    "Detailing",
			Title:       "Interior + Exterior",
			Description: "Complete detail inside & out.",
			Price:       190,
			Duration:    "3–4 hrs",
			Popular:     true,
			Features:    []string{"Interior full detail", "Exterior full detail"},
		},
		{
			ID:          "coupe-engine",
			Category:    "Detailing",
			Title:       "Engine Bay Wash",
			Description: "Degrease & detail engine bay.",
			Price:       75,
			Duration:    "30-40 mins",
			Features:    []string{"Engine degreased", "Plastics dressed"},
		},
		{
			ID:          "coupe-pc-1",
			Category:    "Paint Correction",
			Title:       "Stage 1 Paint Correction",
			Description: "Removes ~50–60% of swirls.",
			Price:       380,
			Duration:    "4–5 hrs",
			Features:    []string{"50–60% swirl removal"},
		},
		{
			ID:          "coupe-pc-2",
			Category:    "Paint Correction",
			Title:       "Stage 2 Paint Correction",
			Description: "Removes ~60–80% of swirls.",
			Price:       530,
			Duration:    "5–6 hrs",
			Features:    []string{"60–80% swirl removal"},
		},
		{
			ID:          "coupe-pc-3",
			Category:    "Paint Correction",
			Title:       "Stage 3 Paint Correction",
			Description: "Removes ~80–99% of swirls.",
			Price:       680,
			Duration:    "6–8 hrs",
			Features:    []string{"80–99% swirl removal"},
		},
		{
			ID:          "coupe-ceramic",
			Category:    "Ceramic Coating",
			Title:       "Ceramic Coating",
			Description: "Premium ceramic coating, with or without correction.",
			Price:       750,
			Duration:    "5–6 hrs",
			Features:    []string{"Hydrophobic", "Showroom gloss"},
		},
		{
			ID:          "coupe-tint",
			Category:    "Window Tinting",
			Title:       "Window Tinting",
			Description: "Choose tint percentage for coupe windows.",
			Price:       200,
			Duration:    "2–3 hrs",
			Features:    []string{"Custom shades", "UV protection"},
		},
	},
}

var addonsData = map[string][]Entry{
	"sedan": {
		{ID: "sedan-addon-headlight", Title: "Headlight Restoration", Price: 79.99, Duration: "45 mins"},
		{ID: "sedan-addon-engine", Title: "Engine Bay Wash", Price: 80, Duration: "30-40 mins"},
	},
	"suv": {
		{ID: "suv-addon-headlight", Title: "Headlight Restoration", Price: 79.99, Duration: "45 mins"},
		{ID: "suv-addon-engine", Title: "Engine Bay Wash", Price: 90, Duration: "30-40 mins"},
	},
	"truck": {
		{ID: "truck-addon-headlight", Title: "Headlight Restoration", Price: 79.99, Duration: "45 mins"},
		{ID: "truck-addon-engine", Title: "Engine Bay Wash", Price: 100, Duration: "40-50 mins"},
	},
	"coupe": {
		{ID: "coupe-addon-headlight", Title: "Headlight Restoration", Price: 70, Duration: "45 mins"},
		{ID: "coupe-addon-engine", Title: "Engine Bay Wash", Price: 75, Duration: "30-40 mins"},
	},
}
