package catalog

import "github.com/Makepad-fr/ccauto/internal/model"

var builtinReviews = []model.Review{
	{
		Text:   "They explained everything clearly and finished faster than expected. The best auto service experience I've had locally!",
		Author: "Michael Johnson",
		Rating: model.Rating(5),
	},
	{
		Text:   "Owner Corne diagnosed my suspension issue accurately and provided excellent, honest service. Will definitely return for all my repairs.",
		Author: "Sarah Williams",
		Rating: model.Rating(5),
	},
	{
		Text:   "I was worried about the cost of my clutch replacement, but CC Auto gave me a fair quote and stuck to it. No hidden surprises!",
		Author: "David Brown",
		Rating: model.Rating(5),
	},
	{
		Text:   "Professional, friendly, and efficient. My car runs smoother than ever after the major service. Highly recommended!",
		Author: "Emily Davis",
		Rating: model.Rating(5),
	},
}

var builtinServices = []model.Service{
	{
		Title:       "Major Service",
		Description: "Comprehensive vehicle check including spark plugs, filters, oil, and a 62-point safety check.",
		Icon:        "tool",
	},
	{
		Title:       "Minor Service",
		Description: "Essential maintenance package with oil change, fluid top-ups, and a vital safety inspection.",
		Icon:        "package",
	},
	{
		Title:       "Suspensions",
		Description: "Complete suspension system diagnosis, repair, and alignment for road-gripping control.",
		Icon:        "truck",
	},
	{
		Title:       "Brake & Clutch",
		Description: "Expert service for your vehicle's critical stopping and transmission systems. Safety first.",
		Icon:        "shield",
	},
}
