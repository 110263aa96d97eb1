package airquality

// Advisory text tables keyed by AQI category. The strings are fixed per
// band; the insights operation selects a row by the city's category.

var healthAdvisories = map[Category]HealthAdvisory{
	CategoryGood: {
		General:   "Air quality is excellent. No health concerns.",
		Sensitive: "Perfect conditions for everyone, including sensitive groups.",
		Children:  "Ideal for outdoor play and activities.",
		Elderly:   "Safe for all outdoor activities.",
		Asthma:    "No restrictions for asthma patients.",
	},
	CategoryModerate: {
		General:   "Air quality is acceptable. Most people can engage in outdoor activities.",
		Sensitive: "Unusually sensitive people may experience minor symptoms.",
		Children:  "Generally safe, but watch for any unusual symptoms.",
		Elderly:   "Safe for moderate outdoor activities.",
		Asthma:    "Most asthma patients can go about normal activities. Monitor for symptoms.",
	},
	CategorySensitive: {
		General:   "Sensitive groups may experience health effects.",
		Sensitive: "People with heart or lung disease, children, and older adults should reduce prolonged outdoor exertion.",
		Children:  "Active children should take breaks and reduce intense outdoor activities.",
		Elderly:   "Older adults should limit prolonged outdoor exertion.",
		Asthma:    "Asthma patients may experience symptoms. Keep quick-relief inhaler handy.",
	},
	CategoryUnhealthy: {
		General:   "Everyone may begin to experience health effects. Sensitive groups may experience more serious effects.",
		Sensitive: "People with heart or lung disease, children, and older adults should avoid prolonged outdoor exertion.",
		Children:  "Children should limit outdoor play and avoid strenuous activities.",
		Elderly:   "Elderly should stay indoors and avoid exertion.",
		Asthma:    "Asthma patients should avoid outdoor activities. Use medications as prescribed.",
	},
	CategoryVeryUnhealthy: {
		General:   "Health alert: everyone may experience serious health effects.",
		Sensitive: "High risk for sensitive groups. Stay indoors and keep activity levels low.",
		Children:  "Keep children indoors. Avoid all outdoor activities.",
		Elderly:   "Elderly must stay indoors and rest. Avoid any exertion.",
		Asthma:    "Dangerous for asthma patients. Stay indoors, use air purifiers, and monitor symptoms closely.",
	},
	CategoryHazardous: {
		General:   "Health warnings of emergency conditions. Everyone is at risk.",
		Sensitive: "Extremely dangerous for sensitive groups. Remain indoors and minimize activity.",
		Children:  "Keep children indoors with minimal activity. Close all windows.",
		Elderly:   "Hazardous conditions. Elderly should remain indoors and rest.",
		Asthma:    "Life-threatening for asthma patients. Stay indoors, use air purifiers, and seek medical advice if needed.",
	},
}

var activitySets = map[Category]ActivitySet{
	CategoryGood: {
		Walking:     ActivityAdvice{Safe: true, Recommendation: "Excellent for walking at any pace."},
		Running:     ActivityAdvice{Safe: true, Recommendation: "Perfect for long runs and intense workouts."},
		OutdoorPlay: ActivityAdvice{Safe: true, Recommendation: "Great day for kids to play outside."},
		Cycling:     ActivityAdvice{Safe: true, Recommendation: "Ideal conditions for cycling."},
		Overall:     "All outdoor activities are safe.",
	},
	CategoryModerate: {
		Walking:     ActivityAdvice{Safe: true, Recommendation: "Good for walking. No restrictions."},
		Running:     ActivityAdvice{Safe: true, Recommendation: "Safe for running, but sensitive individuals should monitor how they feel."},
		OutdoorPlay: ActivityAdvice{Safe: true, Recommendation: "Children can play outside normally."},
		Cycling:     ActivityAdvice{Safe: true, Recommendation: "Good conditions for cycling."},
		Overall:     "Outdoor activities are fine for most people.",
	},
	CategorySensitive: {
		Walking:     ActivityAdvice{Safe: true, Recommendation: "Light to moderate walking is okay. Sensitive groups should limit duration."},
		Running:     ActivityAdvice{Safe: false, Recommendation: "Avoid intense running. Sensitive groups should skip outdoor workouts."},
		OutdoorPlay: ActivityAdvice{Safe: true, Recommendation: "Limit prolonged or intense outdoor play for children."},
		Cycling:     ActivityAdvice{Safe: true, Recommendation: "Moderate cycling is okay, but avoid intense efforts."},
		Overall:     "Keep outdoor exertion light; sensitive groups should stay cautious.",
	},
	CategoryUnhealthy: {
		Walking:     ActivityAdvice{Safe: true, Recommendation: "Short walks are acceptable, but limit time outdoors."},
		Running:     ActivityAdvice{Safe: false, Recommendation: "Avoid running and intense outdoor workouts entirely."},
		OutdoorPlay: ActivityAdvice{Safe: false, Recommendation: "Children should play indoors. Avoid outdoor activities."},
		Cycling:     ActivityAdvice{Safe: false, Recommendation: "Avoid cycling. Use indoor alternatives."},
		Overall:     "Limit time outdoors and move workouts inside.",
	},
	CategoryVeryUnhealthy: {
		Walking:     ActivityAdvice{Safe: false, Recommendation: "Avoid all outdoor walking. Stay indoors."},
		Running:     ActivityAdvice{Safe: false, Recommendation: "Do not run outdoors. Dangerous conditions."},
		OutdoorPlay: ActivityAdvice{Safe: false, Recommendation: "Absolutely no outdoor play. Children must stay indoors."},
		Cycling:     ActivityAdvice{Safe: false, Recommendation: "Do not cycle outdoors."},
		Overall:     "Stay indoors; all outdoor activity should be avoided.",
	},
	CategoryHazardous: {
		Walking:     ActivityAdvice{Safe: false, Recommendation: "Hazardous. Do not go outdoors."},
		Running:     ActivityAdvice{Safe: false, Recommendation: "Extremely dangerous. Do not go outdoors."},
		OutdoorPlay: ActivityAdvice{Safe: false, Recommendation: "Emergency conditions. Keep everyone indoors."},
		Cycling:     ActivityAdvice{Safe: false, Recommendation: "Hazardous. Do not go outdoors."},
		Overall:     "Emergency conditions. Remain indoors.",
	},
}

// AdvisoryForCategory returns the health advisory text for a category.
func AdvisoryForCategory(c Category) HealthAdvisory {
	if a, ok := healthAdvisories[c]; ok {
		return a
	}
	return healthAdvisories[CategoryModerate]
}

// ActivitiesForCategory returns the activity recommendations for a category.
func ActivitiesForCategory(c Category) ActivitySet {
	if a, ok := activitySets[c]; ok {
		return a
	}
	return activitySets[CategoryModerate]
}

// NewInsight builds the derived advisory for a city from its current AQI.
func NewInsight(city, country string, aqi int, category Category) Insight {
	return Insight{
		City:       city,
		Country:    country,
		AQI:        aqi,
		Category:   category,
		Health:     AdvisoryForCategory(category),
		Activities: ActivitiesForCategory(category),
	}
}
