package models

type ManufacturerStat struct {
	Code        string  `json:"code"`
	Name        string  `json:"manufacturer"`
	Count       int     `json:"count"`
	AvgCalories float64 `json:"avg_calories"`
	AvgProtein  float64 `json:"avg_protein"`
	AvgFat      float64 `json:"avg_fat"`
	AvgSodium   float64 `json:"avg_sodium"`
	AvgFiber    float64 `json:"avg_fiber"`
	AvgSugars   float64 `json:"avg_sugars"`
}

type ShelfStat struct {
	Shelf       int     `json:"shelf"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	AvgCalories float64 `json:"avg_calories"`
	AvgProtein  float64 `json:"avg_protein"`
	AvgFat      float64 `json:"avg_fat"`
	AvgSodium   float64 `json:"avg_sodium"`
	AvgFiber    float64 `json:"avg_fiber"`
	AvgSugars   float64 `json:"avg_sugars"`
}

// NutritionMetrics are derived ratios for one cereal.
// SugarToFiber is nil when the cereal has no fiber.
type NutritionMetrics struct {
	SugarToFiber     *float64 `json:"sugar_to_fiber"`
	ProteinToCalorie float64  `json:"protein_to_calorie"`
	HealthScore      int      `json:"health_score"`
}

type HealthItem struct {
	Name         string           `json:"name"`
	Manufacturer string           `json:"manufacturer"`
	Metrics      NutritionMetrics `json:"metrics"`
}

type HealthReport struct {
	Healthiest   []HealthItem `json:"healthiest"`
	LeastHealthy []HealthItem `json:"least_healthy"`
}
