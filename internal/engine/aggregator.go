package engine

import (
	"math"
	"sort"

	"cerealdash/internal/models"
)

type nutrientTotals struct {
	Count    int
	Calories float64
	Protein  float64
	Fat      float64
	Sodium   float64
	Fiber    float64
	Sugars   float64
}

func (t *nutrientTotals) add(r *models.Record) {
	t.Count++
	t.Calories += r.Calories
	t.Protein += r.Protein
	t.Fat += r.Fat
	t.Sodium += r.Sodium
	t.Fiber += r.Fiber
	t.Sugars += r.Sugars
}

func (t *nutrientTotals) avg(v float64) float64 {
	if t.Count == 0 {
		return 0
	}
	return v / float64(t.Count)
}

// HealthScore rewards protein and fiber and penalizes sugar, sodium and fat.
func HealthScore(r *models.Record) int {
	score := 0.0
	score += r.Protein * 2
	score += r.Fiber * 3
	score -= r.Sugars * 1.5
	score -= r.Sodium / 50
	score -= r.Fat * 2
	return int(math.Round(score))
}

func Metrics(r *models.Record) models.NutritionMetrics {
	m := models.NutritionMetrics{HealthScore: HealthScore(r)}
	if r.Fiber > 0 {
		ratio := r.Sugars / r.Fiber
		m.SugarToFiber = &ratio
	}
	if r.Calories > 0 {
		m.ProteinToCalorie = r.Protein / r.Calories
	}
	return m
}

// AveragesByManufacturer groups records by manufacturer code.
// Largest groups come first, ties broken by code.
func AveragesByManufacturer(records []models.Record) []models.ManufacturerStat {
	// 1. Accumulate
	totals := make(map[string]*nutrientTotals)
	for i := range records {
		code := records[i].Manufacturer
		t, ok := totals[code]
		if !ok {
			t = &nutrientTotals{}
			totals[code] = t
		}
		t.add(&records[i])
	}

	// 2. Build Result
	out := make([]models.ManufacturerStat, 0, len(totals))
	for code, t := range totals {
		out = append(out, models.ManufacturerStat{
			Code:        code,
			Name:        models.ManufacturerName(code),
			Count:       t.Count,
			AvgCalories: t.avg(t.Calories),
			AvgProtein:  t.avg(t.Protein),
			AvgFat:      t.avg(t.Fat),
			AvgSodium:   t.avg(t.Sodium),
			AvgFiber:    t.avg(t.Fiber),
			AvgSugars:   t.avg(t.Sugars),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// AveragesByShelf groups records by shelf, ordered bottom to top.
func AveragesByShelf(records []models.Record) []models.ShelfStat {
	totals := make(map[int]*nutrientTotals)
	for i := range records {
		shelf := records[i].Shelf
		t, ok := totals[shelf]
		if !ok {
			t = &nutrientTotals{}
			totals[shelf] = t
		}
		t.add(&records[i])
	}

	out := make([]models.ShelfStat, 0, len(totals))
	for shelf, t := range totals {
		out = append(out, models.ShelfStat{
			Shelf:       shelf,
			Description: models.ShelfDescription(shelf),
			Count:       t.Count,
			AvgCalories: t.avg(t.Calories),
			AvgProtein:  t.avg(t.Protein),
			AvgFat:      t.avg(t.Fat),
			AvgSodium:   t.avg(t.Sodium),
			AvgFiber:    t.avg(t.Fiber),
			AvgSugars:   t.avg(t.Sugars),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shelf < out[j].Shelf })
	return out
}

// Health ranks records by health score and returns both ends of the ranking.
func Health(records []models.Record, limit int) *models.HealthReport {
	items := make([]models.HealthItem, 0, len(records))
	for i := range records {
		items = append(items, models.HealthItem{
			Name:         records[i].Name,
			Manufacturer: records[i].Manufacturer,
			Metrics:      Metrics(&records[i]),
		})
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	best := make([]models.HealthItem, len(items))
	copy(best, items)
	sort.SliceStable(best, func(i, j int) bool { return best[i].Metrics.HealthScore > best[j].Metrics.HealthScore })

	worst := make([]models.HealthItem, len(items))
	copy(worst, items)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].Metrics.HealthScore < worst[j].Metrics.HealthScore })

	return &models.HealthReport{
		Healthiest:   best[:limit],
		LeastHealthy: worst[:limit],
	}
}
