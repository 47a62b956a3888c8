package engine

import (
	"testing"

	"cerealdash/internal/models"
)

func TestAggregates(t *testing.T) {
	// 1. Setup
	// Row 0: G, shelf 1, 100 cal
	// Row 1: G, shelf 3, 200 cal
	// Row 2: K, shelf 1, 60 cal
	records := []models.Record{
		{Name: "G1", Manufacturer: "G", Shelf: 1, Calories: 100, Protein: 2, Sugars: 10, Fiber: 1},
		{Name: "G2", Manufacturer: "G", Shelf: 3, Calories: 200, Protein: 4, Sugars: 2, Fiber: 5},
		{Name: "K1", Manufacturer: "K", Shelf: 1, Calories: 60, Protein: 3, Sugars: 0, Fiber: 0},
	}

	// 2. Manufacturer averages
	mfr := AveragesByManufacturer(records)
	if len(mfr) != 2 {
		t.Fatalf("Expected 2 manufacturer stats, got %d", len(mfr))
	}
	top := mfr[0]
	if top.Code != "G" || top.Name != "General Mills" {
		t.Errorf("Expected General Mills first, got %+v", top)
	}
	if top.Count != 2 || top.AvgCalories != 150 || top.AvgProtein != 3 {
		t.Errorf("General Mills averages wrong: %+v", top)
	}

	// 3. Shelf averages
	shelves := AveragesByShelf(records)
	if len(shelves) != 2 {
		t.Fatalf("Expected 2 shelf stats, got %d", len(shelves))
	}
	if shelves[0].Shelf != 1 || shelves[0].Count != 2 || shelves[0].AvgCalories != 80 {
		t.Errorf("Shelf 1 wrong: %+v", shelves[0])
	}
	if shelves[1].Description != "Top Shelf (Adult Eye Level)" {
		t.Errorf("Shelf 3 description wrong: %q", shelves[1].Description)
	}
}

func TestHealthScoreAndMetrics(t *testing.T) {
	r := models.Record{Protein: 4, Fiber: 10, Sugars: 6, Sodium: 130, Fat: 1}
	// 8 + 30 - 9 - 2.6 - 2 = 24.4
	if got := HealthScore(&r); got != 24 {
		t.Errorf("Expected 24, got %d", got)
	}

	m := Metrics(&models.Record{Sugars: 12, Fiber: 0, Calories: 0})
	if m.SugarToFiber != nil {
		t.Errorf("Expected nil sugar/fiber ratio without fiber, got %v", *m.SugarToFiber)
	}
	if m.ProteinToCalorie != 0 {
		t.Errorf("Expected 0 protein/calorie without calories, got %v", m.ProteinToCalorie)
	}

	m = Metrics(&models.Record{Sugars: 6, Fiber: 3, Protein: 5, Calories: 100})
	if m.SugarToFiber == nil || *m.SugarToFiber != 2 {
		t.Errorf("Expected sugar/fiber 2, got %v", m.SugarToFiber)
	}
	if m.ProteinToCalorie != 0.05 {
		t.Errorf("Expected protein/calorie 0.05, got %v", m.ProteinToCalorie)
	}
}

func TestHealthRanking(t *testing.T) {
	records := []models.Record{
		{Name: "Sweet", Sugars: 15},
		{Name: "Bran", Fiber: 10},
		{Name: "Plain"},
	}
	report := Health(records, 2)
	if len(report.Healthiest) != 2 || report.Healthiest[0].Name != "Bran" {
		t.Errorf("Expected Bran healthiest, got %+v", report.Healthiest)
	}
	if len(report.LeastHealthy) != 2 || report.LeastHealthy[0].Name != "Sweet" {
		t.Errorf("Expected Sweet least healthy, got %+v", report.LeastHealthy)
	}

	if all := Health(records, 0); len(all.Healthiest) != 3 {
		t.Errorf("limit 0 should return everything, got %d", len(all.Healthiest))
	}
	if empty := Health(nil, 5); len(empty.Healthiest) != 0 {
		t.Errorf("Expected empty report, got %+v", empty)
	}
}
