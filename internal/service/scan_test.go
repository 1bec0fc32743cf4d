package service

import (
	"context"
	"strings"
	"testing"
)

func TestScanLabelScorecard(t *testing.T) {
	svc := NewScanService(newTestEngine(t))

	result, err := svc.ScanLabel(context.Background(), "Water, Sugar, Gelatin")
	if err != nil {
		t.Fatalf("ScanLabel: %v", err)
	}
	if len(result.Ingredients) != 3 {
		t.Fatalf("ingredients = %v", result.Ingredients)
	}
	if got := result.DietaryScorecard["Vegan"]; got.Status != "red" {
		t.Errorf("Vegan = %+v, want red", got)
	}
	if got := result.DietaryScorecard["Halal"]; got.Status != "red" {
		t.Errorf("Halal = %+v, want red", got)
	}
	if got := result.DietaryScorecard["Jain"]; got.Status != "green" {
		t.Errorf("Jain = %+v, want green", got)
	}
	if result.ConfidenceScores["overall"] <= 0 {
		t.Errorf("overall confidence = %v", result.ConfidenceScores)
	}
	for _, tag := range result.DietTags {
		if tag == "Vegan" || tag == "Halal" {
			t.Errorf("diet tags include failed diet: %v", result.DietTags)
		}
	}
}

func TestScanLabelAllClear(t *testing.T) {
	svc := NewScanService(newTestEngine(t))

	result, err := svc.ScanLabel(context.Background(), "Water, Sugar")
	if err != nil {
		t.Fatalf("ScanLabel: %v", err)
	}
	for label, entry := range result.DietaryScorecard {
		if entry.Status != "green" {
			t.Errorf("%s = %+v, want green", label, entry)
		}
	}
}

func TestScanLabelTraceSection(t *testing.T) {
	svc := NewScanService(newTestEngine(t))

	result, err := svc.ScanLabel(context.Background(), "Sugar, Water. May contain traces of milk.")
	if err != nil {
		t.Fatalf("ScanLabel: %v", err)
	}
	found := false
	for _, ing := range result.Ingredients {
		if strings.EqualFold(ing, "milk") {
			found = true
		}
	}
	if !found {
		t.Fatalf("trace ingredient missing: %v", result.Ingredients)
	}
	if got := result.DietaryScorecard["Vegan"]; got.Status != "red" {
		t.Errorf("Vegan = %+v, want red for trace dairy", got)
	}
}

func TestScanLabelEmpty(t *testing.T) {
	svc := NewScanService(newTestEngine(t))
	if _, err := svc.ScanLabel(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty label")
	}
}

func TestVerifyMenuItem(t *testing.T) {
	svc := NewScanService(newTestEngine(t))

	result, err := svc.VerifyMenuItem(context.Background(), "Fruit Jelly",
		[]string{"gelatin", "sugar"}, []string{"Halal", "Jain"})
	if err != nil {
		t.Fatalf("VerifyMenuItem: %v", err)
	}
	if result.IsConsistent {
		t.Error("gelatin item should not verify as halal")
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0], "Halal") {
		t.Errorf("issues = %v", result.Issues)
	}
	if len(result.ValidDietTypes) != 1 || result.ValidDietTypes[0] != "Jain" {
		t.Errorf("valid diets = %v", result.ValidDietTypes)
	}
	if result.Scorecard["Halal"].Status != "red" {
		t.Errorf("Halal = %+v", result.Scorecard["Halal"])
	}
}

func TestVerifyMenuItemConsistent(t *testing.T) {
	svc := NewScanService(newTestEngine(t))

	result, err := svc.VerifyMenuItem(context.Background(), "Sugar Water",
		[]string{"sugar", "water"}, []string{"Vegan"})
	if err != nil {
		t.Fatalf("VerifyMenuItem: %v", err)
	}
	if !result.IsConsistent {
		t.Errorf("result = %+v, want consistent", result)
	}
	if len(result.Issues) != 0 {
		t.Errorf("issues = %v", result.Issues)
	}
}

func TestVerifyMenuItemNoIngredients(t *testing.T) {
	svc := NewScanService(newTestEngine(t))
	if _, err := svc.VerifyMenuItem(context.Background(), "Mystery Dish", nil, []string{"Vegan"}); err == nil {
		t.Fatal("expected error for empty ingredients")
	}
}
