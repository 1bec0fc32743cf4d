package normalize

import (
	"reflect"
	"testing"
)

func TestPreprocessIngredients_NoTrace(t *testing.T) {
	got := PreprocessIngredients("Water, Sugar, Salt")
	want := []Atom{
		{Name: "water"},
		{Name: "sugar"},
		{Name: "salt"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessIngredients = %v, want %v", got, want)
	}
}

func TestPreprocessIngredients_TraceMarker(t *testing.T) {
	got := PreprocessIngredients("Water, Sugar, Contains 2% or less of: xyz_compound")
	want := []Atom{
		{Name: "water"},
		{Name: "sugar"},
		{Name: "xyz_compound", Trace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessIngredients = %v, want %v", got, want)
	}
}

func TestPreprocessIngredients_MayContainTraces(t *testing.T) {
	got := PreprocessIngredients("Sugar, Water. May contain traces of milk.")
	want := []Atom{
		{Name: "sugar"},
		{Name: "water"},
		{Name: "milk", Trace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessIngredients = %v, want %v", got, want)
	}
}

func TestPreprocessIngredients_TraceInheritedByLaterAtoms(t *testing.T) {
	got := PreprocessIngredients("Water, Less than 2% of: Salt, Carmine")
	want := []Atom{
		{Name: "water"},
		{Name: "salt", Trace: true},
		{Name: "carmine", Trace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessIngredients = %v, want %v", got, want)
	}
}

func TestPreprocessIngredients_DedupeKeepsTrace(t *testing.T) {
	got := PreprocessIngredients("Salt, contains 2% or less of: salt")
	want := []Atom{{Name: "salt", Trace: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessIngredients = %v, want %v", got, want)
	}
}

func TestTraceKeys(t *testing.T) {
	atoms := []Atom{
		{Name: "water"},
		{Name: "carmine", Trace: true},
	}
	keys := TraceKeys(atoms)
	if _, ok := keys["carmine"]; !ok {
		t.Error("expected carmine in trace keys")
	}
	if _, ok := keys["water"]; ok {
		t.Error("water should not be a trace key")
	}
}

func TestPreprocessToStrings(t *testing.T) {
	got := PreprocessToStrings("Water, Sugar")
	want := []string{"water", "sugar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PreprocessToStrings = %v, want %v", got, want)
	}
}
