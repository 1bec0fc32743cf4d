package normalize

import (
	"reflect"
	"testing"
)

func TestNormalizeKey_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Sugar ", "sugar"},
		{"SUGAR*", "sugar"},
		{"sugar.", "sugar"},
		{"wheat   flour", "wheat flour"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKey_Variants(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"inglass", "isinglass"},
		{"E120", "carmine"},
		{"gelatine", "gelatin"},
		{"Eggs", "egg"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeKey_PluralStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"almonds", "almond"},
		{"onions", "onion"},
		{"mustard seeds", "mustard seed"},
		// Protected suffixes keep the trailing s.
		{"molasses", "molasses"},
		{"hummus", "hummus"},
		{"couscous", "couscous"},
		{"asparagus", "asparagus"},
		{"isinglass", "isinglass"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Water, Sugar; Salt\nYeast")
	want := []string{"water", "sugar", "salt", "yeast"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Errorf("Tokenize('') = %v, want nil", got)
	}
}
