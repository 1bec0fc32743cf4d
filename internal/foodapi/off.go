package foodapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/models"
)

const offSearchURL = "https://world.openfoodfacts.org/cgi/search.pl"

// OFFClient searches Open Food Facts (no key required).
type OFFClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewOFFClient builds a client with a 10 s default timeout.
func NewOFFClient() *OFFClient {
	return &OFFClient{
		BaseURL:    offSearchURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type offProduct struct {
	ProductName              string   `json:"product_name"`
	ProductNameEn            string   `json:"product_name_en"`
	IngredientsText          string   `json:"ingredients_text"`
	IngredientsTextEn        string   `json:"ingredients_text_en"`
	Allergens                string   `json:"allergens"`
	AllergensFromIngredients string   `json:"allergens_from_ingredients"`
	LabelsTags               []string `json:"labels_tags"`
	AllergensTags            []string `json:"allergens_tags"`
	CategoriesTags           []string `json:"categories_tags"`
}

func (p *offProduct) name() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.ProductNameEn
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// Fetch searches Open Food Facts. High confidence when the product name
// closely matches the query, medium otherwise, low on failure.
func (c *OFFClient) Fetch(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: "empty_query"}
	}
	if len(query) > 200 {
		query = query[:200]
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", "5")

	resp, err := getWithRetries(ctx, c.HTTPClient, c.BaseURL+"?"+params.Encode())
	if err != nil {
		logger.Get().Warn("open food facts fetch failed after retries",
			zap.String("query", query), zap.Error(err))
		return Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: "error:" + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: fmt.Sprintf("status:%d", resp.StatusCode)}
	}

	var data offSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: "error:bad_json"}
	}
	if len(data.Products) == 0 {
		return Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: "no_results"}
	}

	best := data.Products[0]
	confidence := ConfidenceMedium
	if name := strings.ToLower(strings.TrimSpace(best.name())); name != "" {
		confidence = matchConfidence(query, name)
	}

	ing := offProductToIngredient(&best, query)
	logger.Get().Info("open food facts lookup resolved",
		zap.String("query", query),
		zap.String("confidence", string(confidence)))
	return Result{
		Ingredient: ing,
		Confidence: confidence,
		Source:     "open_food_facts",
		Summary:    "product_name=" + truncate(best.name(), 80),
	}
}

func tagsContain(tags []string, substr string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), substr) {
			return true
		}
	}
	return false
}

// offProductToIngredient maps one OFF product onto the Ingredient schema.
// Structured tags (labels_tags, allergens_tags) are the primary signal;
// text inference with plant-override protection is secondary.
func offProductToIngredient(p *offProduct, query string) *models.Ingredient {
	name := strings.TrimSpace(p.name())
	if name == "" {
		name = query
	}
	ingredientsText := p.IngredientsText
	if ingredientsText == "" {
		ingredientsText = p.IngredientsTextEn
	}
	allergens := p.Allergens
	if allergens == "" {
		allergens = p.AllergensFromIngredients
	}
	combined := strings.ToLower(name + " " + ingredientsText + " " + strings.ToLower(allergens))
	override := isPlantOverride(combined)

	isVegan := tagsContain(p.LabelsTags, "vegan")
	isVegetarian := tagsContain(p.LabelsTags, "vegetarian")
	hasMilkAllergen := tagsContain(p.AllergensTags, "milk")
	hasEggAllergen := tagsContain(p.AllergensTags, "egg")
	hasGlutenAllergen := tagsContain(p.AllergensTags, "gluten")
	hasSoyAllergen := tagsContain(p.AllergensTags, "soy") || tagsContain(p.AllergensTags, "soja")

	var animalOrigin, plantOrigin, dairySource, eggSource bool
	switch {
	case isVegan || override:
		plantOrigin = true
	case isVegetarian:
		// Vegetarian rules out meat but not dairy or eggs.
		animalOrigin = anyWordMatch(combined, []string{"meat", "beef", "pork", "chicken", "fish", "gelatin", "lard", "tallow"})
		plantOrigin = !animalOrigin
		dairySource = hasMilkAllergen || (anyWordMatch(combined, dairyKeywords) && !override)
		eggSource = hasEggAllergen || (wordMatch(combined, "egg") && !strings.Contains(combined, "eggplant"))
	default:
		animalOrigin = !override && anyWordMatch(combined, animalKeywords)
		plantOrigin = !animalOrigin
		dairySource = hasMilkAllergen || (anyWordMatch(combined, dairyKeywords) && !override)
		eggSource = hasEggAllergen || (wordMatch(combined, "egg") && !strings.Contains(combined, "eggplant") && !override)
	}

	flags := inferTextFlags(combined, override)
	if hasGlutenAllergen {
		flags.glutenSource = true
	}
	if hasSoyAllergen {
		flags.soySource = true
	}
	if flags.nutSource == "" {
		switch {
		case tagsContain(p.AllergensTags, "peanut"):
			flags.nutSource = "peanut"
		case tagsContain(p.AllergensTags, "nut"):
			flags.nutSource = "tree_nut"
		}
	}
	if !flags.sesameSource && tagsContain(p.AllergensTags, "sesame") {
		flags.sesameSource = true
	}

	var aliases []string
	if query != "" && !strings.EqualFold(query, name) {
		aliases = []string{query}
	}

	return &models.Ingredient{
		ID:               "off_" + slugID(name),
		CanonicalName:    name,
		Aliases:          aliases,
		AnimalOrigin:     animalOrigin,
		PlantOrigin:      plantOrigin,
		AnimalSpecies:    deriveSpecies(animalOrigin, "", combined),
		EggSource:        eggSource,
		DairySource:      dairySource,
		GlutenSource:     flags.glutenSource,
		SoySource:        flags.soySource,
		SesameSource:     flags.sesameSource,
		NutSource:        flags.nutSource,
		AlcoholContent:   flags.alcoholContent,
		RootVegetable:    flags.rootVegetable,
		OnionSource:      flags.onionSource,
		GarlicSource:     flags.garlicSource,
		UncertaintyFlags: []string{"open_food_facts_inferred"},
	}
}
