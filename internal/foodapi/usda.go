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

const usdaSearchURL = "https://api.nal.usda.gov/fdc/v1/foods/search"

// USDA FDC food categories mapped to origin flags. Category-based
// classification is far more reliable than keyword substring matching.
var (
	animalMeatCategories = []string{
		"beef products", "pork products", "poultry products",
		"lamb, veal, and game products", "sausages and luncheon meats",
		"finfish and shellfish products",
	}
	dairyEggCategories = []string{"dairy and egg products"}
	plantCategories    = []string{
		"vegetables and vegetable products", "fruits and fruit juices",
		"legumes and legume products", "nut and seed products",
		"cereal grains and pasta", "spices and herbs",
		"baby foods", "baked products",
	}
)

// USDAClient searches USDA FoodData Central.
type USDAClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewUSDAClient builds a client with a 10 s default timeout.
func NewUSDAClient(apiKey string) *USDAClient {
	return &USDAClient{
		APIKey:     apiKey,
		BaseURL:    usdaSearchURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type usdaFoodCategory struct {
	Description string
}

// foodCategory may arrive as a plain string or an object with a
// description field.
func (c *usdaFoodCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Description = s
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Description = obj.Description
	return nil
}

type usdaFood struct {
	FdcID        int64            `json:"fdcId"`
	Description  string           `json:"description"`
	FoodCategory usdaFoodCategory `json:"foodCategory"`
}

type usdaSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

// Fetch searches USDA FDC for an ingredient. High confidence on a clear
// description match, medium on a partial match, low on failure or no
// results.
func (c *USDAClient) Fetch(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if c.APIKey == "" || query == "" {
		return Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: "no_key_or_query"}
	}
	if len(query) > 200 {
		query = query[:200]
	}

	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("query", query)
	params.Set("pageSize", "5")

	resp, err := getWithRetries(ctx, c.HTTPClient, c.BaseURL+"?"+params.Encode())
	if err != nil {
		logger.Get().Warn("usda fdc fetch failed after retries",
			zap.String("query", query), zap.Error(err))
		return Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: "error:" + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Warn("usda fdc non-2xx response",
			zap.String("query", query), zap.Int("status", resp.StatusCode))
		return Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: fmt.Sprintf("status:%d", resp.StatusCode)}
	}

	var data usdaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logger.Get().Warn("usda fdc unparsable response",
			zap.String("query", query), zap.Error(err))
		return Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: "error:bad_json"}
	}
	if len(data.Foods) == 0 {
		return Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: "no_results"}
	}

	best := data.Foods[0]
	confidence := matchConfidence(query, best.Description)
	ing := usdaFoodToIngredient(&best, query)

	logger.Get().Info("usda fdc lookup resolved",
		zap.String("query", query),
		zap.String("confidence", string(confidence)),
		zap.Int64("fdc_id", best.FdcID))
	return Result{
		Ingredient: ing,
		Confidence: confidence,
		Source:     "usda_fdc",
		Summary:    "description=" + truncate(best.Description, 80),
	}
}

// matchConfidence grades how closely a result name matches the query:
// substring either direction or first-token containment is high, anything
// else with a result is medium.
func matchConfidence(query, name string) Confidence {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ConfidenceMedium
	}
	first := q
	if i := strings.IndexByte(q, ' '); i > 0 {
		first = q[:i]
	}
	if strings.Contains(n, q) || strings.Contains(q, n) || strings.Contains(n, first) {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func categoryContainsAny(cat string, cats []string) bool {
	for _, c := range cats {
		if strings.Contains(cat, c) {
			return true
		}
	}
	return false
}

// usdaFoodToIngredient maps one USDA FDC food item onto the Ingredient
// schema. The foodCategory drives origin flags; text keywords fill the
// rest, with plant overrides suppressing false positives.
func usdaFoodToIngredient(food *usdaFood, query string) *models.Ingredient {
	desc := strings.TrimSpace(food.Description)
	category := strings.ToLower(strings.TrimSpace(food.FoodCategory.Description))
	combined := strings.ToLower(desc + " " + category)
	override := isPlantOverride(combined)

	isAnimalMeat := categoryContainsAny(category, animalMeatCategories)
	isDairyEgg := categoryContainsAny(category, dairyEggCategories)
	isPlantCat := categoryContainsAny(category, plantCategories)

	var animalOrigin, plantOrigin, dairySource, eggSource bool
	switch {
	case (isAnimalMeat || isDairyEgg) && !override:
		animalOrigin = true
		plantOrigin = false
	case isPlantCat || override:
		animalOrigin = false
		plantOrigin = true
	default:
		// Ambiguous category ("Snacks", "Meals"): careful text inference.
		animalOrigin = !override && anyWordMatch(combined, animalKeywords)
		plantOrigin = !animalOrigin
	}

	switch {
	case isDairyEgg && !override:
		dairySource = true
	case override:
		dairySource = false
	default:
		dairySource = anyWordMatch(combined, dairyKeywords) && !override
	}

	switch {
	case isDairyEgg && !override:
		// The category name itself contains "egg", so only the
		// description distinguishes eggs from dairy here.
		eggSource = wordMatch(strings.ToLower(desc), "egg")
	case override:
		eggSource = false
	default:
		eggSource = wordMatch(combined, "egg") && !strings.Contains(combined, "eggplant") && !strings.Contains(combined, "egg plant")
	}

	flags := inferTextFlags(combined, override)

	canonical := desc
	if canonical == "" {
		canonical = query
	}

	var aliases []string
	if query != "" && !strings.EqualFold(query, canonical) {
		aliases = []string{query}
	}
	var uncertainty []string
	if desc == "" {
		uncertainty = []string{"usda_fdc_inferred"}
	}

	return &models.Ingredient{
		ID:             "usda_" + slugID(canonical),
		CanonicalName:  canonical,
		Aliases:        aliases,
		AnimalOrigin:   animalOrigin,
		PlantOrigin:    plantOrigin,
		AnimalSpecies:  deriveSpecies(animalOrigin, category, combined),
		EggSource:      eggSource,
		DairySource:    dairySource,
		GlutenSource:   flags.glutenSource,
		SoySource:      flags.soySource,
		SesameSource:   flags.sesameSource,
		NutSource:      flags.nutSource,
		AlcoholContent: flags.alcoholContent,
		RootVegetable:  flags.rootVegetable,
		OnionSource:    flags.onionSource,
		GarlicSource:   flags.garlicSource,
		UncertaintyFlags: uncertainty,
	}
}

// deriveSpecies re-derives animal_species from category and description so
// restriction rules can match on it.
func deriveSpecies(animalOrigin bool, category, combined string) string {
	if !animalOrigin {
		return ""
	}
	switch {
	case strings.Contains(category, "pork") || wordMatch(combined, "pork") || wordMatch(combined, "bacon") || wordMatch(combined, "ham"):
		return "pig"
	case strings.Contains(category, "beef") || wordMatch(combined, "beef") || wordMatch(combined, "veal"):
		return "cow"
	case strings.Contains(category, "poultry") || wordMatch(combined, "chicken") || wordMatch(combined, "turkey") || wordMatch(combined, "duck"):
		return "chicken"
	case strings.Contains(category, "lamb") || wordMatch(combined, "lamb") || wordMatch(combined, "mutton") || wordMatch(combined, "goat"):
		return "lamb"
	case strings.Contains(category, "finfish") || strings.Contains(category, "shellfish"):
		if anyWordMatch(combined, shellfishKeywords) {
			return "shellfish"
		}
		return "fish"
	case anyWordMatch(combined, fishKeywords):
		return "fish"
	}
	return ""
}
