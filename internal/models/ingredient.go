package models

// Ingredient is the canonical, structured representation of one food
// ingredient. All fields are flags or ids; there is no free-text metadata,
// so restriction rules can be evaluated deterministically.
type Ingredient struct {
	ID            string   `json:"id"`
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty"`

	// Id references to related ingredients. The engine never traverses
	// these for matching; flags carry all evaluation-relevant facts.
	DerivedFrom []string `json:"derived_from,omitempty"`
	Contains    []string `json:"contains,omitempty"`
	MayContain  []string `json:"may_contain,omitempty"`

	// Origin flags. AnimalOrigin and PlantOrigin may both be set for
	// intermediate products (e.g. soy lecithin); rules treat them
	// independently.
	AnimalOrigin  bool `json:"animal_origin"`
	PlantOrigin   bool `json:"plant_origin"`
	Synthetic     bool `json:"synthetic"`
	Fungal        bool `json:"fungal"`
	InsectDerived bool `json:"insect_derived"`

	// AnimalSpecies is set when AnimalOrigin: cow, pig, chicken, lamb,
	// goat, fish, shellfish, ...
	AnimalSpecies string `json:"animal_species,omitempty"`

	// Allergen / dietary source flags.
	EggSource    bool   `json:"egg_source"`
	DairySource  bool   `json:"dairy_source"`
	GlutenSource bool   `json:"gluten_source"`
	SoySource    bool   `json:"soy_source"`
	SesameSource bool   `json:"sesame_source"`
	NutSource    string `json:"nut_source,omitempty"` // "peanut" | "tree_nut" | "coconut" | ""

	// AlcoholContent in [0,1]; nil means no alcohol information.
	AlcoholContent *float64 `json:"alcohol_content,omitempty"`

	// Jain / lifestyle flags.
	RootVegetable bool `json:"root_vegetable"`
	OnionSource   bool `json:"onion_source"`
	GarlicSource  bool `json:"garlic_source"`
	Fermented     bool `json:"fermented"`

	// UncertaintyFlags are reasons downstream confidence may degrade
	// (e.g. "natural_flavor", "mono_diglycerides", "usda_fdc_inferred").
	// They are not errors.
	UncertaintyFlags []string `json:"uncertainty_flags,omitempty"`
	Regions          []string `json:"regions,omitempty"`
}

// MeatFishDerived reports whether the ingredient is animal-derived flesh
// or a byproduct of it (meat, fish, shellfish, gelatin). Dairy, egg, and
// insect-derived items (honey, carmine, shellac) are excluded; those are
// matched by their own flags.
func (i *Ingredient) MeatFishDerived() bool {
	return i.AnimalOrigin && !i.DairySource && !i.EggSource && !i.InsectDerived
}

// AllKeys returns the canonical name plus every alias, the strings an
// ontology index should register for this ingredient.
func (i *Ingredient) AllKeys() []string {
	keys := make([]string, 0, len(i.Aliases)+1)
	keys = append(keys, i.CanonicalName)
	keys = append(keys, i.Aliases...)
	return keys
}
