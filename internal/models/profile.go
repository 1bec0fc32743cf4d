package models

import (
	"encoding/json"
	"strings"
)

// UserProfile holds one user's dietary constraints. DietaryPreference is a
// single diet name ("Vegan", "Jain", ...); empty or "No rules" means no
// primary restriction.
type UserProfile struct {
	UserID            string   `json:"user_id,omitempty"`
	DietaryPreference string   `json:"dietary_preference"`
	Allergens         []string `json:"allergens"`
	Lifestyle         []string `json:"lifestyle"`
}

// profileAliases carries the legacy field names older profile files used.
type profileAliases struct {
	UserID            string   `json:"user_id"`
	DietaryPreference string   `json:"dietary_preference"`
	Allergens         []string `json:"allergens"`
	Lifestyle         []string `json:"lifestyle"`

	LegacyRestrictions []string `json:"dietary_restrictions"`
	LegacyAllergies    []string `json:"allergies"`
	LegacyLifestyle    []string `json:"lifestyle_flags"`
}

// UnmarshalJSON accepts both the current field names and the legacy
// aliases (dietary_restrictions, allergies, lifestyle_flags). Current
// fields win when both are present.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	var a profileAliases
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	p.UserID = a.UserID
	p.DietaryPreference = a.DietaryPreference
	p.Allergens = a.Allergens
	p.Lifestyle = a.Lifestyle
	if p.DietaryPreference == "" && len(a.LegacyRestrictions) > 0 {
		p.DietaryPreference = a.LegacyRestrictions[0]
	}
	if len(p.Allergens) == 0 && len(a.LegacyAllergies) > 0 {
		p.Allergens = a.LegacyAllergies
	}
	if len(p.Lifestyle) == 0 && len(a.LegacyLifestyle) > 0 {
		p.Lifestyle = a.LegacyLifestyle
	}
	return nil
}

// IsEmpty reports whether the profile carries no constraints at all.
func (p *UserProfile) IsEmpty() bool {
	return (p.DietaryPreference == "" || p.DietaryPreference == "No rules") &&
		len(p.Allergens) == 0 && len(p.Lifestyle) == 0
}

// ProfileUpdate is a partial update extracted from a chat message.
// Absent fields never overwrite existing profile values.
type ProfileUpdate struct {
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	Allergens         []string `json:"allergens,omitempty"`
	RemoveAllergens   []string `json:"remove_allergens,omitempty"`
	Lifestyle         []string `json:"lifestyle,omitempty"`
}

// IsEmpty reports whether the update carries nothing to apply.
func (u *ProfileUpdate) IsEmpty() bool {
	return u.DietaryPreference == "" && len(u.Allergens) == 0 &&
		len(u.RemoveAllergens) == 0 && len(u.Lifestyle) == 0
}

// ApplyUpdate merges u into p. Merge-only: a field is touched only when
// the update sets it. Allergen and lifestyle additions deduplicate
// case-insensitively against existing entries; RemoveAllergens deletes
// matching entries.
func (p *UserProfile) ApplyUpdate(u ProfileUpdate) {
	if u.DietaryPreference != "" {
		p.DietaryPreference = u.DietaryPreference
	}
	for _, a := range u.Allergens {
		if !containsFold(p.Allergens, a) {
			p.Allergens = append(p.Allergens, a)
		}
	}
	if len(u.RemoveAllergens) > 0 {
		kept := p.Allergens[:0]
		for _, existing := range p.Allergens {
			if !containsFold(u.RemoveAllergens, existing) {
				kept = append(kept, existing)
			}
		}
		p.Allergens = kept
	}
	for _, l := range u.Lifestyle {
		if !containsFold(p.Lifestyle, l) {
			p.Lifestyle = append(p.Lifestyle, l)
		}
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
