package services

import (
	"fmt"
	"strings"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

const maxNotesLength = 500

// CustomizationRequest selects the options of one order line. Sauces are given by key.
type CustomizationRequest struct {
	WingSauces []string `json:"wing_sauces"`
	FrySauces  []string `json:"fry_sauces"`
	Choice     *string  `json:"choice"`
	Flavors    []string `json:"flavors"`
	Notes      string   `json:"notes"`
}

// defaultCustomization is what a freshly added line starts with: no sauces, no choice,
// one empty flavor slot per allowed choice.
func defaultCustomization(item models.MenuItem) models.Customization {
	return models.Customization{
		WingSauces: []models.Sauce{},
		FrySauces:  []models.Sauce{},
		Flavors:    make([]string, item.MaxChoices),
	}
}

// buildCustomization validates req against the item and the catalog.
// Nothing is silently dropped: any invalid selection fails the whole request.
func buildCustomization(item models.MenuItem, catalog models.CustomizationCatalog, req CustomizationRequest) (models.Customization, error) {
	out := defaultCustomization(item)

	wing, err := resolveSauces("wing", item.HasWings, catalog.WingSauces, req.WingSauces, item.Name)
	if err != nil {
		return out, err
	}
	fry, err := resolveSauces("fry", item.HasFries, catalog.FrySauces, req.FrySauces, item.Name)
	if err != nil {
		return out, err
	}
	out.WingSauces, out.FrySauces = wing, fry

	if req.Choice != nil && strings.TrimSpace(*req.Choice) != "" {
		choice := strings.TrimSpace(*req.Choice)
		if item.SubmenuKey == nil {
			return out, fmt.Errorf("%w: '%s' does not take a choice", ErrValidation, item.Name)
		}
		options, ok := catalog.SubmenuChoices[*item.SubmenuKey]
		if !ok {
			return out, fmt.Errorf("%w: unknown submenu '%s' for '%s'", ErrValidation, *item.SubmenuKey, item.Name)
		}
		if !containsString(options, choice) {
			return out, fmt.Errorf("%w: '%s' is not a valid choice for '%s' (options: %s)",
				ErrValidation, choice, item.Name, strings.Join(options, ", "))
		}
		out.Choice = &choice
	}

	if len(req.Flavors) > item.MaxChoices {
		return out, fmt.Errorf("%w: '%s' accepts at most %d flavors, got %d", ErrValidation, item.Name, item.MaxChoices, len(req.Flavors))
	}
	seen := make(map[string]int, len(req.Flavors))
	for i, raw := range req.Flavors {
		flavor := strings.TrimSpace(raw)
		if flavor == "" {
			continue
		}
		if !containsString(catalog.Flavors, flavor) {
			return out, fmt.Errorf("%w: unknown flavor '%s'", ErrValidation, flavor)
		}
		if prev, dup := seen[flavor]; dup {
			return out, fmt.Errorf("%w: flavor '%s' selected in slots %d and %d", ErrValidation, flavor, prev+1, i+1)
		}
		seen[flavor] = i
		out.Flavors[i] = flavor
	}

	notes := strings.TrimSpace(req.Notes)
	if len(notes) > maxNotesLength {
		return out, fmt.Errorf("%w: notes cannot exceed %d characters", ErrValidation, maxNotesLength)
	}
	out.Notes = notes
	return out, nil
}

func resolveSauces(kind string, allowed bool, options []models.Sauce, keys []string, itemName string) ([]models.Sauce, error) {
	out := []models.Sauce{}
	if len(keys) == 0 {
		return out, nil
	}
	if !allowed {
		return nil, fmt.Errorf("%w: '%s' does not take %s sauces", ErrValidation, itemName, kind)
	}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		sauce, ok := findSauce(options, key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s sauce '%s'", ErrValidation, kind, key)
		}
		if seen[sauce.Key] {
			return nil, fmt.Errorf("%w: %s sauce '%s' selected twice", ErrValidation, kind, sauce.Key)
		}
		seen[sauce.Key] = true
		out = append(out, sauce)
	}
	return out, nil
}

// setFlavorSlot writes one slot. An empty flavor clears the slot; the same flavor may not sit in two slots.
func setFlavorSlot(item models.OrderItem, catalog models.CustomizationCatalog, slot int, flavor string) (models.Customization, error) {
	c := item.Customization.Clone()
	if slot < 0 || slot >= item.MaxChoices {
		return c, fmt.Errorf("%w: slot %d out of range, '%s' has %d flavor slots", ErrValidation, slot+1, item.Name, item.MaxChoices)
	}
	if len(c.Flavors) < item.MaxChoices {
		padded := make([]string, item.MaxChoices)
		copy(padded, c.Flavors)
		c.Flavors = padded
	}

	flavor = strings.TrimSpace(flavor)
	if flavor != "" {
		if !containsString(catalog.Flavors, flavor) {
			return c, fmt.Errorf("%w: unknown flavor '%s'", ErrValidation, flavor)
		}
		for i, existing := range c.Flavors {
			if i != slot && existing == flavor {
				return c, fmt.Errorf("%w: flavor '%s' is already in slot %d", ErrValidation, flavor, i+1)
			}
		}
	}
	c.Flavors[slot] = flavor
	return c, nil
}

func findSauce(options []models.Sauce, key string) (models.Sauce, bool) {
	for _, s := range options {
		if strings.EqualFold(s.Key, strings.TrimSpace(key)) {
			return s, true
		}
	}
	return models.Sauce{}, false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
