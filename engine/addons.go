package engine

import (
	"go-acaishop/models"
)

// SelectionBounds resolves a category's effective min/max selection
// counts: min falls back to 1 when the category is required, max 0
// means unlimited.
func SelectionBounds(category models.AddonCategory) (min, max int) {
	min = category.MinSelection
	if min == 0 && category.Required {
		min = 1
	}
	return min, category.MaxSelection
}

// CanToggleOn reports whether one more addon may be selected in the
// category given the current selected count. Toggling off is always
// permitted and needs no check.
func CanToggleOn(category models.AddonCategory, selectedCount int) error {
	_, max := SelectionBounds(category)
	if max > 0 && selectedCount >= max {
		return &MaxReachedError{Category: category.Name, Max: max}
	}
	return nil
}

// ValidateSelection checks a candidate addon selection (set of addon
// ids) against every category attached to the product. Unavailable
// addons and addons from categories the product does not carry are
// rejected outright.
func ValidateSelection(product models.Product, categories []models.AddonCategory, selected map[string]bool) error {
	byID := make(map[string]models.AddonCategory, len(categories))
	for _, cat := range categories {
		byID[cat.ID.Hex()] = cat
	}
	attached := make([]models.AddonCategory, 0, len(product.AddonCategories))
	for _, categoryID := range product.AddonCategories {
		if category, ok := byID[categoryID]; ok {
			attached = append(attached, category)
		}
	}

	for id := range selected {
		if !selected[id] {
			continue
		}
		addon, ok := findAddon(attached, id)
		if !ok || !addon.IsAvailable {
			return &UnavailableAddonError{AddonID: id}
		}
	}

	for _, category := range attached {
		min, max := SelectionBounds(category)
		count := 0
		for _, addon := range category.Addons {
			if selected[addon.ID] {
				count++
			}
		}
		if count < min || (max > 0 && count > max) {
			return &SelectionError{Category: category.Name, Min: min, Max: max, Count: count}
		}
	}
	return nil
}

func findAddon(categories []models.AddonCategory, id string) (models.Addon, bool) {
	for _, category := range categories {
		for _, addon := range category.Addons {
			if addon.ID == id {
				return addon, true
			}
		}
	}
	return models.Addon{}, false
}
