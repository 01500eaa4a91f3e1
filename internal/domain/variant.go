package domain

// Variant selects which generator flavour a workspace uses.
type Variant string

const (
	// VariantBasic renders fixed colors and a click-only script.
	VariantBasic Variant = "basic"
	// VariantAdvanced adds color themes, animations, keyboard navigation,
	// ARIA state, live preview, download and undo/redo.
	VariantAdvanced Variant = "advanced"
)

// Variants lists every supported variant in display order.
var Variants = []Variant{VariantBasic, VariantAdvanced}

// ParseVariant maps a route or flag value to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case VariantBasic, VariantAdvanced:
		return Variant(s), true
	}
	return "", false
}

// StorageKey is the key under which a variant's tab collection is persisted.
func (v Variant) StorageKey() string {
	if v == VariantAdvanced {
		return "htmlGeneratorTabsAdvanced"
	}
	return "htmlGeneratorTabs"
}

// Advanced reports whether the variant carries the advanced feature set.
func (v Variant) Advanced() bool {
	return v == VariantAdvanced
}
