package types

import "slices"

// Enumerated listing field domains. The first entry of each is the default a
// form should preselect.
var (
	Categories = []string{
		"Organic Waste",
		"Paper & Cardboard",
		"Glass",
		"Plastics",
		"Textiles",
		"Metal Scraps",
		"Wood Waste",
		"Others",
	}
	Units              = []string{"kg", "piece", "ton", "bundle"}
	Conditions         = []string{"New/Unused", "Like New", "Good", "Fair", "As Is"}
	ContactPreferences = []string{"Email", "Phone", "Both"}
)

// IsCategory reports whether v is a known category.
func IsCategory(v string) bool { return slices.Contains(Categories, v) }

// IsUnit reports whether v is a known unit.
func IsUnit(v string) bool { return slices.Contains(Units, v) }

// IsCondition reports whether v is a known material condition.
func IsCondition(v string) bool { return slices.Contains(Conditions, v) }

// IsContactPreference reports whether v is a known preferred contact method.
func IsContactPreference(v string) bool { return slices.Contains(ContactPreferences, v) }
