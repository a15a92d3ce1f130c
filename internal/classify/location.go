package classify

import "strings"

// Canonical location tags. Unmatched input passes through unchanged so
// new venues surface in the dashboard instead of vanishing into Other.
const (
	LocationMamaroneck = "Mamaroneck"
	LocationNYC        = "NYC"
	LocationChappaqua  = "Chappaqua"
	LocationPartner    = "Partner"
	LocationOther      = "Other"
)

type locationRule struct {
	result     string
	substrings []string
}

// Evaluated in order; first substring hit wins.
var locationRules = []locationRule{
	{LocationMamaroneck, []string{"mamaroneck", "mama"}},
	{LocationNYC, []string{"nyc", "new york", "manhattan"}},
	{LocationChappaqua, []string{"chappaqua", "chappa"}},
	{LocationPartner, []string{"partner", "offsite"}},
}

// Location normalizes a free-text location to a canonical tag. Empty
// input becomes Other; unrecognized input is returned as-is.
func Location(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LocationOther
	}
	lowered := strings.ToLower(trimmed)
	for _, rule := range locationRules {
		for _, needle := range rule.substrings {
			if strings.Contains(lowered, needle) {
				return rule.result
			}
		}
	}
	return raw
}

// CanonicalLocations lists the fixed location tags in display order.
func CanonicalLocations() []string {
	return []string{LocationMamaroneck, LocationNYC, LocationChappaqua, LocationPartner}
}
