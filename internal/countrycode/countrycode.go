// Package countrycode maps two-letter ISO country codes to their
// three-letter equivalents. The World Bank API keys countries by
// alpha-2 but also returns aggregates (income groups, regions, the
// world total) whose ids have no alpha-3 equivalent; those map to
// nothing rather than erroring so callers can count the drops.
package countrycode

import "github.com/biter777/countries"

// ToISO3 converts an alpha-2 code to its alpha-3 code. The second
// return value is false when the input is not a recognized country.
func ToISO3(alpha2 string) (string, bool) {
	if len(alpha2) != 2 {
		return "", false
	}

	c := countries.ByName(alpha2)
	if !c.IsValid() {
		return "", false
	}

	return c.Alpha3(), true
}
