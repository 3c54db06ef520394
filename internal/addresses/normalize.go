package addresses

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const defaultCountry = "FR"

// normalized is the comparison key used by the dedup resolver. All components
// go through the same NFC, trim, lower pipeline so visually identical inputs
// collapse to one key.
type normalized struct {
	line1      string
	line2      string
	postalCode string
	city       string
	country    string
}

func normalizeComponent(value string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(value)))
}

func normalizeInput(input AddressInput) normalized {
	country := input.Country
	if strings.TrimSpace(country) == "" {
		country = defaultCountry
	}
	line2 := ""
	if input.Line2 != nil {
		line2 = *input.Line2
	}
	return normalized{
		line1:      normalizeComponent(input.Line1),
		line2:      normalizeComponent(line2),
		postalCode: normalizeComponent(input.PostalCode),
		city:       normalizeComponent(input.City),
		country:    normalizeComponent(country),
	}
}

func normalizeRow(line1 string, line2 *string, postalCode, city, country string) normalized {
	l2 := ""
	if line2 != nil {
		l2 = *line2
	}
	return normalized{
		line1:      normalizeComponent(line1),
		line2:      normalizeComponent(l2),
		postalCode: normalizeComponent(postalCode),
		city:       normalizeComponent(city),
		country:    normalizeComponent(country),
	}
}
