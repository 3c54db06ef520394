package professionals

import "strings"

// minPhoneDigits guards against matching on short fragments; anything below
// this is treated as not comparable.
const minPhoneDigits = 9

// phoneDigits strips everything except digits so formatting differences
// ("+33 6 12 34 56 78" vs "0612345678") do not defeat the comparison. A
// leading international prefix is reduced to the trailing digits.
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// samePhone compares two phone numbers on their trailing digit sequences,
// which tolerates country-code prefixes ("+33 6..." vs "06...").
func samePhone(a, b string) bool {
	da, db := phoneDigits(a), phoneDigits(b)
	if len(da) < minPhoneDigits || len(db) < minPhoneDigits {
		return false
	}
	return da[len(da)-minPhoneDigits:] == db[len(db)-minPhoneDigits:]
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
