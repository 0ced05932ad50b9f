package engine

import (
	"strings"

	"github.com/biter777/countries"
)

// aliasISO3 corrects source labels the generic lookup gets wrong or does
// not know under this exact spelling. Checked before any generic lookup
// so known-ambiguous labels resolve deterministically.
var aliasISO3 = map[string]string{
	"Republic of Korea":                     "KOR",
	"Korea, Republic of":                    "KOR",
	"Viet Nam":                              "VNM",
	"Iran":                                  "IRN",
	"Iran (Islamic Republic of)":            "IRN",
	"Lao PDR":                               "LAO",
	"Democratic Republic of the Congo":      "COD",
	"Congo, The Democratic Republic of the": "COD",
	"Cote d'Ivoire":                         "CIV",
	"Côte d’Ivoire":                         "CIV",
}

// ResolveISO3 maps a free-form country token (ISO2, ISO3, full name, or
// known alias) to its canonical ISO3 code. It is total: any input yields
// either a valid ISO3 or ok=false, never an error.
//
// Two- and three-letter tokens are treated strictly as ISO codes and
// validated against the ISO 3166 database; an invalid code does not fall
// through to a name lookup.
func ResolveISO3(token string) (string, bool) {
	tok := strings.TrimSpace(token)
	switch strings.ToLower(tok) {
	case "", "multiple", "nan":
		return "", false
	}

	if iso3, ok := aliasISO3[tok]; ok {
		return iso3, true
	}

	if len(tok) == 2 && isAlpha(tok) {
		upper := strings.ToUpper(tok)
		if c := countries.ByName(upper); c.IsValid() && c.Alpha2() == upper {
			return c.Alpha3(), true
		}
		return "", false
	}

	if len(tok) == 3 && isAlpha(tok) {
		upper := strings.ToUpper(tok)
		if c := countries.ByName(upper); c.IsValid() && c.Alpha3() == upper {
			return upper, true
		}
		return "", false
	}

	if c := countries.ByName(tok); c.IsValid() {
		return c.Alpha3(), true
	}
	return "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
