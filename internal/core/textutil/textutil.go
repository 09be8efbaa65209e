// Package textutil provides the locale-specific string cleaning shared by the
// operator normalizers
// Pipeline building blocks
// 1 Accent stripping via a fixed Latin-1 substitution table
// 2 Spreadsheet escape unwrapping for exported numeric cells
// 3 Phone prefix rewriting to international form, ordered rules
// 4 City name canonicalization (ST/STE abbreviation, elision, accents)
// 5 City extraction from free-text site addresses
package textutil

import (
	"regexp"
	"strings"
)

// accentFold maps Latin-1 accented letters to their bare equivalents.
// Fixed table, no locale library, idempotent by construction.
var accentFold = map[rune]rune{
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'à': 'a', 'â': 'a', 'ä': 'a',
	'ç': 'c',
	'î': 'i', 'ï': 'i',
	'ô': 'o', 'ö': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u',
	'ÿ': 'y',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'À': 'A', 'Â': 'A', 'Ä': 'A',
	'Ç': 'C',
	'Î': 'I', 'Ï': 'I',
	'Ô': 'O', 'Ö': 'O',
	'Ù': 'U', 'Û': 'U', 'Ü': 'U',
}

// StripAccents replaces every mapped accented letter with its bare form.
// Characters outside the table pass through untouched
func StripAccents(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if f, ok := accentFold[r]; ok {
			b.WriteRune(f)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// numericEscape matches the ="..." wrapper some operator exports put around
// numeric cells to stop spreadsheets from eating leading zeros
var numericEscape = regexp.MustCompile(`^\=\("\s*|\s*"\)$`)

// CleanNumericToken strips the spreadsheet escape wrapper and returns the
// bare token. Anything not wrapped comes back unchanged
func CleanNumericToken(s string) string {
	return numericEscape.ReplaceAllString(s, "")
}

// prefixRule rewrites one local dialing prefix to its international form
type prefixRule struct {
	local, intl string
}

// phonePrefixes is ordered: the 4-digit Réunion mobile prefixes must rewrite
// before the generic 06/07 rules that would otherwise shadow them
var phonePrefixes = []prefixRule{
	{"0693", "262693"},
	{"0692", "262692"},
	{"06", "336"},
	{"07", "337"},
	{"02", "2622"},
}

// NormalizePhoneNumber takes the first comma-delimited token and rewrites the
// first matching local prefix to international form. First match wins
func NormalizePhoneNumber(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	for _, r := range phonePrefixes {
		if strings.HasPrefix(s, r.local) {
			return r.intl + s[len(r.local):]
		}
	}
	return s
}

var multiSpace = regexp.MustCompile(`\s+`)

// CollapseWhitespace folds runs of whitespace into single spaces and trims
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// CanonicalizeCityName uppercases, maps hyphens to spaces, abbreviates
// SAINT/SAINTE to ST/STE, strips the leading L' elision and accents, then
// collapses whitespace. Apply after any free-text extraction, never before
func CanonicalizeCityName(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", " ")
	// SAINT covers SAINTE too: SAINTE -> ST+E
	s = strings.ReplaceAll(s, "SAINT", "ST")
	s = strings.ReplaceAll(s, "L'", "")
	s = StripAccents(s)
	return CollapseWhitespace(s)
}

// postalCity captures the trailing text after a 5-digit postal code
var postalCity = regexp.MustCompile(`\d{5}\s+(.*)`)

// ExtractCityFromAddress returns the text following the first 5-digit postal
// code in the address, trimmed, and ok=false when no code is present.
// Known limitation: an earlier 5-digit run (door numbers etc) wins over the
// real postal code; kept as-is pending a labeled address corpus
func ExtractCityFromAddress(address string) (string, bool) {
	m := postalCity.FindStringSubmatch(address)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// reunionPostalCodes maps the island's postal codes to canonical city names,
// used only when the city column carries the unknown sentinel
var reunionPostalCodes = map[string]string{
	"97400": "ST DENIS",
	"97410": "ST PIERRE",
	"97411": "BOIS DE NEFLES",
	"97412": "BRAS PANON",
	"97413": "CILAOS",
	"97414": "ENTRE DEUX",
	"97416": "LA CHALOUPE",
	"97417": "ST BERNARD",
	"97418": "LA PLAINE DES CAFRES",
	"97419": "LA POSSESSION",
	"97420": "LE PORT",
	"97421": "LA RIVIERE ST LOUIS",
	"97422": "LA SALINE",
	"97423": "LE GUILLAUME",
	"97424": "PITON ST LEU",
	"97425": "LES AVRIONS",
	"97426": "LES TROIS BASSINS",
	"97427": "L'ETANG SALE",
	"97428": "LA NOUVELLE",
	"97429": "PETITE ILE",
	"97430": "LE TAMPON",
	"97431": "LA PLAINE DES PALMISTES",
	"97432": "LA RAVINE DES CABRIS",
	"97433": "SALAZIE - HELL BOURG",
	"97434": "ST GILLES LES BAINS",
	"97435": "BERNICA",
	"97436": "ST LEU",
	"97437": "STE ANNE",
	"97438": "STE MARIE",
	"97439": "STE ROSE",
	"97440": "ST ANDRE",
	"97441": "STE SUZANNE",
	"97442": "BASSE VALLEE",
	"97450": "ST LOUIS",
	"97460": "ST PAUL",
	"97470": "ST BENOIT",
}

// PostalCodeToCity resolves a Réunion postal code to its canonical city name
func PostalCodeToCity(code string) (string, bool) {
	city, ok := reunionPostalCodes[code]
	return city, ok
}
