package textutil

import (
	"strings"
	"testing"
)

func TestStripAccents_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "SAINT DENIS", out: "SAINT DENIS"},
		{name: "lowercase vowels", in: "étang salé", out: "etang sale"},
		{name: "cedilla", in: "François", out: "Francois"},
		{name: "uppercase", in: "ÉTANG SALÉ", out: "ETANG SALE"},
		{name: "mixed sentence", in: "Durée / Nbr SMS à Sainte-Rose", out: "Duree / Nbr SMS a Sainte-Rose"},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripAccents(tc.in)
			if got != tc.out {
				t.Fatalf("StripAccents(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// idempotent: a second pass changes nothing
			if again := StripAccents(got); again != got {
				t.Fatalf("StripAccents not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestStripAccents_NoTableCharsRemain(t *testing.T) {
	in := "éèêëàâäçîïôöùûüÿÉÈÊËÀÂÄÇÎÏÔÖÙÛÜ"
	got := StripAccents(in)
	for _, r := range got {
		if _, still := accentFold[r]; still {
			t.Fatalf("output %q still contains accented rune %q", got, r)
		}
	}
}

func TestCleanNumericToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "wrapped imei", in: `=("353612090142371")`, out: "353612090142371"},
		{name: "wrapped with spaces", in: `=(" 0692123456 ")`, out: "0692123456"},
		{name: "bare number untouched", in: "0692123456", out: "0692123456"},
		{name: "inner quote kept", in: `06"92`, out: `06"92`},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanNumericToken(tc.in); got != tc.out {
				t.Fatalf("CleanNumericToken(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestNormalizePhoneNumber_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "reunion sfr mobile", in: "0693123456", out: "262693123456"},
		{name: "reunion orange mobile", in: "0692123456", out: "262692123456"},
		{name: "metropole 06", in: "0612345678", out: "33612345678"},
		{name: "metropole 07", in: "0712345678", out: "33712345678"},
		{name: "reunion landline", in: "0262123456", out: "262262123456"},
		{name: "already international", in: "262693123456", out: "262693123456"},
		{name: "first comma token only", in: "0693123456,0612345678", out: "262693123456"},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhoneNumber(tc.in); got != tc.out {
				t.Fatalf("NormalizePhoneNumber(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

// the 4-digit 0693 rule must win over the generic 06 rule
func TestNormalizePhoneNumber_PrefixOrdering(t *testing.T) {
	got := NormalizePhoneNumber("0693000000")
	if got != "262693000000" {
		t.Fatalf("0693 rewritten as %q; generic 06 rule shadowed the specific one", got)
	}
	if strings.HasPrefix(got, "336") {
		t.Fatalf("0693 fell through to the metropole rule: %q", got)
	}
}

func TestCanonicalizeCityName_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "elision hyphen accents", in: "l'Étang-Salé", out: "ETANG SALE"},
		{name: "saint abbreviated", in: "Saint-Denis", out: "ST DENIS"},
		{name: "sainte abbreviated", in: "Sainte-Marie", out: "STE MARIE"},
		{name: "already canonical", in: "LE TAMPON", out: "LE TAMPON"},
		{name: "whitespace collapsed", in: "  saint   paul ", out: "ST PAUL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalizeCityName(tc.in); got != tc.out {
				t.Fatalf("CanonicalizeCityName(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestExtractCityFromAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{name: "postal then city", in: "12 rue des Palmiers 97430 LE TAMPON", out: "LE TAMPON", ok: true},
		{name: "no postal code", in: "rue des Palmiers", ok: false},
		{name: "trailing spaces trimmed", in: "97410 ST PIERRE  ", out: "ST PIERRE", ok: true},
		{name: "empty", in: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractCityFromAddress(tc.in)
			if ok != tc.ok || got != tc.out {
				t.Fatalf("ExtractCityFromAddress(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.out, tc.ok)
			}
		})
	}
}

func TestPostalCodeToCity(t *testing.T) {
	if city, ok := PostalCodeToCity("97430"); !ok || city != "LE TAMPON" {
		t.Fatalf("PostalCodeToCity(97430) = (%q, %v)", city, ok)
	}
	if city, ok := PostalCodeToCity("97427"); !ok || city != "L'ETANG SALE" {
		t.Fatalf("PostalCodeToCity(97427) = (%q, %v)", city, ok)
	}
	if _, ok := PostalCodeToCity("75001"); ok {
		t.Fatalf("PostalCodeToCity should not resolve codes outside the island")
	}
}
