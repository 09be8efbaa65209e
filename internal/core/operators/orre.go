package operators

import (
	"fadet/internal/adapters/ingest/tabular"
	"fadet/internal/core/canon"
	"fadet/internal/core/textutil"
	perr "fadet/internal/platform/errors"
)

// orreExpected are the native column names an ORRE export may carry
var orreExpected = []string{
	"Date de début d'appel",
	"MSISDN Abonné",
	"Correspondant",
	"Type de communication",
	"Durée / Nbr SMS",
	"Adresse du relais",
	"IMEI abonné",
	"IMSI abonné",
}

// orreRename maps native names to canonical labels
var orreRename = map[string]string{
	"Date de début d'appel": canon.ColDate,
	"MSISDN Abonné":         canon.ColSubscriber,
	"Correspondant":         canon.ColCorrespondent,
	"Type de communication": canon.ColCallType,
	"Durée / Nbr SMS":       canon.ColDuration,
	"Adresse du relais":     canon.ColAddress,
	"IMEI abonné":           canon.ColIMEI,
	"IMSI abonné":           canon.ColIMSI,
}

// NormalizeORRE turns an Orange Réunion export table into canonical rows.
// The export is CSV with the header at row offset 1, Latin-1 encoded;
// coordinates come later from geocoding, never from the file
func NormalizeORRE(t *tabular.Table) (*tabular.Table, error) {
	if !intersects(t, orreExpected) {
		return nil, perr.UnrecognizedFormatf("no ORRE column found in header")
	}

	t.Select(orreExpected)
	t.Rename(orreRename)

	decomposeDate(t, canon.ColDate)

	// identifiers
	t.Apply(canon.ColIMEI, textutil.CleanNumericToken)
	t.FillEmpty(canon.ColIMEI, canon.Indetermine)
	t.Apply(canon.ColIMSI, textutil.CleanNumericToken)
	t.FillEmpty(canon.ColIMSI, canon.Indetermine)
	t.Apply(canon.ColSubscriber, cleanPhone)
	t.FillEmpty(canon.ColCorrespondent, canon.DataSession)
	t.Apply(canon.ColCorrespondent, cleanPhone)

	// text
	t.Apply(canon.ColCallType, upperNoAccents)
	t.FillEmpty(canon.ColAddress, canon.Indetermine)
	t.Apply(canon.ColAddress, upperNoAccents)

	// city derived from the cleaned address
	if t.Has(canon.ColAddress) {
		t.AddColumn(canon.ColCity, "")
		for r := range t.Rows {
			if city, ok := textutil.ExtractCityFromAddress(t.Cell(r, canon.ColAddress)); ok {
				t.SetCell(r, canon.ColCity, textutil.CanonicalizeCityName(city))
			}
		}
	}

	t.FillAllEmpty(canon.Indetermine)
	return t, nil
}
