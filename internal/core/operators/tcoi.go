package operators

import (
	"fadet/internal/adapters/ingest/tabular"
	"fadet/internal/core/canon"
	"fadet/internal/core/geo"
	"fadet/internal/core/textutil"
	perr "fadet/internal/platform/errors"
)

// tcoiExpected are the native columns a Telco OI export may carry
var tcoiExpected = []string{
	"DATE", "CIBLE", "CORRESPONDANT", "TYPE", "DUREE", "DIRECTION",
	"IMEI", "IMSI", "VILLE", "ADRESSE2", "CODE POSTAL", "X", "Y",
}

// tcoiDropped are carried by some requisitions but never normalized
var tcoiDropped = []string{
	"TYPE CORRESPONDANT", "COMP.", "EFFICACITE", "CELLID", "ADRESSE IP VO WIFI",
	"PORT SOURCE VO WIFI", "ADRESSE2", "ADRESSE3", "ADRESSE4", "ADRESSE5",
	"PAYS", "TYPE-COORD", "CODE POSTAL",
}

// NormalizeTCOI turns a Telco OI export into canonical rows. Timestamps may
// carry a UTC offset suffix and are shifted to the fixed local offset; the
// file supplies its own projected coordinates, so the geocoding path is
// skipped entirely for this format
func NormalizeTCOI(t *tabular.Table) (*tabular.Table, error) {
	if !intersects(t, tcoiExpected) {
		return nil, perr.UnrecognizedFormatf("no TCOI column found in header")
	}

	decomposeDate(t, "DATE")

	// identifiers
	t.FillEmpty("CORRESPONDANT", canon.DataSession)
	t.Apply("CORRESPONDANT", cleanPhone)
	t.FillEmpty("DUREE", canon.ZeroDuration)
	t.Apply("IMEI", textutil.CleanNumericToken)
	t.FillEmpty("IMEI", canon.Indetermine)
	t.Apply("IMSI", textutil.CleanNumericToken)
	t.Apply("CIBLE", cleanPhone)

	// text
	t.Apply("TYPE", upperNoAccents)
	t.Apply("DIRECTION", upperNoAccents)
	t.FillEmpty("DIRECTION", canon.Indetermine)

	// city: operator marks unknowns, postal table resolves what it can
	if t.Has("VILLE") {
		t.FillEmpty("VILLE", canon.Indetermine)
		if t.Has("CODE POSTAL") {
			for r := range t.Rows {
				if t.Cell(r, "VILLE") == canon.UnknownCity {
					if city, ok := textutil.PostalCodeToCity(t.Cell(r, "CODE POSTAL")); ok {
						t.SetCell(r, "VILLE", city)
					}
				}
			}
		}
		t.Apply("VILLE", textutil.CanonicalizeCityName)
	}

	// address = street + postal code + city, or the sentinel when no street
	if t.Has("ADRESSE2") {
		t.FillEmpty("ADRESSE2", canon.Indetermine)
		t.FillEmpty("CODE POSTAL", canon.Indetermine)
		t.AddColumn(canon.ColAddress, "")
		for r := range t.Rows {
			street := t.Cell(r, "ADRESSE2")
			if street == canon.Indetermine {
				t.SetCell(r, canon.ColAddress, canon.Indetermine)
				continue
			}
			full := street + " " + t.Cell(r, "CODE POSTAL") + " " + t.Cell(r, "VILLE")
			t.SetCell(r, canon.ColAddress, textutil.CollapseWhitespace(upperNoAccents(full)))
		}
	}

	// native projected coordinates to WGS84; no geocoding for this format
	if t.Has("X") && t.Has("Y") {
		t.AddColumn(canon.ColLatitude, "")
		t.AddColumn(canon.ColLongitude, "")
		for r := range t.Rows {
			if lat, lon, ok := geo.ConvertStrings(t.Cell(r, "X"), t.Cell(r, "Y")); ok {
				t.SetCell(r, canon.ColLatitude, lat)
				t.SetCell(r, canon.ColLongitude, lon)
			}
		}
		t.Drop("X", "Y")
	}

	t.Drop(tcoiDropped...)
	t.Rename(map[string]string{
		"TYPE":  canon.ColCallType,
		"CIBLE": canon.ColSubscriber,
	})
	t.FillAllEmpty(canon.Indetermine)
	return t, nil
}
