package operators

import (
	"fadet/internal/adapters/ingest/tabular"
	"fadet/internal/core/canon"
	"fadet/internal/core/geo"
	"fadet/internal/core/textutil"
	perr "fadet/internal/platform/errors"
)

// srrCommsExpected are the communications workbook columns
var srrCommsExpected = []string{
	"Type d'appel", "Abonné", "Correspondant", "Date", "Durée", "CIREF", "IMEI", "IMSI",
}

// srrSitesExpected are the cell/site directory workbook columns
var srrSitesExpected = []string{
	"CIREF", "Adresse", "Comp. adresse", "Code postal", "Bureau Distributeur",
	"Coordonnée X", "Coordonnée Y",
}

// srrIrrelevant is the fixed post-merge drop list; requisition exports
// sometimes carry these alongside the expected set
var srrIrrelevant = []string{
	"Critère Recherché_x", "Commentaire_x", "3ème interlocuteur", "Nature Correspondant",
	"Nature 3ème interlocuteur", "GCI_x", "EGCI_x", "NGCI_x", "Code PLMN",
	"Volume de données montant", "Volume de données descendant", "Opérateur d'itinérance",
	"Indicateur RO", "Décalage horaire", "Service de Base", "IPV4 VO Wifi", "IPV6 VO Wifi",
	"Port Source VO Wifi", "Critère Recherché_y", "Commentaire_y", "GCI_y",
	"EGCI_y", "NGCI_y", "Système", "Nom du site", "Code zone", "Coordonnée Z",
	"Début asso. CIREF/GCI", "Fin asso. CIREF/GCI",
}

// srrRename maps the merged native names to canonical labels
var srrRename = map[string]string{
	"Type d'appel":        canon.ColCallType,
	"Abonné":              canon.ColSubscriber,
	"Correspondant":       canon.ColCorrespondent,
	"Date":                canon.ColDate,
	"Durée":               canon.ColDuration,
	"Adresse":             canon.ColAddress,
	"Bureau Distributeur": canon.ColCity,
}

// NormalizeSRR merges an SFR Réunion communications workbook with its
// cell/site directory on CIREF and produces canonical rows. Both sheets end
// with an instruction trailer that is dropped before anything else; the site
// coordinates are projected Gauss-Laborde and convert to WGS84 here
func NormalizeSRR(comms, sites *tabular.Table) (*tabular.Table, error) {
	if !intersects(comms, srrCommsExpected) {
		return nil, perr.UnrecognizedFormatf("no SRR communications column found in header")
	}
	if !intersects(sites, srrSitesExpected) {
		return nil, perr.UnrecognizedFormatf("no SRR site directory column found in header")
	}

	comms.DropTrailer()
	sites.DropTrailer()
	comms.Select(srrCommsExpected)
	sites.Select(srrSitesExpected)

	// the export writes the monitored number only on its first row
	comms.FillDownUp("Abonné")

	comms.MergeLeft(sites, "CIREF")
	comms.Drop(srrIrrelevant...)
	t := comms

	decomposeDate(t, "Date")

	// identifiers (SRR cells carry no spreadsheet escape)
	t.Apply("Abonné", textutil.NormalizePhoneNumber)
	t.Apply("Correspondant", textutil.NormalizePhoneNumber)

	// text
	t.Apply("Type d'appel", upperNoAccents)

	// city from the postal distribution office
	t.Apply("Bureau Distributeur", textutil.CanonicalizeCityName)

	// full address = street + postal code + canonical city
	if t.Has("Adresse") && t.Has("Code postal") {
		for r := range t.Rows {
			full := t.Cell(r, "Adresse") + " " + t.Cell(r, "Code postal") + " " + t.Cell(r, "Bureau Distributeur")
			t.SetCell(r, "Adresse", textutil.CollapseWhitespace(upperNoAccents(full)))
		}
		t.Drop("Comp. adresse", "Code postal")
	}

	// projected site coordinates to WGS84; unconvertible pairs degrade
	if t.Has("Coordonnée X") && t.Has("Coordonnée Y") {
		t.AddColumn(canon.ColLatitude, "")
		t.AddColumn(canon.ColLongitude, "")
		for r := range t.Rows {
			lat, lon, ok := geo.ConvertStrings(t.Cell(r, "Coordonnée X"), t.Cell(r, "Coordonnée Y"))
			if ok {
				t.SetCell(r, canon.ColLatitude, lat)
				t.SetCell(r, canon.ColLongitude, lon)
			}
		}
		t.Drop("Coordonnée X", "Coordonnée Y")
	}

	t.Rename(srrRename)
	t.FillAllEmpty(canon.Indetermine)
	return t, nil
}
