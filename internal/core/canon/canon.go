// Package canon pins the canonical record schema every operator normalizer
// targets. The uppercase-French labels and sentinel values are a wire
// contract with the downstream warehouse; change nothing here without
// migrating every consumer that filters on the literal strings
package canon

// Canonical column labels
const (
	ColCallType      = "TYPE D'APPEL"
	ColSubscriber    = "ABONNE"
	ColCorrespondent = "CORRESPONDANT"
	ColDate          = "DATE"
	ColDuration      = "DUREE"
	ColAddress       = "ADRESSE"
	ColCity          = "VILLE"
	ColIMEI          = "IMEI"
	ColIMSI          = "IMSI"
	ColHour          = "HEURE"
	ColMonth         = "MOIS"
	ColYear          = "ANNEE"
	ColWeekday       = "JOUR DE LA SEMAINE"
	ColLatitude      = "LATITUDE"
	ColLongitude     = "LONGITUDE"
	ColSiteRef       = "CIREF"
)

// Sentinels are first-class values, never empty strings: downstream grouping
// filters on them literally (e.g. excluding "numéros spéciaux")
const (
	// Indetermine marks any absent field
	Indetermine = "INDETERMINE"

	// DataSession marks a data-session record with no correspondent
	DataSession = "DATA"

	// ZeroDuration marks an absent duration or SMS count
	ZeroDuration = "0"

	// UnknownCity is the operator-side marker Format C uses before the
	// postal-code fallback runs
	UnknownCity = "ville inconnue"
)

// Columns is the full canonical label set in warehouse order
var Columns = []string{
	ColCallType, ColSubscriber, ColCorrespondent, ColDate, ColDuration,
	ColAddress, ColCity, ColIMEI, ColIMSI, ColHour, ColMonth, ColYear,
	ColWeekday, ColLatitude, ColLongitude, ColSiteRef,
}
