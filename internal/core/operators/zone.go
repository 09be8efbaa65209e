package operators

import (
	"strings"

	"fadet/internal/adapters/ingest/tabular"
	perr "fadet/internal/platform/errors"
)

// ZoneVariant is one of the competing cell-tower dump sub-formats sharing
// the zone upload path
type ZoneVariant string

// Known zone sub-variants
const (
	ZoneSFR          ZoneVariant = "sfr"
	ZoneOrangeEvents ZoneVariant = "orange_events"
	ZoneOrangeCells  ZoneVariant = "orange_cells"
	ZoneBouygues     ZoneVariant = "bouygues"
)

// WarehouseTable returns the raw table a variant's rows land in
func (v ZoneVariant) WarehouseTable() string {
	return "zone_" + string(v)
}

// Zone enrichment columns stamped on every zone upload
const (
	ColDossierID      = "DOSSIER_ID"
	ColSourceFilename = "SOURCE_FILENAME"
	ColZoneName       = "INPUT_ZONE_NAME"
	ColZoneNum        = "INPUT_ZONE_NUM"
	ColZoneCity       = "INPUT_ZONE_CITY"
)

// ClassifyZone matches the header against the sub-variant signatures in
// fixed priority order. No silent default: an unmatched header is an
// explicit unrecognized-format rejection
func ClassifyZone(header []string) (ZoneVariant, error) {
	has := make(map[string]bool, len(header))
	for _, c := range header {
		has[c] = true
	}

	for _, c := range header {
		if strings.Contains(c, "Heure Eve") {
			return ZoneSFR, nil
		}
	}
	if has["Technologie"] && has["Cellule"] {
		return ZoneOrangeEvents, nil
	}
	if has["X Lambert"] || has["CellID"] {
		return ZoneOrangeCells, nil
	}
	if has["Event.StartTime"] || has["Cell.Techno"] {
		return ZoneBouygues, nil
	}
	return "", perr.UnrecognizedFormatf("header matches no zone sub-variant signature")
}

// ZoneContext is the investigation metadata stamped onto zone rows
type ZoneContext struct {
	DossierID      string
	SourceFilename string
	ZoneName       string
	ZoneNum        string
	ZoneCity       string
}

// TagZone enriches a zone dump with the dossier and zone columns. The raw
// operator columns pass through untouched: zone rows are cross-referenced
// against targets downstream, not normalized to the canonical CDR schema
func TagZone(t *tabular.Table, zc ZoneContext) {
	t.AddColumn(ColDossierID, zc.DossierID)
	t.AddColumn(ColSourceFilename, zc.SourceFilename)
	t.AddColumn(ColZoneName, zc.ZoneName)
	t.AddColumn(ColZoneNum, zc.ZoneNum)
	t.AddColumn(ColZoneCity, zc.ZoneCity)
}
