package constants

// Product families recognized by the extraction engine. Detection priority
// is defined by the catalog, not by this list.
const (
	FamilyIsokorb   = "Isokorb"
	FamilyTronsole  = "Tronsole"
	FamilyStacon    = "Stacon"
	FamilyTronsolen = "Tronsolen"
)

// Unit codes emitted with quantities.
const (
	UnitPiece = "St"
	UnitMeter = "m"
)
