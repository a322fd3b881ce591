package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cemil-kerimoglu/pdf-extractor/constants"
)

func TestMatchFamily_PriorityOrder(t *testing.T) {
	cat := DefaultCatalog()

	rule, ok := cat.MatchFamily("Schöck Isokorb und Stacon Elemente")
	require.True(t, ok)
	assert.Equal(t, constants.FamilyIsokorb, rule.Name, "first rule in priority order wins")
}

func TestMatchFamily_TronsolenIsNotTronsole(t *testing.T) {
	cat := DefaultCatalog()

	rule, ok := cat.MatchFamily("Schöck Tronsolen Einbau")
	require.True(t, ok)
	assert.Equal(t, constants.FamilyTronsolen, rule.Name)
	assert.Empty(t, rule.ExtractCode("Schöck Tronsolen Typ B"), "family carries no code shape")
}

func TestExtractCode_Isokorb(t *testing.T) {
	cat := DefaultCatalog()
	rule, ok := cat.MatchFamily("Isokorb")
	require.True(t, ok)

	code := rule.ExtractCode("6.1.2310. Schöck Isokorb K-M6-V1-REI120-CV35-X120-H220 10,000 St")
	assert.Equal(t, "K-M6-V1-REI120-CV35-X120-H220", code)

	assert.Empty(t, rule.ExtractCode("Schöck Isokorb Lieferung und Montage"))
}

func TestExtractCode_Tronsole(t *testing.T) {
	cat := DefaultCatalog()
	rule, ok := cat.MatchFamily("Tronsole")
	require.True(t, ok)

	assert.Equal(t, "Typ B-L100", rule.ExtractCode("Schöck Tronsole Typ B-L100"))
	assert.Equal(t, "Typ T", rule.ExtractCode("Tronsole Typ: T"))
}

func TestExtractCode_Stacon(t *testing.T) {
	cat := DefaultCatalog()
	rule, ok := cat.MatchFamily("Stacon")
	require.True(t, ok)

	assert.Equal(t, "SLD-200", rule.ExtractCode("Schöck Stacon SLD-200 45,000 m"))
	assert.Equal(t, "LS-Q40", rule.ExtractCode("Stacon Typ LS-Q40, verzinkt"))
}

func TestMentionsVendorAndCompetitor(t *testing.T) {
	cat := DefaultCatalog()

	assert.True(t, cat.MentionsVendor("pos. schöck isokorb"))
	assert.True(t, cat.MentionsVendor("schoeck bauteile gmbh"))
	assert.False(t, cat.MentionsVendor("irgendein anderer hersteller"))

	assert.True(t, cat.MentionsCompetitor("oder glw. halfen hit"))
	assert.True(t, cat.MentionsCompetitor("tebea lager"))
	assert.False(t, cat.MentionsCompetitor("schöck isokorb"))
}
