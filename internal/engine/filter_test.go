package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() *Table {
	return testTable(
		[]string{ColRegion, ColHostCountry, ColTitle, ColTransitionRequest},
		[]map[string]string{
			{ColRegion: "Asia", ColHostCountry: "ID", ColTitle: "Solar Power Plant", ColTransitionRequest: "Yes"},
			{ColRegion: "Asia", ColHostCountry: "VN", ColTitle: "Wind Farm Phase II", ColTransitionRequest: "No"},
			{ColRegion: "Africa", ColHostCountry: "EG", ColTitle: "Hydro upgrade", ColTransitionRequest: "Yes"},
			{ColRegion: "Americas", ColHostCountry: "CL", ColTransitionRequest: "No"}, // no title
		},
	)
}

func TestApplyIdentity(t *testing.T) {
	table := filterFixture()

	out := Apply(table, FilterSpec{})
	assert.Same(t, table, out, "empty spec returns the input table unchanged")

	out = Apply(table, FilterSpec{Columns: map[string][]string{ColRegion: {}}})
	assert.Same(t, table, out, "empty selected set imposes no constraint")
}

func TestApplyCategorical(t *testing.T) {
	table := filterFixture()

	out := Apply(table, FilterSpec{Columns: map[string][]string{ColRegion: {"Asia"}}})
	assert.Equal(t, 2, out.Len())

	out = Apply(table, FilterSpec{Columns: map[string][]string{
		ColRegion:            {"Asia", "Africa"},
		ColTransitionRequest: {"Yes"},
	}})
	assert.Equal(t, 2, out.Len(), "predicates AND across columns, OR within")
}

func TestApplyAbsentColumnNoConstraint(t *testing.T) {
	table := filterFixture()
	out := Apply(table, FilterSpec{Columns: map[string][]string{"Sector": {"Energy"}}})
	assert.Equal(t, table.Len(), out.Len())
}

func TestApplyTextSearch(t *testing.T) {
	table := filterFixture()

	out := Apply(table, FilterSpec{Search: "solar"})
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, "Solar Power Plant", out.Records[0].Text(ColTitle))

	// A row without a title never matches a non-empty query.
	out = Apply(table, FilterSpec{Search: "phase"})
	assert.Equal(t, 1, out.Len())
}

func TestApplyMonotonic(t *testing.T) {
	table := filterFixture()

	loose := Apply(table, FilterSpec{Columns: map[string][]string{ColRegion: {"Asia", "Africa"}}})
	tight := Apply(table, FilterSpec{Columns: map[string][]string{
		ColRegion:            {"Asia", "Africa"},
		ColTransitionRequest: {"Yes"},
	}})
	assert.LessOrEqual(t, tight.Len(), loose.Len())
}

func TestApplyIdempotent(t *testing.T) {
	table := filterFixture()
	spec := FilterSpec{
		Columns: map[string][]string{ColRegion: {"Asia"}},
		Search:  "solar",
	}

	once := Apply(table, spec)
	twice := Apply(once, spec)
	assert.Equal(t, once.Len(), twice.Len())
	for i := range once.Records {
		assert.Equal(t, once.Records[i].ID, twice.Records[i].ID)
	}
}

func TestApplyNeverSynthesizesRows(t *testing.T) {
	table := filterFixture()
	out := Apply(table, FilterSpec{Columns: map[string][]string{ColRegion: {"Asia"}}})

	ids := make(map[string]bool)
	for _, rec := range table.Records {
		ids[rec.ID] = true
	}
	for _, rec := range out.Records {
		assert.True(t, ids[rec.ID], "filtered rows are a subset of the base table")
	}
}
