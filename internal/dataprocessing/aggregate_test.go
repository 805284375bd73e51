package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdscli/pkg/contracts/domain"
)

func districtRow(endYear int, id string, counts map[string]float64) *domain.CanonicalRow {
	row := domain.NewCanonicalRow(endYear, domain.LevelDistrict)
	row.DistrictID = id
	for field, v := range counts {
		row.SetCount(field, domain.CountOf(v))
	}
	return row
}

func findState(rows []*domain.CanonicalRow) *domain.CanonicalRow {
	for _, row := range rows {
		if row.Level == domain.LevelState {
			return row
		}
	}
	return nil
}

func TestAggregator_SynthesizeState(t *testing.T) {
	rows := []*domain.CanonicalRow{
		districtRow(2024, "01", map[string]float64{
			domain.FieldRowTotal: 100,
			domain.FieldWhite:    50,
			domain.FieldBlack:    30,
		}),
		districtRow(2024, "02", map[string]float64{
			domain.FieldRowTotal: 200,
			domain.FieldWhite:    100,
			domain.FieldBlack:    50,
		}),
	}

	out := NewAggregator(nil).SynthesizeState(rows, 2024)
	require.Len(t, out, 3)

	state := findState(out)
	require.NotNil(t, state)
	assert.Equal(t, domain.CountOf(300), state.Count(domain.FieldRowTotal))
	assert.Equal(t, domain.CountOf(150), state.Count(domain.FieldWhite))
	assert.Equal(t, domain.CountOf(80), state.Count(domain.FieldBlack))
	assert.Equal(t, domain.Unknown(), state.Count(domain.FieldHispanic))
}

// Synthesized state totals must equal the district sums for every field.
func TestAggregator_SynthesisSumInvariant(t *testing.T) {
	rows := []*domain.CanonicalRow{
		districtRow(2024, "01", map[string]float64{
			domain.FieldRowTotal: 7700, domain.FieldMale: 3900, domain.FieldFemale: 3800,
			"grade_k": 600,
		}),
		districtRow(2024, "02", map[string]float64{
			domain.FieldRowTotal: 85000, domain.FieldMale: 43000, domain.FieldFemale: 42000,
			"grade_k": 6200,
		}),
		districtRow(2024, "03", map[string]float64{
			domain.FieldRowTotal: 110000, domain.FieldMale: 56000, domain.FieldFemale: 54000,
			"grade_k": 7900,
		}),
	}

	out := NewAggregator(nil).SynthesizeState(rows, 2024)
	state := findState(out)
	require.NotNil(t, state)

	for _, field := range domain.CanonicalCountFields {
		var counts []domain.Count
		for _, row := range rows {
			counts = append(counts, row.Count(field))
		}
		assert.Equal(t, domain.SumCounts(counts), state.Count(field), "field %s", field)
	}
}

func TestAggregator_SynthesizeState_ExistingStateRowUntouched(t *testing.T) {
	state := domain.NewCanonicalRow(2024, domain.LevelState)
	state.SetCount(domain.FieldRowTotal, domain.CountOf(999))
	rows := []*domain.CanonicalRow{
		state,
		districtRow(2024, "01", map[string]float64{domain.FieldRowTotal: 100}),
	}

	out := NewAggregator(nil).SynthesizeState(rows, 2024)
	require.Len(t, out, 2)
	assert.Equal(t, domain.CountOf(999), findState(out).Count(domain.FieldRowTotal))
}

func TestAggregator_SynthesizeState_FallsBackToSchools(t *testing.T) {
	school := domain.NewCanonicalRow(2024, domain.LevelSchool)
	school.DistrictID = "13"
	school.SchoolID = "0402"
	school.SetCount(domain.FieldRowTotal, domain.CountOf(450))

	out := NewAggregator(nil).SynthesizeState([]*domain.CanonicalRow{school}, 2024)
	state := findState(out)
	require.NotNil(t, state)
	assert.Equal(t, domain.CountOf(450), state.Count(domain.FieldRowTotal))
}

func TestAggregator_Merge_FillInSemantics(t *testing.T) {
	primary := districtRow(2024, "01", map[string]float64{
		domain.FieldRowTotal: 7700,
		domain.FieldWhite:    6500,
	})
	secondary := districtRow(2024, "01", map[string]float64{
		domain.FieldWhite: 9999, // conflicts with primary; must lose
		"grade_k":         600,  // fills a gap
	})

	merged := NewAggregator(nil).Merge(
		[]*domain.CanonicalRow{primary},
		[]*domain.CanonicalRow{secondary},
	)
	require.Len(t, merged, 1)

	row := merged[0]
	assert.Equal(t, domain.CountOf(7700), row.Count(domain.FieldRowTotal))
	assert.Equal(t, domain.CountOf(6500), row.Count(domain.FieldWhite), "primary wins on conflict")
	assert.Equal(t, domain.CountOf(600), row.Count("grade_k"), "secondary fills unknowns")
}

func TestAggregator_Merge_StateRowsMatchOnLevelAlone(t *testing.T) {
	primary := domain.NewCanonicalRow(2024, domain.LevelState)
	primary.SetCount(domain.FieldRowTotal, domain.CountOf(900000))

	secondary := domain.NewCanonicalRow(2024, domain.LevelState)
	secondary.DistrictName = "Maryland"
	secondary.SetCount("grade_k", domain.CountOf(65000))

	merged := NewAggregator(nil).Merge(
		[]*domain.CanonicalRow{primary},
		[]*domain.CanonicalRow{secondary},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, domain.CountOf(900000), merged[0].Count(domain.FieldRowTotal))
	assert.Equal(t, domain.CountOf(65000), merged[0].Count("grade_k"))
}

func TestAggregator_Merge_SecondaryOnlyEntitiesCarried(t *testing.T) {
	primary := districtRow(2024, "01", map[string]float64{domain.FieldRowTotal: 7700})
	secondary := districtRow(2024, "02", map[string]float64{domain.FieldRowTotal: 85000})

	merged := NewAggregator(nil).Merge(
		[]*domain.CanonicalRow{primary},
		[]*domain.CanonicalRow{secondary},
	)
	require.Len(t, merged, 2)
}

func TestAggregator_Merge_DoesNotMutateInputs(t *testing.T) {
	primary := districtRow(2024, "01", map[string]float64{domain.FieldRowTotal: 7700})
	secondary := districtRow(2024, "01", map[string]float64{"grade_k": 600})

	NewAggregator(nil).Merge(
		[]*domain.CanonicalRow{primary},
		[]*domain.CanonicalRow{secondary},
	)
	assert.Equal(t, domain.Unknown(), primary.Count("grade_k"))
}
