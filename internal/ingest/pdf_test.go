package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mdscli/internal/errors"
	"mdscli/pkg/contracts/domain"
)

func TestParsePDFLineTable(t *testing.T) {
	pages := []string{
		"Public School Enrollment by Race/Ethnicity\n" +
			"Allegany 7,700 20 60 480 340 10 6,500 290\n" +
			"Anne Arundel 85,000 200 4,100 17,500 16,200 100 40,900 6,000\n",
		"Baltimore City 76,000 150 800 56,000 13,000 50 5,200 800\n" +
			"Maryland 900,000 2,300 60,000 290,000 210,000 1,100 270,000 66,600\n",
	}

	records, err := ParsePDFLineTable("enr_pdf", 2024, pages)
	require.NoError(t, err)
	require.Len(t, records, 4)

	allegany := records[0]
	assert.Equal(t, "Allegany", allegany.Labels[LabelDistrictName])
	assert.Equal(t, domain.CountOf(7700), allegany.Values[domain.FieldRowTotal])
	assert.Equal(t, domain.CountOf(20), allegany.Values[domain.FieldNativeAmerican])
	assert.Equal(t, domain.CountOf(60), allegany.Values[domain.FieldAsian])
	assert.Equal(t, domain.CountOf(480), allegany.Values[domain.FieldBlack])
	assert.Equal(t, domain.CountOf(340), allegany.Values[domain.FieldHispanic])
	assert.Equal(t, domain.CountOf(10), allegany.Values[domain.FieldPacificIslander])
	assert.Equal(t, domain.CountOf(6500), allegany.Values[domain.FieldWhite])
	assert.Equal(t, domain.CountOf(290), allegany.Values[domain.FieldMultiracial])

	state := records[3]
	assert.Equal(t, string(domain.LevelState), state.Labels[LabelLevel])
	assert.Equal(t, domain.CountOf(900000), state.Values[domain.FieldRowTotal])
}

func TestParsePDFLineTable_MostSpecificNameWins(t *testing.T) {
	pages := []string{
		"Baltimore City 76,000 150 800 56,000 13,000 50 5,200 800\n" +
			"Baltimore County 110,000 300 8,000 44,000 18,000 120 35,000 4,580\n",
	}

	records, err := ParsePDFLineTable("enr_pdf", 2024, pages)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Baltimore City", records[0].Labels[LabelDistrictName])
	assert.Equal(t, domain.CountOf(76000), records[0].Values[domain.FieldRowTotal])
	assert.Equal(t, "Baltimore County", records[1].Labels[LabelDistrictName])
	assert.Equal(t, domain.CountOf(110000), records[1].Values[domain.FieldRowTotal])
}

func TestParsePDFLineTable_ShortLineIsTotalOnly(t *testing.T) {
	pages := []string{"Garrett 3,600\n"}

	records, err := ParsePDFLineTable("enr_pdf", 2024, pages)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, domain.CountOf(3600), rec.Values[domain.FieldRowTotal])
	_, hasWhite := rec.Values[domain.FieldWhite]
	assert.False(t, hasWhite, "demographics must stay unset on a short line")
}

func TestParsePDFLineTable_CrossCheckKeepsMismatchedLine(t *testing.T) {
	// Race fields sum to 7,690, one short of the printed total. The
	// cross-check logs the discrepancy but the line is still usable:
	// suppression in the source legitimately breaks exact equality.
	pages := []string{"Allegany 7,700 20 60 480 340 10 6,500 280\n"}

	records, err := ParsePDFLineTable("enr_pdf", 2024, pages)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.CountOf(7700), records[0].Values[domain.FieldRowTotal])
	assert.Equal(t, domain.CountOf(280), records[0].Values[domain.FieldMultiracial])
}

func TestParsePDFLineTable_IgnoresNonJurisdictionLines(t *testing.T) {
	pages := []string{
		"Table 1: Enrollment 2023-24\n" +
			"Prepared by the Department, September 30 2023\n" +
			"Howard 57,000 100 12,000 21,000 8,000 60 12,000 3,840\n",
	}

	records, err := ParsePDFLineTable("enr_pdf", 2024, pages)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Howard", records[0].Labels[LabelDistrictName])
}

func TestParsePDFLineTable_NoMatchesIsParseFailure(t *testing.T) {
	_, err := ParsePDFLineTable("enr_pdf", 2024, []string{"nothing relevant here"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParse, apperrors.TypeOf(err))

	_, err = ParsePDFLineTable("enr_pdf", 2024, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParse, apperrors.TypeOf(err))
}
