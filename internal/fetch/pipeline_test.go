package fetch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "mdscli/internal/errors"
	"mdscli/pkg/contracts/domain"
)

type stubFetcher struct {
	responses map[string][]byte
	calls     []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.calls = append(s.calls, url)
	if body, ok := s.responses[url]; ok {
		return body, nil
	}
	return nil, fmt.Errorf("status 404")
}

func testPlan() SourcePlan {
	return SourcePlan{
		Primary: []Source{
			{
				Name:        "api",
				Format:      domain.FormatJSON,
				URLPatterns: []string{"http://test/api/%d", "http://test/api/v2/%d"},
			},
		},
		Supplement: &Source{
			Name:        "disaggregated",
			Format:      domain.FormatDisaggregatedLong,
			URLPatterns: []string{"http://test/long/%d"},
		},
	}
}

const apiPayload = `[
  {"LSS Number":"01","LSS Name":"Allegany","Total Enrollment":100,"White":50,"Male":60,"Female":40},
  {"LSS Number":"02","LSS Name":"Anne Arundel","Total Enrollment":200,"White":100,"Male":110,"Female":90}
]`

const longPayload = `[
  {"LSS Number":"01","LSS Name":"Allegany","Race":"3","Sex":"99","Enrolled Count":30},
  {"LSS Number":"01","LSS Name":"Allegany","Race":"99","Sex":"99","Enrolled Count":999},
  {"LSS Number":"02","LSS Name":"Anne Arundel","Race":"3","Sex":"99","Enrolled Count":60}
]`

func newTestPipeline(fetcher ByteFetcher) *Pipeline {
	return NewPipeline(fetcher, ExcelReader{}, PDFReader{}, testPlan(), nil, nil)
}

func TestPipeline_FetchYear(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string][]byte{
		"http://test/api/2024":  []byte(apiPayload),
		"http://test/long/2024": []byte(longPayload),
	}}
	p := newTestPipeline(fetcher)

	ds, err := p.FetchYear(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, ds.EndYear)

	// Two districts plus the synthesized state row.
	require.Len(t, ds.Wide, 3)

	byKey := make(map[string]*domain.CanonicalRow)
	for _, row := range ds.Wide {
		byKey[string(row.Level)+row.DistrictID] = row
	}

	allegany := byKey["District01"]
	require.NotNil(t, allegany)
	assert.Equal(t, int64(100), allegany.Count(domain.FieldRowTotal).Int())
	assert.Equal(t, int64(50), allegany.Count(domain.FieldWhite).Int())

	// Supplement fills the unknown hispanic field but never overwrites the
	// primary chain's total.
	assert.Equal(t, int64(30), allegany.Count(domain.FieldHispanic).Int())
	assert.Equal(t, int64(100), allegany.Count(domain.FieldRowTotal).Int())

	state := byKey["State"]
	require.NotNil(t, state)
	assert.Equal(t, domain.LevelState, state.Level)
	assert.Equal(t, int64(300), state.Count(domain.FieldRowTotal).Int())
	assert.Equal(t, int64(150), state.Count(domain.FieldWhite).Int())
	assert.Equal(t, int64(90), state.Count(domain.FieldHispanic).Int())

	assert.NotEmpty(t, ds.Tidy)
}

func TestPipeline_FetchYearURLFallback(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string][]byte{
		"http://test/api/v2/2024": []byte(apiPayload),
	}}
	p := newTestPipeline(fetcher)

	ds, err := p.FetchYear(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, ds.Wide, 3)
	assert.Contains(t, fetcher.calls, "http://test/api/2024")
	assert.Contains(t, fetcher.calls, "http://test/api/v2/2024")
}

func TestPipeline_FetchYearSupplementFailureNonFatal(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string][]byte{
		"http://test/api/2024": []byte(apiPayload),
	}}
	p := newTestPipeline(fetcher)

	ds, err := p.FetchYear(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, ds.Wide, 3)

	for _, row := range ds.Wide {
		if row.Level == domain.LevelDistrict {
			assert.False(t, row.Count(domain.FieldHispanic).Known)
		}
	}
}

func TestPipeline_FetchYearAllSourcesFail(t *testing.T) {
	p := newTestPipeline(&stubFetcher{responses: map[string][]byte{}})

	_, err := p.FetchYear(context.Background(), 2024)
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrTypeDownload, apierrors.TypeOf(err))
}

func TestPipeline_FetchYearRejectsUnsupportedYear(t *testing.T) {
	p := newTestPipeline(&stubFetcher{})

	_, err := p.FetchYear(context.Background(), 1999)
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrTypeValidation, apierrors.TypeOf(err))
}

func TestPipeline_FetchRange(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string][]byte{
		"http://test/api/2023": []byte(apiPayload),
		"http://test/api/2024": []byte(apiPayload),
	}}
	p := newTestPipeline(fetcher)

	result, err := p.FetchRange(context.Background(), []int{2022, 2023, 2024})
	require.NoError(t, err)
	assert.Len(t, result.Datasets, 2)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "year 2022")
}

func TestPipeline_FetchRangeAllYearsFail(t *testing.T) {
	p := newTestPipeline(&stubFetcher{responses: map[string][]byte{}})

	_, err := p.FetchRange(context.Background(), []int{2023, 2024})
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrTypeDownload, apierrors.TypeOf(err))
}

func TestPipeline_FetchRangeValidationIsFatal(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string][]byte{
		"http://test/api/2024": []byte(apiPayload),
	}}
	p := newTestPipeline(fetcher)

	_, err := p.FetchRange(context.Background(), []int{1999, 2024})
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrTypeValidation, apierrors.TypeOf(err))
}
