package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "mdscli/internal/errors"
	"mdscli/internal/services"
	"mdscli/pkg/contracts/domain"
)

type stubEnrollmentService struct {
	refreshSeen bool
	failYear    int
}

func (s *stubEnrollmentService) FetchEnr(_ context.Context, endYear int, refresh bool) ([]*domain.CanonicalRow, error) {
	if endYear == s.failYear {
		return nil, apierrors.NewDownloadError("test", endYear, fmt.Errorf("unreachable"))
	}
	s.refreshSeen = refresh
	state := domain.NewCanonicalRow(endYear, domain.LevelState)
	state.SetCount(domain.FieldRowTotal, domain.CountOf(300))
	district := domain.NewCanonicalRow(endYear, domain.LevelDistrict)
	district.DistrictID = "01"
	district.DistrictName = "Allegany"
	district.SetCount(domain.FieldRowTotal, domain.CountOf(300))
	return []*domain.CanonicalRow{state, district}, nil
}

func (s *stubEnrollmentService) FetchEnrTidy(_ context.Context, endYear int, refresh bool) ([]domain.TidyRecord, error) {
	s.refreshSeen = refresh
	return []domain.TidyRecord{
		{EndYear: endYear, Level: domain.LevelState, Grade: domain.GradeTotal,
			Subgroup: domain.SubgroupTotal, Count: domain.CountOf(300), Pct: domain.CountOf(1)},
		{EndYear: endYear, Level: domain.LevelDistrict, DistrictID: "01", Grade: domain.GradeTotal,
			Subgroup: domain.SubgroupTotal, Count: domain.CountOf(300), Pct: domain.CountOf(1)},
	}, nil
}

func (s *stubEnrollmentService) AvailableYears() []int { return []int{2023, 2024} }

func (s *stubEnrollmentService) CachedYears() ([]int, error) { return []int{2024}, nil }

type stubHealthService struct{}

func (stubHealthService) Check(context.Context) services.HealthStatus {
	return services.HealthStatus{Status: "healthy"}
}

func testServer(t *testing.T, svc EnrollmentServiceInterface) *httptest.Server {
	t.Helper()
	router := NewRouter(RouterConfig{
		Enrollment: svc,
		Health:     stubHealthService{},
		Logger:     slog.Default(),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestGetEnrollment_Wide(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var body struct {
		EndYear    int                      `json:"end_year"`
		SchoolYear string                   `json:"school_year"`
		Format     string                   `json:"format"`
		Count      int                      `json:"count"`
		Rows       []map[string]interface{} `json:"rows"`
	}
	resp := getJSON(t, server.URL+"/api/enrollment/2024", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2024, body.EndYear)
	assert.Equal(t, "2023-24", body.SchoolYear)
	assert.Equal(t, "wide", body.Format)
	assert.Equal(t, 2, body.Count)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestGetEnrollment_TidyWithLevelFilter(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var body struct {
		Format  string `json:"format"`
		Count   int    `json:"count"`
		Records []struct {
			Level string `json:"aggregation_level"`
		} `json:"records"`
	}
	resp := getJSON(t, server.URL+"/api/enrollment/2024?format=tidy&level=District", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tidy", body.Format)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "District", body.Records[0].Level)
}

func TestGetEnrollment_RefreshFlag(t *testing.T) {
	svc := &stubEnrollmentService{}
	server := testServer(t, svc)

	var body map[string]interface{}
	getJSON(t, server.URL+"/api/enrollment/2024?refresh=true", &body)
	assert.True(t, svc.refreshSeen)
}

func TestGetEnrollment_BadYear(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	for _, path := range []string{"/api/enrollment/1999", "/api/enrollment/abc"} {
		var problem map[string]interface{}
		resp := getJSON(t, server.URL+path, &problem)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json", path)
	}
}

func TestGetEnrollment_BadLevel(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var problem map[string]interface{}
	resp := getJSON(t, server.URL+"/api/enrollment/2024?level=County", &problem)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEnrollment_DownloadFailureMapsToBadGateway(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{failYear: 2024})

	var problem map[string]interface{}
	resp := getJSON(t, server.URL+"/api/enrollment/2024", &problem)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestGetYears(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var body struct {
		Years  []int `json:"years"`
		Cached []int `json:"cached"`
	}
	resp := getJSON(t, server.URL+"/api/enrollment/years", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{2023, 2024}, body.Years)
	assert.Equal(t, []int{2024}, body.Cached)
}

func TestGetLSS(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var body struct {
		Count   int `json:"count"`
		Systems []struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"systems"`
	}
	resp := getJSON(t, server.URL+"/api/lss", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 24, body.Count)
	codes := make(map[string]bool)
	for _, s := range body.Systems {
		codes[s.Code] = true
		assert.NotEmpty(t, s.Name)
	}
	assert.Len(t, codes, 24)
}

func TestHealthz(t *testing.T) {
	server := testServer(t, &stubEnrollmentService{})

	var body struct {
		Status string `json:"status"`
	}
	resp := getJSON(t, server.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body.Status)
}
