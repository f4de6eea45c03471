package httpgw

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/version"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL:      srv.URL + "/api/",
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com", "http://"} {
		_, err := New(Options{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestFetchPageEncodesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/students", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "lastName", q.Get("sortColumn"))
		assert.Equal(t, "asc", q.Get("sortDirection"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "5", q.Get("pageSize"))

		var filters []domain.Filter
		require.NoError(t, json.Unmarshal([]byte(q.Get("filters")), &filters))
		assert.Equal(t, []domain.Filter{
			{Field: "firstName", Operator: domain.OpContains, Value: "an"},
			{Field: "studentEmail", Operator: domain.OpEndsWith, Value: ".edu"},
		}, filters)

		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id should be a uuid")
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))

		writeJSON(t, w, map[string]any{
			"students": []map[string]any{
				{"studentId": 6, "studentSchoolId": "S105", "firstName": "Fabio", "lastName": "Ferreira", "studentEmail": "f@x.edu"},
			},
			"totalStudents": 12,
		})
	})

	filters := domain.FilterSpec{}
	filters.Set(domain.Filter{Field: "studentEmail", Operator: domain.OpEndsWith, Value: ".edu"})
	filters.Set(domain.Filter{Field: "firstName", Operator: domain.OpContains, Value: "an"})
	page, err := c.FetchPage(context.Background(), domain.Query{
		Sort:    domain.DefaultStudentSort(),
		Filters: filters,
		Window:  domain.PageWindow{Index: 1, Size: 5},
	})
	require.NoError(t, err)

	want := domain.Page[domain.Student]{
		Rows:  []domain.Student{{ID: 6, SchoolID: "S105", FirstName: "Fabio", LastName: "Ferreira", Email: "f@x.edu"}},
		Total: 12,
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPageOmitsInactiveSortAndEmptyFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("sortColumn"))
		assert.False(t, q.Has("filters"))
		writeJSON(t, w, map[string]any{"totalStudents": 0})
	})

	page, err := c.FetchPage(context.Background(), domain.Query{Window: domain.PageWindow{Size: 5}})
	require.NoError(t, err)
	assert.NotNil(t, page.Rows)
	assert.Empty(t, page.Rows)
}

func TestFetchDetails(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/students/7/details", r.URL.Path)
		assert.Equal(t, "termCreatedDate", r.URL.Query().Get("sortColumn"))
		assert.Equal(t, "desc", r.URL.Query().Get("sortDirection"))
		writeJSON(t, w, map[string]any{
			"details":      []domain.StudentDetail{{ID: 1, StudentID: 7, Term: "2024-1", Course: "Physics", Grade: "A", TermCreatedDate: created}},
			"totalDetails": 1,
		})
	})

	page, err := c.FetchDetails(context.Background(), 7, domain.DefaultDetailSort(), domain.PageWindow{Size: 5})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.True(t, created.Equal(page.Rows[0].TermCreatedDate))
}

func TestMutationsSendExpectedRequests(t *testing.T) {
	type seen struct {
		method, path, body string
	}
	var got []seen
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got = append(got, seen{r.Method, r.URL.Path, string(data)})
		writeJSON(t, w, gateway.OK())
	})
	ctx := context.Background()
	s := domain.Student{ID: 7, SchoolID: "S100", FirstName: "Ana", LastName: "Almeida", Email: "a@x.io"}

	for _, call := range []func() (gateway.Result, error){
		func() (gateway.Result, error) { return c.Create(ctx, s) },
		func() (gateway.Result, error) { return c.Update(ctx, s) },
		func() (gateway.Result, error) { return c.Delete(ctx, 7) },
		func() (gateway.Result, error) { return c.DeleteMany(ctx, []int{1, 2}) },
	} {
		res, err := call()
		require.NoError(t, err)
		assert.True(t, res.Success)
	}

	studentJSON := `{"studentId":7,"studentSchoolId":"S100","firstName":"Ana","lastName":"Almeida","studentEmail":"a@x.io"}`
	want := []seen{
		{http.MethodPost, "/api/students", studentJSON},
		{http.MethodPut, "/api/students/7", studentJSON},
		{http.MethodDelete, "/api/students/7", ""},
		{http.MethodPost, "/api/students/delete", `{"studentIds":[1,2]}`},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(seen{})); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckUniqueSchoolIDBusinessFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/students/validate-school-id", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("studentId"))
		assert.Equal(t, "S100", r.URL.Query().Get("studentSchoolId"))
		writeJSON(t, w, map[string]any{"success": false, "error": "ID already in use"})
	})

	res, err := c.CheckUniqueSchoolID(context.Background(), 7, "S100")
	require.NoError(t, err)
	assert.Equal(t, gateway.Fail("ID already in use"), res)
}

func TestReadsAreRetried(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, map[string]any{"students": []any{}, "totalStudents": 0})
	})

	_, err := c.FetchPage(context.Background(), domain.Query{Window: domain.PageWindow{Size: 5}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestMutationsAreNotRetried(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, gateway.IsTransport(err))
	assert.EqualValues(t, 1, attempts.Load())

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusInternalServerError, status.Code)
	assert.Equal(t, "boom", status.Body)
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) }},
		{"empty body", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.CheckUniqueSchoolID(context.Background(), domain.NewStudentID, "S1")
			require.Error(t, err)
			var te *gateway.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, gateway.OpCheckSchoolID, te.Op)
		})
	}
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, RetryMax: 0})
	require.NoError(t, err)
	_, err = c.FetchPage(context.Background(), domain.Query{Window: domain.PageWindow{Size: 5}})
	assert.True(t, gateway.IsTransport(err))
}
