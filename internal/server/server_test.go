package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/mapview"
	"github.com/rainwise/web-go/internal/observability"
	"github.com/rainwise/web-go/internal/session"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/station"
)

type stubSubmitter struct {
	result *signup.Result
	err    error
	forms  []signup.Form
}

func (s *stubSubmitter) Submit(ctx context.Context, f signup.Form) (*signup.Result, error) {
	s.forms = append(s.forms, f)
	if errs := signup.Validate(f); len(errs) > 0 {
		return nil, &signup.ValidationError{Fields: errs}
	}
	return s.result, s.err
}

type testServer struct {
	*Server
	submitter *stubSubmitter
	metrics   *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	finder := station.NewFinder(nil, nil)
	metrics := observability.NewMetricsForTesting()
	submitter := &stubSubmitter{result: &signup.Result{Redirect: signup.LoginRedirect}}

	srv, err := New(":0", Deps{
		Finder:   finder,
		Signup:   submitter,
		Sessions: session.NewStore(finder, 10, time.Hour, session.WithRedrawHook(metrics.ObserveRedraw)),
		Metrics:  metrics,
		Tiles:    mapview.NewTileSource("", ""),
	})
	require.NoError(t, err)
	return &testServer{Server: srv, submitter: submitter, metrics: metrics}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRequestIDAndVisitor(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), visitorCookie+"=")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: "returning"})
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestRequestMetrics(t *testing.T) {
	srv := newTestServer(t)

	srv.do(http.MethodGet, "/api/states", "")
	srv.do(http.MethodGet, "/api/states", "")

	assert.InDelta(t, 2, testutil.ToFloat64(srv.metrics.HTTPRequests.WithLabelValues("/api/states", "GET", "200")), 0)
}

func TestPagesRender(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Every roof can catch the rain"},
		{"/signup", `name="confirmPassword"`},
		{"/login", "Sign in"},
		{"/map", `data-tile-template="https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`},
		{"/states", "Maharashtra"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := srv.do(http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/static/js/map.js", "/static/js/sparks.js", "/static/js/spotlight.js", "/static/js/signup.js", "/static/css/site.css"} {
		rec := srv.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/static/missing.js", "").Code)
}

func TestStationsAPI(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/stations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all api.StationsResponse
	decode(t, rec, &all)
	assert.Len(t, all.Stations, 30)
	assert.Equal(t, "Delhi", all.Stations[0].Name)

	rec = srv.do(http.MethodGet, "/api/stations?lat=19.0760&lon=72.8777&limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var near api.StationsResponse
	decode(t, rec, &near)
	require.Len(t, near.Stations, 3)
	assert.Equal(t, "Mumbai", near.Stations[0].Name)

	rec = srv.do(http.MethodGet, "/api/stations?lat=abc&lon=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStationByID(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/stations/st-02", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.StationsResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Stations, 1)
	assert.Equal(t, "Mumbai", resp.Stations[0].Name)

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/stations/st-99", "").Code)
}

func TestNearestAPI(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/stations/nearest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"responseType":"nearest","nearest":null}`, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/stations/nearest?lat=15.4909&lon=73.8278", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.NearestResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Nearest)
	assert.Equal(t, "Pune", resp.Nearest.Station.Name)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/api/stations/nearest?lat=95&lon=10", "").Code)
}

func TestStatesAPI(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/states", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all api.StatesResponse
	decode(t, rec, &all)
	assert.NotEmpty(t, all.States)

	rec = srv.do(http.MethodGet, "/api/states/"+url.PathEscape("Tamil Nadu"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one api.StateResponse
	decode(t, rec, &one)
	assert.Equal(t, "Tamil Nadu", one.State.Name)
	assert.NotEmpty(t, one.State.URL)

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/states/Atlantis", "").Code)
}

func validSignupJSON() string {
	return `{"firstName":"Asha","lastName":"Rao","username":"asharao","email":"asha@example.in",` +
		`"password":"secret1","confirmPassword":"secret1","acceptTerms":true}`
}

func TestSignupAPI(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/signup", validSignupJSON())
	require.Equal(t, http.StatusOK, rec.Code)
	var ok api.SignupResponse
	decode(t, rec, &ok)
	assert.Equal(t, "/login", ok.Redirect)

	rec = srv.do(http.MethodPost, "/api/signup", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var invalid api.ErrorResponse
	decode(t, rec, &invalid)
	assert.Len(t, invalid.Fields, 6)

	srv.submitter.err = &signup.RejectedError{Status: http.StatusBadRequest, Detail: "Email already registered"}
	srv.submitter.result = nil
	rec = srv.do(http.MethodPost, "/api/signup", validSignupJSON())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var rejected api.ErrorResponse
	decode(t, rec, &rejected)
	assert.Equal(t, "Email already registered", rejected.Error)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/api/signup", `not json`).Code)

	outcomes := srv.metrics.SignupOutcomes
	assert.InDelta(t, 1, testutil.ToFloat64(outcomes.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(outcomes.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(outcomes.WithLabelValues("rejected")), 0)
}

func postForm(srv *testServer, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSignupFormRedirects(t *testing.T) {
	srv := newTestServer(t)

	rec := postForm(srv, url.Values{
		"firstName":       {"Asha"},
		"lastName":        {"Rao"},
		"username":        {"asharao"},
		"email":           {"asha@example.in"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
		"acceptTerms":     {"on"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?registered=1", rec.Header().Get("Location"))
	require.Len(t, srv.submitter.forms, 1)
	assert.True(t, srv.submitter.forms[0].AcceptTerms)
}

func TestLoginShowsRegisteredNotice(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/login?registered=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your account was created")

	rec = srv.do(http.MethodGet, "/login", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Your account was created")
}

func TestSignupFormShowsErrors(t *testing.T) {
	srv := newTestServer(t)

	rec := postForm(srv, url.Values{
		"firstName":       {"Asha"},
		"username":        {"ab"},
		"email":           {"not-an-email"},
		"password":        {"abcdef"},
		"confirmPassword": {"abcdee"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Username must be at least 3 characters")
	assert.Contains(t, body, "Please enter a valid email address")
	assert.Contains(t, body, "Passwords do not match")
	assert.Contains(t, body, `value="Asha"`)
	assert.NotContains(t, body, "abcdef")
}

func TestSignupFormUnreachable(t *testing.T) {
	srv := newTestServer(t)
	srv.submitter.result = nil
	srv.submitter.err = &signup.UnreachableError{}

	rec := postForm(srv, url.Values{
		"firstName":       {"Asha"},
		"lastName":        {"Rao"},
		"username":        {"asharao"},
		"email":           {"asha@example.in"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
		"acceptTerms":     {"on"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), signup.NetworkErrorMessage)
}

func TestTilesAPI(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/map/tiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tiles mapview.TileSource
	decode(t, rec, &tiles)
	assert.Equal(t, config.DefaultTileURL, tiles.URLTemplate)
}
