package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/linkexec-go/pkg/linkexec"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer() http.Handler {
	return New(linkexec.DefaultConfig(), nil).Routes()
}

func uploadRequest(t *testing.T, name string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/plan", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodePlan(t *testing.T, rec *httptest.ResponseRecorder) planResponse {
	t.Helper()
	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPlanAndDownload(t *testing.T) {
	h := newTestServer()

	var tmpl bytes.Buffer
	require.NoError(t, render.WriteSampleTemplate(&tmpl))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "plan.xlsx", tmpl.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodePlan(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 19, resp.Total)
	require.Len(t, resp.Stats, 4)
	assert.Equal(t, statEntry{Activity: "Guest Blogging", Count: 3}, resp.Stats[0])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), linkexec.DefaultOutputName)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Execution List")
}

func TestPlanFailureClearsDownload(t *testing.T) {
	h := newTestServer()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "plan.csv", []byte("Keyword,URL,Web 2.0\nseo,https://x.com,1\n")))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	req := uploadRequest(t, "plan.csv", []byte("Activity,Count\nseo,3\n"))
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodePlan(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, string(linkexec.ReasonColumnNotFound), resp.Reason)
	assert.Equal(t, "Error: 'Keyword' or 'URL' column not found in Excel.", resp.Message)

	req = httptest.NewRequest(http.MethodGet, "/download", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanRejections(t *testing.T) {
	h := newTestServer()

	tests := []struct {
		name   string
		file   string
		data   string
		code   int
		reason linkexec.Reason
	}{
		{"empty result", "plan.csv", "Keyword,URL,Web 2.0\nseo,https://x.com,0\n", http.StatusUnprocessableEntity, linkexec.ReasonEmptyResult},
		{"empty input", "plan.csv", "", http.StatusUnprocessableEntity, linkexec.ReasonEmptyInput},
		{"too many tasks", "plan.csv", "Keyword,URL,Web 2.0\nseo,https://x.com,2000000\n", http.StatusUnprocessableEntity, linkexec.ReasonTooManyTasks},
		{"corrupt workbook", "plan.xlsx", "not a zip", http.StatusUnprocessableEntity, linkexec.ReasonInternal},
		{"bad extension", "plan.txt", "Keyword,URL", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, uploadRequest(t, tt.file, []byte(tt.data)))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, string(tt.reason), decodePlan(t, rec).Reason)
		})
	}
}

func TestDownloadWithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplateAndIndex(t *testing.T) {
	h := newTestServer()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/template", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), render.SampleTemplateName)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/plan"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

// fakeClock is a settable time source for session expiry.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newClockedServer(cfg *linkexec.Config) (*Server, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	s := New(cfg, nil)
	s.now = clock.now
	return s, clock
}

const okPlan = "Keyword,URL,Web 2.0\nseo,https://x.com,1\n"

func upload(t *testing.T, h http.Handler, data string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := uploadRequest(t, "plan.csv", []byte(data))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func downloadStatus(h http.Handler, cookie *http.Cookie) int {
	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestFailedUploadsCreateNoSession(t *testing.T) {
	s := New(linkexec.DefaultConfig(), nil)
	h := s.Routes()

	for i := 0; i < 20; i++ {
		rec := upload(t, h, "Activity,Count\nseo,3\n", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	}
	assert.Empty(t, s.sessions)

	rec := upload(t, h, okPlan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Len(t, s.sessions, 1)
}

func TestSessionReusedAcrossUploads(t *testing.T) {
	s := New(linkexec.DefaultConfig(), nil)
	h := s.Routes()

	rec := upload(t, h, okPlan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	rec = upload(t, h, okPlan, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Len(t, s.sessions, 1)
}

func TestIdleSessionEvicted(t *testing.T) {
	s, clock := newClockedServer(linkexec.DefaultConfig())
	h := s.Routes()

	rec := upload(t, h, okPlan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	clock.advance(20 * time.Minute)
	assert.Equal(t, http.StatusOK, downloadStatus(h, cookie))

	// The download above refreshed the session.
	clock.advance(20 * time.Minute)
	assert.Equal(t, http.StatusOK, downloadStatus(h, cookie))

	clock.advance(31 * time.Minute)
	assert.Equal(t, http.StatusNotFound, downloadStatus(h, cookie))
	assert.Empty(t, s.sessions)
}

func TestMaxSessionsEvictsLeastRecentlyUsed(t *testing.T) {
	cfg := linkexec.DefaultConfig()
	cfg.MaxSessions = 2
	s, clock := newClockedServer(cfg)
	h := s.Routes()

	var cookies []*http.Cookie
	for i := 0; i < 3; i++ {
		rec := upload(t, h, okPlan, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		cookies = append(cookies, rec.Result().Cookies()[0])
		clock.advance(time.Second)
	}

	assert.Len(t, s.sessions, 2)
	assert.Equal(t, http.StatusNotFound, downloadStatus(h, cookies[0]))
	assert.Equal(t, http.StatusOK, downloadStatus(h, cookies[1]))
	assert.Equal(t, http.StatusOK, downloadStatus(h, cookies[2]))
}
