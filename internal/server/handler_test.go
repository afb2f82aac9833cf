// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scoresheet-engine/internal/tabular"
	"github.com/pdiddy/scoresheet-engine/internal/upload"
	"github.com/pdiddy/scoresheet-engine/pkg/types"
)

type fakeExtractor struct {
	tables []types.RawTable
	err    error
}

func (f *fakeExtractor) Extract(string) ([]types.RawTable, error) {
	return f.tables, f.err
}

var sampleTables = []types.RawTable{
	{
		Page: 1,
		Rows: [][]string{
			{"Group", "Round", "Competitor", "Judge", "Score"},
			{"A", "1", "Foo", "J1", "85"},
			{"A", "1", "Bar", "J1", "90"},
		},
	},
}

func newTestHandler(t *testing.T, ex tabular.Extractor) *Handler {
	t.Helper()
	return &Handler{
		Extractor: ex,
		Uploader:  upload.NewDirUploader(t.TempDir(), "http://localhost:8080/artifacts"),
		Fetch:     types.FetchConfig{WorkDir: t.TempDir()},
	}
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Attach(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func multipartRequest(t *testing.T, formats ...string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "contest.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	for _, f := range formats {
		require.NoError(t, mw.WriteField("formats", f))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleConvert(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})

	rec := serve(h, multipartRequest(t, "csv", "json", "bogus"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Contains(t, resp["csv_url"], "/artifacts/")
	assert.Contains(t, resp["csv_url"], "contest.csv")
	assert.Contains(t, resp["json_url"], "contest.json")
	assert.Equal(t, float64(2), resp["records"])
	assert.Equal(t, []any{"bogus"}, resp["skipped_formats"])
	assert.NotContains(t, resp, "failed_formats")
}

func TestHandleConvert_DefaultsToCSV(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})

	rec := serve(h, multipartRequest(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "csv_url")
	assert.NotContains(t, resp, "json_url")
}

func TestHandleConvert_OnlyInvalidFormats(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})

	rec := serve(h, multipartRequest(t, "bogus", "nope"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleConvert_NoInput(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})

	req := httptest.NewRequest(http.MethodPost, "/convert", nil)
	rec := serve(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleConvert_NoTables(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{err: tabular.ErrNoTables})

	rec := serve(h, multipartRequest(t, "csv"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no tabular data found")
}

func TestHandleConvert_BearerAuth(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})
	h.AuthToken = "sekrit"

	rec := serve(h, multipartRequest(t, "csv"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := multipartRequest(t, "csv")
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, &fakeExtractor{tables: sampleTables})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
