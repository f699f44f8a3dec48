package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/maplink"
	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
	"github.com/DivineRock/ffxiv-coord-importer/internal/resolver"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

func testServer(t *testing.T, withStore bool) *Server {
	t.Helper()

	tables := []model.LanguageTable{
		{Language: "en", Rows: []model.PlaceNameRow{
			{Name: "Labyrinthos", LocationID: 100, RegionID: 7},
			{Name: "Yanxia", LocationID: 42, RegionID: 3},
			{Name: "Yanxia", LocationID: 43, RegionID: 3},
		}},
	}
	b := catalog.NewBuilder(nil)
	for _, row := range tables[0].Rows {
		b.Add("en", row)
	}
	c := b.Finalize()

	srv := &Server{
		Importer: resolver.NewImporter(&resolver.Resolver{
			Catalog:  c,
			Renderer: maplink.TextRenderer{Names: c, Language: "en"},
		}, nil),
		Catalog: c,
		Addr:    "localhost:0",
	}

	if withStore {
		s, err := store.New(t.TempDir(), "sqlite")
		require.NoError(t, err, "creating store")
		t.Cleanup(func() { s.Close() })
		require.NoError(t, s.WriteLanguageTable(tables[0], "test"))
		srv.Store = s
	}

	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleImport_PlainText(t *testing.T) {
	srv := testServer(t, false)

	body := "Labyrinthos ( 16.5 , 16.8 ) Storsie\nnot a sighting\nGarlemald ( 1 , 2 ) Minerva"
	w := do(t, srv, httptest.NewRequest("POST", "/api/import", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var res resolver.ImportResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	require.Len(t, res.Outputs, 2)
	assert.Equal(t, "\ue0bbLabyrinthos ( 16.5 , 16.8 ) (Storsie)", res.Outputs[0].Text)
	assert.True(t, res.Outputs[0].Resolved)
	assert.Equal(t, uint32(100), res.Outputs[0].LocationID)
	assert.False(t, res.Outputs[1].Resolved)
	assert.Equal(t, 1, res.Stats.Unrecognized)
}

func TestHandleImport_JSON(t *testing.T) {
	srv := testServer(t, false)

	payload, _ := json.Marshal(map[string]string{"text": "Raiden [S]: Gamma - Yanxia ( 23.6, 11.4 )"})
	req := httptest.NewRequest("POST", "/api/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := do(t, srv, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res resolver.ImportResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "Gamma", res.Outputs[0].Mark)
	assert.Equal(t, uint32(42), res.Outputs[0].LocationID)
}

func TestHandleImport_BadJSON(t *testing.T) {
	srv := testServer(t, false)

	req := httptest.NewRequest("POST", "/api/import", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, srv, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImport_TextFormat(t *testing.T) {
	srv := testServer(t, false)

	w := do(t, srv, httptest.NewRequest("POST", "/api/import?format=text",
		strings.NewReader("Labyrinthos ( NOT AVAILABLE ) Storsie\r\nLabyrinthos 2 ( 1 , 2 ) Storsie")))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\ue0bbLabyrinthos\ue0b2 ( 1.0 , 2.0 ) (Storsie)\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandleImport_BodyErrors(t *testing.T) {
	srv := testServer(t, false)

	w := do(t, srv, httptest.NewRequest("POST", "/api/import", strings.NewReader(strings.Repeat("x", maxImportBytes+1))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = do(t, srv, httptest.NewRequest("POST", "/api/import", failingReader{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImport_MethodNotAllowed(t *testing.T) {
	srv := testServer(t, false)

	w := do(t, srv, httptest.NewRequest("GET", "/api/import", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleLocations(t *testing.T) {
	srv := testServer(t, false)

	w := do(t, srv, httptest.NewRequest("GET", "/api/locations?name=Yanxia", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var loc model.Location
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loc))
	assert.Equal(t, uint32(42), loc.ID)
	assert.Equal(t, "Yanxia", loc.Names["en"])

	w = do(t, srv, httptest.NewRequest("GET", "/api/locations?name=Nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, httptest.NewRequest("GET", "/api/locations", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t, true)

	w := do(t, srv, httptest.NewRequest("GET", "/api/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, catalogStatus{Names: 2, Locations: 2, Collisions: 1}, resp.Catalog)
	require.Len(t, resp.Store, 1)
	assert.Equal(t, "en", resp.Store[0].Language)
	assert.Equal(t, 3, resp.Store[0].Rows)
}

func TestRequestID(t *testing.T) {
	srv := testServer(t, false)

	w := do(t, srv, httptest.NewRequest("GET", "/api/status", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/status", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = do(t, srv, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRecoveryAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Chain(Recovery(logger), RequestID, Logger(logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mw("a"), mw("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}
