package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	words := []vocab.Word{
		{ID: "w1", Word: "house", Translation: "dům", Unit: "1", Section: "A", Lang: "en"},
		{ID: "w2", Word: "tree", Translation: "strom", Unit: "1", Section: "B", Lang: "en"},
		{ID: "w3", Word: "Haus", Translation: "dům", Unit: "2", Section: "A", Lang: "de"},
	}
	if _, _, err := st.Words().Upsert(context.Background(), words); err != nil {
		t.Fatalf("seed words: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, logger, rand.New(rand.NewSource(1)))
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListWords(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/words?lang=en", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var words []vocab.Word
	if err := json.Unmarshal(rec.Body.Bytes(), &words); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	for _, w := range words {
		if w.Lang != "en" {
			t.Errorf("word %s has lang %q, want en", w.ID, w.Lang)
		}
	}
}

func TestListWordsUnitFilterAndLimit(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/words?unit=1&limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var words []vocab.Word
	if err := json.Unmarshal(rec.Body.Bytes(), &words); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Unit != "1" {
		t.Errorf("unit = %q, want 1", words[0].Unit)
	}
}

func TestListWordsBadLimit(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/words?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStructure(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/structure?lang=en", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var structure []store.UnitSections
	if err := json.Unmarshal(rec.Body.Bytes(), &structure); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(structure) != 1 {
		t.Fatalf("got %d units, want 1", len(structure))
	}
	if structure[0].Unit != "1" || len(structure[0].Sections) != 2 {
		t.Fatalf("structure = %+v, want unit 1 with 2 sections", structure[0])
	}
}

func TestLanguages(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/languages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var langs []string
	if err := json.Unmarshal(rec.Body.Bytes(), &langs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(langs) != 2 {
		t.Fatalf("got %d languages, want 2", len(langs))
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s := newTestServer(t)

	body := `{"deviceId":"CleverFox_a1b2","type":"marathon","score":8,"total":10,"mistakes":["w1","w2"]}`
	rec := doRequest(t, s, http.MethodPost, "/api/history", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("post status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var ack struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Success || ack.Count != 1 {
		t.Fatalf("ack = %+v, want success with count 1", ack)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var entries []store.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Score != 8 || entries[0].Total != 10 {
		t.Errorf("entry = %+v, want score 8 of 10", entries[0])
	}
	if len(entries[0].Mistakes) != 2 {
		t.Errorf("got %d mistakes, want 2", len(entries[0].Mistakes))
	}
}

func TestHistoryRejectsMissingType(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/history", `{"score":1,"total":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
