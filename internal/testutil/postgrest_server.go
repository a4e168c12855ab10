// Package testutil holds an in-memory PostgREST stand-in for tests that exercise the real HTTP client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

const restPrefix = "/rest/v1/"

// PostgRESTServer serves one or more tables with the subset of PostgREST the store uses:
// select=* with eq filters, insert, and update/delete by id=eq.
type PostgRESTServer struct {
	*httptest.Server

	apiKey string

	mu       sync.Mutex
	tables   map[string]map[int64]map[string]any
	nextID   int64
	failures map[string][]injectedFailure
	calls    map[string]int
	last     map[string]http.Header
}

type injectedFailure struct {
	status  int
	message string
}

// NewPostgRESTServer starts a server that requires apiKey on every request.
func NewPostgRESTServer(apiKey string) *PostgRESTServer {
	s := &PostgRESTServer{
		apiKey:   apiKey,
		tables:   make(map[string]map[int64]map[string]any),
		failures: make(map[string][]injectedFailure),
		calls:    make(map[string]int),
		last:     make(map[string]http.Header),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// FailNext makes the next request with method answer status. An empty message sends a body without one.
func (s *PostgRESTServer) FailNext(method string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], injectedFailure{status: status, message: message})
}

// Calls returns how many requests with method reached the server.
func (s *PostgRESTServer) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of requests of any method.
func (s *PostgRESTServer) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// LastHeader returns the headers of the latest request with method.
func (s *PostgRESTServer) LastHeader(method string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[method].Clone()
}

// Seed inserts rows directly and returns their ids.
func (s *PostgRESTServer) Seed(table string, rows ...map[string]any) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, s.insertLocked(table, row)[0]["id"].(int64))
	}
	return ids
}

// Rows returns a snapshot of table ordered by id.
func (s *PostgRESTServer) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(table, nil)
}

func (s *PostgRESTServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[r.Method]++
	s.last[r.Method] = r.Header.Clone()

	if r.Header.Get("apikey") != s.apiKey || r.Header.Get("Authorization") != "Bearer "+s.apiKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid API key"})
		return
	}
	if queue := s.failures[r.Method]; len(queue) > 0 {
		failure := queue[0]
		s.failures[r.Method] = queue[1:]
		body := map[string]any{"code": "XX000"}
		if failure.message != "" {
			body["message"] = failure.message
		}
		writeJSON(w, failure.status, body)
		return
	}

	table, ok := strings.CutPrefix(r.URL.Path, restPrefix)
	if !ok || table == "" || strings.Contains(table, "/") {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown relation"})
		return
	}

	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if key == "select" || len(values) == 0 {
			continue
		}
		value, found := strings.CutPrefix(values[0], "eq.")
		if !found {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "unsupported operator " + values[0]})
			return
		}
		filters[key] = value
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.selectLocked(table, filters))
	case http.MethodPost:
		var row map[string]any
		if err := jsoniter.NewDecoder(r.Body).Decode(&row); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, s.insertLocked(table, row))
	case http.MethodPatch:
		var patch map[string]any
		if err := jsoniter.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, s.updateLocked(table, filters, patch))
	case http.MethodDelete:
		s.deleteLocked(table, filters)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	}
}

func (s *PostgRESTServer) insertLocked(table string, row map[string]any) []map[string]any {
	rows := s.tables[table]
	if rows == nil {
		rows = make(map[int64]map[string]any)
		s.tables[table] = rows
	}
	s.nextID++
	stored := make(map[string]any, len(row)+1)
	for key, value := range row {
		stored[key] = value
	}
	stored["id"] = s.nextID
	rows[s.nextID] = stored
	return []map[string]any{copyRow(stored)}
}

func (s *PostgRESTServer) selectLocked(table string, filters map[string]string) []map[string]any {
	rows := s.tables[table]
	ids := make([]int64, 0, len(rows))
	for rowID, row := range rows {
		if matches(row, filters) {
			ids = append(ids, rowID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]map[string]any, 0, len(ids))
	for _, rowID := range ids {
		out = append(out, copyRow(rows[rowID]))
	}
	return out
}

func (s *PostgRESTServer) updateLocked(table string, filters map[string]string, patch map[string]any) []map[string]any {
	out := make([]map[string]any, 0, 1)
	for _, row := range s.tables[table] {
		if !matches(row, filters) {
			continue
		}
		for key, value := range patch {
			if key == "id" {
				continue
			}
			row[key] = value
		}
		out = append(out, copyRow(row))
	}
	return out
}

func (s *PostgRESTServer) deleteLocked(table string, filters map[string]string) {
	rows := s.tables[table]
	for rowID, row := range rows {
		if matches(row, filters) {
			delete(rows, rowID)
		}
	}
}

func matches(row map[string]any, filters map[string]string) bool {
	for column, want := range filters {
		if formatCell(row[column]) != want {
			return false
		}
	}
	return true
}

func formatCell(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		encoded, _ := jsoniter.MarshalToString(typed)
		return encoded
	}
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for key, value := range row {
		out[key] = value
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsoniter.NewEncoder(w).Encode(body)
}
