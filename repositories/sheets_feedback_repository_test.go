package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets serves the two Values endpoints used by the repository
type fakeSheets struct {
	mu   sync.Mutex
	rows [][]interface{}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var body sheets.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, body.Values...)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "sheet-id"})
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"range":          "Sheet1!A1:F100",
			"majorDimension": "ROWS",
			"values":         f.rows,
		})
	default:
		http.NotFound(w, r)
	}
}

func newTestSheetsRepository(t *testing.T, fake *fakeSheets) FeedbackRepository {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	return NewSheetsFeedbackRepository(service, "sheet-id", "Sheet1!A:F")
}

func TestSheetsFeedbackRepository(t *testing.T) {
	fake := &fakeSheets{}
	repo := newTestSheetsRepository(t, fake)

	testFeedbackRepositoryContract(t, repo, false)

	// Header row first, then one six-column row per record
	require.Len(t, fake.rows, 5)
	require.Equal(t, []interface{}{"name", "category", "feedback", "sentiment", "confidence", "timestamp"}, fake.rows[0])
	require.Equal(t, []interface{}{"Priya", "Library", "Great library hours!", "Positive", "0.5", "2025-03-14 09:26:53"}, fake.rows[1])
}

func TestSheetsFeedbackRepository_InvalidRow(t *testing.T) {
	fake := &fakeSheets{rows: [][]interface{}{
		{"name", "category", "feedback", "sentiment", "confidence", "timestamp"},
		{"Priya", "Library", "ok", "Positive"},
	}}
	repo := newTestSheetsRepository(t, fake)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2")
}
