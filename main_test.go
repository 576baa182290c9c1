package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/config"
	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/server"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	exportOut = ""
	exportSentiments = nil
	exportCategories = nil
	verbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setStoreEnv(t *testing.T, store, path string) {
	t.Helper()
	t.Setenv("STORE", store)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("CLASSIFIER", "lexicon")
	t.Setenv("LOG_LEVEL", "error")
}

func seedSQLite(t *testing.T, records ...models.FeedbackRecord) {
	t.Helper()

	c, err := config.Load()
	require.NoError(t, err)

	repos, closeStore, err := server.OpenRepositories(context.Background(), c, zap.NewNop())
	require.NoError(t, err)
	defer closeStore()

	for i := range records {
		require.NoError(t, repos.Feedback.Append(context.Background(), &records[i]))
	}
}

func TestClassifyCommand(t *testing.T) {
	setStoreEnv(t, "memory", "")

	out, err := runCommand(t, "classify", "The", "food", "quality", "is", "terrible")
	require.NoError(t, err)
	assert.Equal(t, "Negative 😞 -0.6\n", out)

	out, err = runCommand(t, "classify", "Great library hours!")
	require.NoError(t, err)
	assert.Equal(t, "Positive 😊 0.5\n", out)
}

func TestClassifyCommand_RequiresText(t *testing.T) {
	setStoreEnv(t, "memory", "")

	_, err := runCommand(t, "classify")
	assert.Error(t, err)
}

func TestSummaryCommand_EmptyStore(t *testing.T) {
	setStoreEnv(t, "memory", "")

	out, err := runCommand(t, "summary")
	require.NoError(t, err)

	var summary models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 0, summary.Total)
}

func TestExportAndSummaryCommands_SQLite(t *testing.T) {
	dir := t.TempDir()
	setStoreEnv(t, "sqlite", filepath.Join(dir, "feedback.db"))

	day := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	seedSQLite(t,
		models.FeedbackRecord{Name: "Anonymous", Category: models.CategoryFood, Text: "The food quality is terrible", Sentiment: models.SentimentNegative, Score: -0.6, Timestamp: day},
		models.FeedbackRecord{Name: "Sam", Category: models.CategoryLibrary, Text: "Great library hours!", Sentiment: models.SentimentPositive, Score: 0.5, Timestamp: day.Add(time.Hour)},
	)

	outFile := filepath.Join(dir, "export.csv")
	_, err := runCommand(t, "export", "--out", outFile, "--sentiment", "Negative")
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "category", "feedback", "sentiment", "confidence", "timestamp"}, rows[0])
	assert.Equal(t, []string{"Anonymous", "Food", "The food quality is terrible", "Negative", "-0.6", "2025-03-14 09:30:00"}, rows[1])

	out, err := runCommand(t, "summary")
	require.NoError(t, err)

	var summary models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Total)
}
