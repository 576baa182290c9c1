package repositories

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/sheets/v4"

	"github.com/blogem/campus-feedback/models"
)

// sheetsFeedbackRepository stores one record per spreadsheet row using the
// six-column layout of models.FeedbackRowHeader. Rows carry no ID.
type sheetsFeedbackRepository struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string

	headerMu      sync.Mutex
	headerChecked bool
}

// NewSheetsFeedbackRepository creates a feedback repository on a Google spreadsheet
func NewSheetsFeedbackRepository(service *sheets.Service, spreadsheetID, readRange string) FeedbackRepository {
	return &sheetsFeedbackRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

// Append adds the record as a new row, writing the header first on an empty sheet
func (r *sheetsFeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if err := r.ensureHeader(ctx); err != nil {
		return err
	}

	if err := r.appendRow(ctx, record.Row()); err != nil {
		return fmt.Errorf("failed to append feedback row: %w", err)
	}
	return nil
}

// List reads all rows, skipping the header
func (r *sheetsFeedbackRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}

	var records []models.FeedbackRecord
	for i, row := range rows {
		if i == 0 && models.IsHeaderRow(row) {
			continue
		}
		record, err := models.ParseFeedbackRow(row)
		if err != nil {
			return nil, fmt.Errorf("invalid feedback row %d: %w", i+1, err)
		}
		records = append(records, *record)
	}

	return records, nil
}

func (r *sheetsFeedbackRepository) ensureHeader(ctx context.Context) error {
	r.headerMu.Lock()
	defer r.headerMu.Unlock()

	if r.headerChecked {
		return nil
	}

	rows, err := r.readRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to read feedback rows: %w", err)
	}
	if len(rows) == 0 {
		if err := r.appendRow(ctx, models.FeedbackRowHeader); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
	}

	r.headerChecked = true
	return nil
}

func (r *sheetsFeedbackRepository) appendRow(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := r.service.Spreadsheets.Values.
		Append(r.spreadsheetID, r.readRange, &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (r *sheetsFeedbackRepository) readRows(ctx context.Context) ([][]string, error) {
	resp, err := r.service.Spreadsheets.Values.
		Get(r.spreadsheetID, r.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
