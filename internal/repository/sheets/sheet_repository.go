package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/dairydesk/internal/config"
)

// Repository is the sink the daily report job appends summary rows to.
type Repository interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API. One spreadsheet range receives one row per report run.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.ReportingConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

// AppendRow appends the provided values to the configured report range.
func (r *GoogleSheetRepository) AppendRow(ctx context.Context, values []interface{}) error {
	if r.sheetRange == "" {
		return fmt.Errorf("sheet range must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("report row appended", zap.String("range", r.sheetRange))
	return nil
}
