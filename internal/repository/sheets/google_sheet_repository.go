package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/config"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

const (
	movementsRange = "Movements!A:H"
	summariesRange = "Summaries!A:H"
	timeLayout     = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Repository defines the spreadsheet sync operations: every movement and every
// generated summary is mirrored as one row the back office can filter and
// export.
type Repository interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
	RecordMovement(ctx context.Context, rec models.MovementRecord) error
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
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
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// RecordMovement mirrors one movement record into the Movements sheet.
func (r *GoogleSheetRepository) RecordMovement(ctx context.Context, rec models.MovementRecord) error {
	values := []interface{}{
		rec.CreatedAt.Format(timeLayout),
		string(rec.Type),
		rec.OutletID,
		rec.ProductID,
		rec.Quantity,
		rec.Reference,
		rec.Reason,
		rec.ID,
	}
	return r.WriteRow(ctx, movementsRange, values)
}

// SaveDailySummary mirrors a generated summary into the Summaries sheet.
func (r *GoogleSheetRepository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	values := []interface{}{
		summary.Date.Format(dateLayout),
		summary.OutletID,
		summary.StockConsumed,
		summary.PendingPOCount,
		summary.WastageWeight,
		summary.WastageValue,
		string(summary.HygieneStatus),
		summary.LowStockProducts,
	}
	return r.WriteRow(ctx, summariesRange, values)
}
