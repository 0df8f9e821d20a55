package msglog

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetAppendRange = "シート1!A1"

// SheetsLogger appends message rows to a Google Spreadsheet.
// 行の形式は [timestamp, userId, message]。
type SheetsLogger struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsLogger creates a SheetsLogger from service account credentials JSON
func NewSheetsLogger(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsLogger, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("Sheetsサービス作成エラー: %w", err)
	}

	return &SheetsLogger{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append adds one log row to the spreadsheet
func (l *SheetsLogger) Append(ctx context.Context, userID, message string) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{
			{time.Now().Format(time.RFC3339), userID, message},
		},
	}

	_, err := l.service.Spreadsheets.Values.
		Append(l.spreadsheetID, sheetAppendRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("スプレッドシートへのデータ追加エラー: %w", err)
	}

	return nil
}

// Close cleans up resources
func (l *SheetsLogger) Close() error {
	return nil
}
