package sheets

import "context"

// API is the subset of spreadsheet operations the stores depend on.
// Concrete calls go through Client; tests substitute an in-memory fake.
type API interface {
	// GetValues returns every row of the named worksheet, header included.
	// A missing worksheet yields ErrWorksheetNotFound.
	GetValues(ctx context.Context, worksheet string) ([][]interface{}, error)
	// AppendRow appends a single row after the last data row of the worksheet.
	AppendRow(ctx context.Context, worksheet string, row []interface{}) error
	// SheetTitles lists the worksheet names present in the spreadsheet.
	SheetTitles(ctx context.Context) ([]string, error)
}
