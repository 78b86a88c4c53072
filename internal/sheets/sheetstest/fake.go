// Package sheetstest provides an in-memory sheets.API for tests.
package sheetstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
)

// Fake implements sheets.API against an in-memory grid per worksheet.
// A worksheet that was never seeded behaves as missing. Err, when set,
// is returned by every call until cleared.
type Fake struct {
	mu         sync.Mutex
	worksheets map[string][][]interface{}
	Err        error
	GetCalls   map[string]int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		worksheets: make(map[string][][]interface{}),
		GetCalls:   make(map[string]int),
	}
}

// Seed replaces the named worksheet's grid.
func (f *Fake) Seed(worksheet string, rows [][]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.worksheets[worksheet] = rows
}

// Rows returns the current grid of the named worksheet.
func (f *Fake) Rows(worksheet string) [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.worksheets[worksheet]
}

// GetValues implements sheets.API.
func (f *Fake) GetValues(_ context.Context, worksheet string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls[worksheet]++
	if f.Err != nil {
		return nil, f.Err
	}
	rows, ok := f.worksheets[worksheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, worksheet)
	}
	out := make([][]interface{}, len(rows))
	copy(out, rows)
	return out, nil
}

// AppendRow implements sheets.API.
func (f *Fake) AppendRow(_ context.Context, worksheet string, row []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.worksheets[worksheet]; !ok {
		return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, worksheet)
	}
	f.worksheets[worksheet] = append(f.worksheets[worksheet], row)
	return nil
}

// SheetTitles implements sheets.API.
func (f *Fake) SheetTitles(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	titles := make([]string, 0, len(f.worksheets))
	for name := range f.worksheets {
		titles = append(titles, name)
	}
	return titles, nil
}
