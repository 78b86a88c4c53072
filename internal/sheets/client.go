package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Config carries everything needed to reach one spreadsheet.
type Config struct {
	// CredentialsJSON is the raw service-account key file.
	CredentialsJSON []byte
	// SpreadsheetURL locates the spreadsheet, e.g.
	// https://docs.google.com/spreadsheets/d/<id>/edit#gid=0
	SpreadsheetURL string
}

// Client is an authenticated handle to a single spreadsheet.
type Client struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

var (
	connectOnce sync.Once
	connected   *Client
	connectErr  error
)

// Connect authenticates against the remote store and returns a handle bound
// to the configured spreadsheet. The handle is memoized for the life of the
// process; every call after the first returns the same handle (or the same
// failure) regardless of cfg. Expired tokens are not refreshed proactively:
// a stale-credential reject surfaces as a normal operation error.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	connectOnce.Do(func() {
		connected, connectErr = dial(ctx, cfg)
	})
	return connected, connectErr
}

// serviceAccount mirrors the fields of a service-account key file we require
// before handing the bundle to the token source.
type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

func dial(ctx context.Context, cfg Config) (*Client, error) {
	id, err := ParseSpreadsheetURL(cfg.SpreadsheetURL)
	if err != nil {
		return nil, err
	}

	var sa serviceAccount
	if err := json.Unmarshal(cfg.CredentialsJSON, &sa); err != nil {
		return nil, fmt.Errorf("%w: credentials are not valid JSON: %v", ErrAuth, err)
	}
	switch {
	case sa.Type != "service_account":
		return nil, fmt.Errorf("%w: credential type %q, want service_account", ErrAuth, sa.Type)
	case sa.PrivateKey == "", sa.ClientEmail == "", sa.TokenURI == "":
		return nil, fmt.Errorf("%w: credentials missing private_key, client_email or token_uri", ErrAuth)
	}

	creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, sheetsv4.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	svc, err := sheetsv4.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	zap.S().Infow("sheets client connected", "spreadsheet_id", id, "client_email", sa.ClientEmail)
	return &Client{svc: svc, spreadsheetID: id}, nil
}

var spreadsheetURLRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ParseSpreadsheetURL extracts the spreadsheet ID from a docs URL.
func ParseSpreadsheetURL(url string) (string, error) {
	m := spreadsheetURLRe.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: locator %q is not a spreadsheet URL", ErrAuth, url)
	}
	return m[1], nil
}

// GetValues implements API.
func (c *Client) GetValues(ctx context.Context, worksheet string) ([][]interface{}, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(err)
	}
	return vr.Values, nil
}

// AppendRow implements API. RAW keeps the store from reinterpreting the
// comma-decimal price text as a formula or date.
func (c *Client) AppendRow(ctx context.Context, worksheet string, row []interface{}) error {
	body := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, worksheet, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return mapAPIError(err)
	}
	return nil
}

// SheetTitles implements API.
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}
