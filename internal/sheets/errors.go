package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrAuth means the credential bundle is malformed, incomplete or was
	// rejected while connecting. Not recoverable within the session; only
	// Connect produces it.
	ErrAuth = errors.New("sheets: authentication failed")

	// ErrWorksheetNotFound means the named worksheet does not exist in the
	// spreadsheet. Callers treat the dataset as empty and report per view.
	ErrWorksheetNotFound = errors.New("sheets: worksheet not found")

	// ErrStoreUnavailable covers every other remote fault on an operation
	// call: network, quota, and permission — a stale or revoked credential
	// rejected mid-session included. Callers treat the dataset as empty for
	// the render cycle and let the user retry.
	ErrStoreUnavailable = errors.New("sheets: store unavailable")
)

// mapAPIError converts a raw Google API failure into the client's taxonomy.
// The values API reports a missing worksheet as a 400 "Unable to parse range",
// which is the only 400 a well-formed request can produce here.
func mapAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrWorksheetNotFound, gerr.Message)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
