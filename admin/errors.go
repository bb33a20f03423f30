package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDenied is returned by guarded loads when the gate did not open.
	ErrDenied = errors.New("admin: access denied")
	// ErrBusy means the same action is already submitting; no call was made.
	ErrBusy = errors.New("admin: action already in progress")
	// ErrNotReady means the record has not been loaded (or failed to load).
	ErrNotReady = errors.New("admin: record not loaded")
	// ErrCancelled means the user declined the confirmation prompt.
	ErrCancelled = errors.New("admin: cancelled by user")
	// ErrUnsupported means the screen has no such action.
	ErrUnsupported = errors.New("admin: action not supported")
	// ErrStale means a newer load superseded this one and its result was dropped.
	ErrStale = errors.New("admin: result superseded")
)

// ValidationError is a local input problem. Nothing was sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ParseID accepts only positive base-10 integers. message is the user-facing
// text for this resource (e.g. "Geçersiz bağış ID'si").
func ParseID(raw, message string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Message: message}
	}
	return id, nil
}

// PartialUpdateError reports a multi-call update where the first call went
// through and a later one did not.
type PartialUpdateError struct {
	Succeeded       []string
	Failed          string
	Err             error
	Compensated     bool
	CompensationErr error
}

func (e *PartialUpdateError) Error() string {
	msg := fmt.Sprintf("%s güncellendi, %s güncellenemedi", strings.Join(e.Succeeded, ", "), e.Failed)
	switch {
	case e.Compensated:
		msg += "; yapılan değişiklik geri alındı"
	case e.CompensationErr != nil:
		msg += "; değişiklik geri alınamadı, kayıt tutarsız olabilir"
	}
	return msg
}

func (e *PartialUpdateError) Unwrap() error { return e.Err }
