package session

import (
	"fmt"
	"time"
)

// Outcome values written to the journal.
const (
	OutcomeSuccess     = "success"
	OutcomeFailed      = "failed"
	OutcomePartial     = "partial"
	OutcomeCompensated = "compensated"
)

// Entry is one admin mutation as it was attempted from this machine.
type Entry struct {
	ID         int64
	At         time.Time
	Resource   string
	ResourceID int64
	Action     string
	Outcome    string
	Detail     string
}

// Record appends e to the journal. At defaults to now.
func (s *Store) Record(e Entry) error {
	if e.At.IsZero() {
		e.At = s.now()
	}
	if _, err := s.recordStmt.Exec(e.At.UTC(), e.Resource, e.ResourceID, e.Action, e.Outcome, e.Detail); err != nil {
		return fmt.Errorf("record journal: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id,at,resource,resource_id,action,outcome,detail FROM journal ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Resource, &e.ResourceID, &e.Action, &e.Outcome, &e.Detail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ForResource returns the journal of one record, oldest first.
func (s *Store) ForResource(resource string, id int64) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT id,at,resource,resource_id,action,outcome,detail FROM journal WHERE resource=? AND resource_id=? ORDER BY id`, resource, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Resource, &e.ResourceID, &e.Action, &e.Outcome, &e.Detail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
