package store

import (
	"database/sql"
	"errors"
)

// SharedToken returns the api key stored for a service, or an empty
// string when none has been configured. Implements the credential
// source the riot client reads from
func (store *Store) SharedToken(service string) (string, error) {

	var token string
	err := store.db.QueryRow(
		`SELECT token FROM shared_tokens WHERE service = ?`, service,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetSharedToken stores the api key for a service, replacing any
// previous one. Callers are expected to notify consumers of the key
// so they refresh their cached copy
func (store *Store) SetSharedToken(service string, token string) error {
	_, err := store.db.Exec(
		`INSERT INTO shared_tokens (service, token) VALUES (?, ?)
		 ON CONFLICT(service) DO UPDATE SET token = excluded.token`,
		service, token,
	)
	return err
}
