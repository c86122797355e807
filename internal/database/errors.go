// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"database/sql"
	"errors"
	"io"

	"github.com/stackwise/stackwise/internal/logging"
)

// ErrNotFound is returned when a lookup matches no row. Callers use
// errors.Is to distinguish a missing record from a query failure.
var ErrNotFound = errors.New("database: not found")

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// rollbackQuietly rolls back a transaction, tolerating the rollback
// that follows a successful commit.
func rollbackQuietly(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Warn().Err(err).Msg("Failed to roll back transaction")
	}
}
