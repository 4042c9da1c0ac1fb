package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
)

// trapNoRowsErr replaces sql.ErrNoRows with the repository's not-found error.
func trapNoRowsErr(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback() // no-op after commit
}
