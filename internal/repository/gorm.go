package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateGormError maps driver errors onto the package sentinels. Databases
// opened with TranslateError already report gorm.ErrDuplicatedKey; the pgconn
// check covers connections opened without it.
func translateGormError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicateKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errors.Join(ErrDuplicateKey, err)
	}

	// sqlite builds without the error translator
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errors.Join(ErrDuplicateKey, err)
	}

	return err
}
