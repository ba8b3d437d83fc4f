package repository

import (
	"errors"
	"fmt"
	"strings"

	domainerrors "yamdb/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps storage errors onto the domain taxonomy. entity names the
// object being touched and ends up in the message.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	isPg := errors.As(err, &pgErr)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.NotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey), isPg && pgErr.Code == pgUniqueViolation:
		return domainerrors.Wrap(domainerrors.CodeConflict, entity+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isPg && pgErr.Code == pgForeignKeyViolation:
		return domainerrors.Wrap(domainerrors.CodeNotFound, "referenced object not found", err)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for a case-insensitive substring match against
// a LOWER()ed column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
