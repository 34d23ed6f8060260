// Package repository implements the data access layer for the application.
package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"devswipe/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// notFoundOr maps gorm.ErrRecordNotFound to a not-found AppError and wraps
// everything else as internal.
func notFoundOr(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func clampLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s anywhere, with LIKE
// metacharacters in s escaped. Use with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// jsonElementPattern matches a JSON string array column containing elem. The
// array is compared as text, which works for both JSONB and SQLite TEXT.
func jsonElementPattern(elem string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(strings.ToLower(strings.TrimSpace(elem)))
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return "%" + likeEscaper.Replace(quoted) + "%"
}

const (
	searchTextClause = `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(%s) LIKE ? ESCAPE '\')`
	jsonContainsSQL  = `LOWER(CAST(%s AS TEXT)) LIKE ? ESCAPE '\'`
)
