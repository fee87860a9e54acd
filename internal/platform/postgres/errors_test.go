package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: uniqueViolationCode})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isForeignKeyViolation(nil))
}
