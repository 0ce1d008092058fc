package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	wrapped := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, isUniqueConstraintViolation(wrapped(pgUniqueViolation)))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(wrapped(pgForeignKeyViolation)))

	assert.True(t, isForeignKeyConstraintViolation(wrapped(pgForeignKeyViolation)))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(gorm.ErrRecordNotFound))

	assert.True(t, isCheckConstraintViolation(wrapped(pgCheckViolation)))
	assert.True(t, isNotNullConstraintViolation(wrapped(pgNotNullViolation)))
	assert.False(t, isNotNullConstraintViolation(fmt.Errorf("plain")))
}
