package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(fmt.Errorf("connection reset")))
}

func TestPQErrorCodes(t *testing.T) {
	dup := fmt.Errorf("insert snapshot: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
	missing := &pq.Error{Code: "42P01", Message: `relation "match_events" does not exist`}

	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(missing))
	assert.True(t, isUndefinedTable(missing))
	assert.False(t, isUndefinedTable(fmt.Errorf("plain")))
}

func TestNullFloat(t *testing.T) {
	v, ok := nullFloat(sql.NullFloat64{Float64: 12.5, Valid: true})
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = nullFloat(sql.NullFloat64{})
	assert.False(t, ok)
}
