package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%cat%", likePattern(" cat "))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestNullDate(t *testing.T) {
	assert.Nil(t, nullDate(time.Time{}))

	d := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	got := nullDate(d)
	if assert.NotNil(t, got) {
		assert.True(t, d.Equal(*got))
	}
	assert.True(t, fromNullDate(nil).IsZero())
	assert.True(t, fromNullDate(got).Equal(d))
}
