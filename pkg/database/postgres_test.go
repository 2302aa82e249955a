package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolationDetection(t *testing.T) {
	fk := fmt.Errorf("create payment: %w", &pq.Error{Code: "23503"})
	unique := &pq.Error{Code: "23505"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
