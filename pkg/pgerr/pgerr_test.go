package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation})
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))

	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: ForeignKeyViolation}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: CheckViolation}))
	assert.Equal(t, "", Code(errors.New("plain")))
}

func TestIsSerializationFailure(t *testing.T) {
	conflict := &pq.Error{Code: SerializationFailure, Message: "could not serialize access due to concurrent update"}

	assert.True(t, IsSerializationFailure(conflict))
	assert.True(t, IsSerializationFailure(fmt.Errorf("repo: %w", conflict)))
	// Цепочка разорвана через %v, остается только текст
	assert.True(t, IsSerializationFailure(fmt.Errorf("usecase: internal: %v", fmt.Errorf("repo: %w", conflict))))

	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: UniqueViolation}))
	assert.False(t, IsSerializationFailure(errors.New("slot taken")))
}
