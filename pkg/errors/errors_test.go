package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "student not found"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.EqualError(t, appErr, "internal server error: boom")
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "page must be positive")
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "page must be positive", clone.Message)
	assert.True(t, IsCode(clone, ErrValidation.Code))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrValidation.Code))
}

func TestIsMatchesClonesByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", Clone(ErrNotFound, "assignment not found"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestWithFieldCopies(t *testing.T) {
	base := Clone(ErrValidation, "invalid student payload")
	withEmail := base.WithField("email", "email")
	both := withEmail.WithField("batch", "required")

	assert.Empty(t, base.Fields)
	assert.Len(t, withEmail.Fields, 1)
	assert.Equal(t, []string{"batch", "email"}, both.FieldNames())
}
