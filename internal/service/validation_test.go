package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

func TestValidationErrorReportsJSONFieldNames(t *testing.T) {
	req := dto.CreateStudentRequest{Name: "Kavya Nair", Email: "not-an-email", Phone: "98765"}
	err := validationError(NewValidator().Struct(req), "invalid student payload")

	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "invalid student payload", appErr.Message)
	assert.Equal(t, map[string]string{
		"roll_number": "required",
		"email":       "email",
		"phone":       "min",
	}, appErr.Fields)
}
