package validation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-library-backend/pkg/validation"
)

type loanPayload struct {
	UserID  int64  `json:"userId" binding:"required,id"`
	BookID  int64  `json:"bookId" binding:"required,id"`
	DueDate string `json:"dueDate" binding:"required,isodate"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	validation.Register(v)
	return v
}

func Test_ToDetails_UsesJSONNames(t *testing.T) {
	v := newValidator()

	err := v.Struct(loanPayload{UserID: 1, DueDate: "15/06/2025"})

	details := validation.ToDetails(err)
	assert.Equal(t, map[string]string{
		"bookId":  "is required",
		"dueDate": "must be a date in format YYYY-MM-DD",
	}, details)
}

func Test_ToDetails_AcceptsValidPayload(t *testing.T) {
	v := newValidator()

	err := v.Struct(loanPayload{UserID: 1, BookID: 2, DueDate: "2025-06-15"})

	assert.NoError(t, err)
	assert.Nil(t, validation.ToDetails(err))
}

func Test_ToDetails_JSONErrors(t *testing.T) {
	var p loanPayload

	syntaxErr := json.Unmarshal([]byte(`{"userId":`), &p)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, validation.ToDetails(syntaxErr))

	typeErr := json.NewDecoder(strings.NewReader(`{"userId":"abc"}`)).Decode(&p)
	assert.Equal(t, map[string]string{"userId": "must be a int64"}, validation.ToDetails(typeErr))
}
