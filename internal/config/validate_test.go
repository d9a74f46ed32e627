package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type weightPayload struct {
	Name   string  `json:"name" validate:"required"`
	Weight float64 `json:"weight_percentage" validate:"gte=0,lte=100"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, config.Validate(weightPayload{Name: "Exams", Weight: 60}))

	err := config.Validate(weightPayload{Name: "Exams", Weight: 120})
	var vErr *errs.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "weight_percentage", vErr.Field)

	err = config.Validate(weightPayload{Weight: 10})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "name", vErr.Field)
}
