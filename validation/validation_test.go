package validation

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/feignkit/errors"
)

type requestSettings struct {
	MimeTypes      []string `mapstructure:"mime_types" validate:"min=1,dive,required"`
	MinRequestSize int      `mapstructure:"min_request_size" validate:"gte=0"`
}

type settings struct {
	Request requestSettings `mapstructure:"request"`
	Kind    string          `mapstructure:"kind" validate:"oneof=pooled http2"`
}

func TestValidate_OK(t *testing.T) {
	s := settings{
		Request: requestSettings{MimeTypes: []string{"application/json"}, MinRequestSize: 0},
		Kind:    "pooled",
	}
	assert.NoError(t, Validate(s))
}

func TestValidate_ReportsFieldsByConfigKey(t *testing.T) {
	s := settings{
		Request: requestSettings{MimeTypes: nil, MinRequestSize: -1},
		Kind:    "spdy",
	}
	err := Validate(s)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	fields, ok := appErr.Details["fields"].([]FieldError)
	require.True(t, ok)

	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, "must have at least 1 entries", got["request.mime_types"])
	assert.Equal(t, "must be at least 0", got["request.min_request_size"])
	assert.Equal(t, "must be one of: pooled http2", got["kind"])
}
