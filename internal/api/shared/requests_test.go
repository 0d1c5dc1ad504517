package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodable struct {
	AxialLength float64 `json:"axial_length" validate:"required,gt=0"`
}

type selfValidating struct {
	valid bool
}

func (s selfValidating) Validate() error {
	if !s.valid {
		return assert.AnError
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"axial_length": 23.5}`))
		var out decodable
		require.NoError(t, DecodeJSON(req, &out))
		assert.Equal(t, 23.5, out.AxialLength)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"axial_length":`))
		var out decodable
		assert.Error(t, DecodeJSON(req, &out))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Run("uses struct tags", func(t *testing.T) {
		assert.Error(t, ValidateRequest(decodable{}))
		assert.NoError(t, ValidateRequest(decodable{AxialLength: 23.5}))
	})

	t.Run("prefers a Validate method when present", func(t *testing.T) {
		assert.Error(t, ValidateRequest(selfValidating{valid: false}))
		assert.NoError(t, ValidateRequest(selfValidating{valid: true}))
	})
}
