package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceKey(t *testing.T) {
	tests := []struct {
		name string
		id   interface{}
		want string
	}{
		{"string passes through", "ctl_test_system", "ctl_test_system"},
		{"int", 1111, "1111"},
		{"int64", int64(1111), "1111"},
		{"integral float64", float64(1111), "1111"},
		{"fractional float64", 1.5, "1.5"},
		{"json number", json.Number("1111"), "1111"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CoerceKey(tc.id))
		})
	}
}

func TestCoerceKeyJSONDecodedNumber(t *testing.T) {
	// Without UseNumber, encoding/json decodes numbers into float64; the
	// coerced form must still match the string form of the same id.
	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(`{"id": 1111}`), &decoded))

	assert.Equal(t, CoerceKey("1111"), CoerceKey(decoded["id"]))
}
