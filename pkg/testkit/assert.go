package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wildcard in an expected body matches any actual value.
const Wildcard = "*"

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, s *Scenario, got int) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] HTTP status code mismatch", s.Name)
}

// AssertJSONBody compares actual against expected after decoding both, so
// key order and whitespace never matter. Wildcards are resolved first.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal any
	require.NoError(t, json.Unmarshal(expected, &expVal),
		"[%s] expected body is not valid JSON", s.Name)

	if !assert.NoError(t, json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", s.Name, string(actual)) {
		return
	}

	assert.Equal(t, fill(expVal, actVal), actVal, "[%s] response body mismatch", s.Name)
}

// fill replaces wildcards in expected with the value at the same place in
// actual.
func fill(expected, actual any) any {
	switch exp := expected.(type) {
	case string:
		if exp == Wildcard && actual != nil {
			return actual
		}
	case map[string]any:
		act, _ := actual.(map[string]any)
		out := make(map[string]any, len(exp))
		for k, v := range exp {
			out[k] = fill(v, act[k])
		}
		return out
	case []any:
		act, _ := actual.([]any)
		out := make([]any, len(exp))
		for i, v := range exp {
			var a any
			if i < len(act) {
				a = act[i]
			}
			out[i] = fill(v, a)
		}
		return out
	}
	return expected
}
