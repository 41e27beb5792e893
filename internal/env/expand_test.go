package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	var testCases = []struct {
		description string
		env         map[string]string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "digest: sha256", expect: "digest: sha256"},
		{description: "single expression", env: map[string]string{"DIGEST": "blake2b"}, input: "digest: ${env.DIGEST}", expect: "digest: blake2b"},
		{description: "multiple expressions", env: map[string]string{"A": "1", "B": "2"}, input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset variable becomes empty", input: "unset=${env.LINEAGE_NOTSET}-end", expect: "unset=-end"},
		{description: "missing closing brace", env: map[string]string{"X": "x"}, input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
		{description: "prefix only no key", input: "oops ${env.} done", expect: "oops  done"},
		{description: "invalid key kept literally", env: map[string]string{"Y": "y"}, input: "${env.a-b} ${env.Y}", expect: "${env.a-b} y"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, testCase.expect, Expand(testCase.input))
		})
	}
}

func TestExpandWith(t *testing.T) {
	lookup := func(key string) string { return "<" + key + ">" }
	assert.Equal(t, "out: <OUTPUT>", ExpandWith("out: ${env.OUTPUT}", lookup))
}
