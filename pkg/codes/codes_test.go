package codes_test

import (
	"strconv"
	"testing"

	"pasar/pkg/codes"

	"github.com/stretchr/testify/assert"
)

func TestIssueRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := codes.Issue()
		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestIssueVaries(t *testing.T) {
	// 20 draws from a 900000-value space repeating even once is vanishingly
	// unlikely; a constant generator would fail here immediately.
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[codes.Issue()] = true
	}
	assert.Greater(t, len(seen), 1)
}
