package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowing(t *testing.T) {
	assert.Equal(t, "1-20 of 45", Showing(1, 20, 45))
	assert.Equal(t, "41-45 of 45", Showing(3, 20, 45))
	assert.Equal(t, "0-0 of 0", Showing(1, 20, 0))
	assert.Equal(t, "0-0 of 45", Showing(9, 20, 45))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(45, 20))
	assert.Equal(t, 2, TotalPages(40, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 20))
}
