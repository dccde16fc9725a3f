package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, `[1/3] "abc.crx" - `, Prefix(0, 3, "data/extensions/abc.crx"))
	assert.Equal(t, `[3/3] "abcdefghijklmnopabcdefghijklmnop-v1...." - `, Prefix(2, 3, "abcdefghijklmnopabcdefghijklmnop-v1.2.crx"))
}
