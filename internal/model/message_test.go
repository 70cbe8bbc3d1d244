package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoredName(t *testing.T) {
	d := DocumentRecord{ID: "abc", Filename: "report.pdf"}
	assert.Equal(t, "abc.pdf", d.StoredName())
}
