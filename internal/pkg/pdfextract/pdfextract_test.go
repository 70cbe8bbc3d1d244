package pdfextract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/pkg/pdfextract/pdftest"
)

func TestExtractTextConcatenatesPages(t *testing.T) {
	doc := pdftest.Build("Gophers like channels", "Second page here")

	text, err := ExtractText(bytes.NewReader(doc))
	require.NoError(t, err)

	first := strings.Index(text, "Gophers like channels")
	second := strings.Index(text, "Second page here")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestExtractTextEmptyInput(t *testing.T) {
	text, err := ExtractText(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	_, err := ExtractText(strings.NewReader("plain text, not a pdf"))
	assert.Error(t, err)
}
