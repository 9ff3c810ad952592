package pkg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLineage(t *testing.T) {
	chain, err := loadFixture(t).Ancestors(2200)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderLineage(chain, &buf))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "python.exe (2200)")
	assert.Contains(t, out, "explorer.exe (1201)")
	assert.Contains(t, out, "n1509 -> n2200")
	assert.Contains(t, out, "n4 -> n1201")
}

func TestRenderLineageEmpty(t *testing.T) {
	assert.EqualError(t, RenderLineage(nil, &bytes.Buffer{}), "empty lineage")
}
