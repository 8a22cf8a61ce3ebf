package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtersfast/backend/internal/domain"
)

func TestCatalog_Text(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "BRAND")
	assert.True(t, strings.HasPrefix(lines[1], "ff-pcc105"))
	assert.Contains(t, lines[1], "FiltersFast FF-105 Replacement Cartridge")
	assert.True(t, strings.HasPrefix(lines[8], "ff-de-grid"))
}

func TestCatalog_JSON(t *testing.T) {
	out, err := execute(t, "catalog", "--format", "json")
	require.NoError(t, err)

	var products []domain.CatalogItem
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 8)
	assert.Equal(t, "ff-spa-pww50", products[5].ID)
	assert.Equal(t, domain.EnvironmentSpa, products[5].Environment)
}

func TestCatalog_CustomFile(t *testing.T) {
	path := writeCatalog(t, `
products:
  - id: only-one
    name: Lonely Cartridge
    environment: spa
    system: cartridge
    brand: Unicel
`)

	out, err := execute(t, "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "only-one")
	assert.Contains(t, out, "Lonely Cartridge")
}
