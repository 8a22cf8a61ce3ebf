package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtersfast/backend/internal/domain"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMatch_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "match_pentair",
			args: []string{
				"--environment", "in-ground", "--system", "cartridge", "--brand", "Pentair",
				"--diameter", "7", "--pool-volume", "20000", "--turnover", "8",
			},
		},
		{
			name: "match_spa",
			args: []string{
				"--environment", "spa", "--diameter", "5", "--top-style", "threaded",
				"--pool-volume", "1000", "--turnover", "0.5",
			},
		},
		{
			name: "match_no_results",
			args: []string{"--system", "sand", "--brand", "Hayward"},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"match"}, tt.args...)...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestMatch_JSONFormat(t *testing.T) {
	out, err := execute(t, "match", "--format", "json",
		"--environment", "in-ground", "--brand", "Hayward", "--pool-volume", "30000")
	require.NoError(t, err)

	var result domain.WizardResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "ff-hswc", result.Matches[0].ProductID)
	assert.Equal(t, 55, result.Matches[0].Score)
	assert.Equal(t, "ff-de-grid", result.Matches[1].ProductID)

	require.NotNil(t, result.CalculatedFlowRate)
	assert.Equal(t, 62.5, *result.CalculatedFlowRate)
	require.NotNil(t, result.MaintenanceReminder)
	assert.Equal(t, "Circulate 30,000 gallons every 8 hours (62.5 GPM) to keep your water clear.", *result.MaintenanceReminder)

	require.NotNil(t, result.Constraints.Brand)
	assert.Equal(t, "Hayward", *result.Constraints.Brand)
	assert.Nil(t, result.Constraints.DesiredTurnoverHours)
}

func TestMatch_NoFlagsMatchesNothing(t *testing.T) {
	out, err := execute(t, "match")
	require.NoError(t, err)
	assert.Equal(t, "Constraints: none\n\nNo matching filters found. Try relaxing your constraints.\n", out)
}

func TestMatch_MaxResults(t *testing.T) {
	out, err := execute(t, "match", "--format", "json", "--system", "cartridge", "--max-results", "2")
	require.NoError(t, err)

	var result domain.WizardResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "ff-pcc105", result.Matches[0].ProductID)
	assert.Equal(t, "ff-pcc80", result.Matches[1].ProductID)
}

func TestMatch_AsOfJudgesPromoCodes(t *testing.T) {
	path := writeCatalog(t, `
products:
  - id: p1
    name: Test Cartridge
    environment: in-ground
    system: cartridge
    brand: Pentair
    promo_tags: [spring-opening]
promotions:
  - tag: spring-opening
    title: Spring
    months: March to May
    description: Spring sale
    recommended_promo_codes: [SPRING15]
promo_codes:
  - code: SPRING15
    discount_percent: 15
    active: true
    expires_at: 2026-06-01T00:00:00Z
`)

	tests := []struct {
		asOf string
		want string
	}{
		{asOf: "2026-04-15T12:00:00Z", want: "   Spring (March to May): SPRING15\n"},
		{asOf: "2026-07-01T00:00:00Z", want: "   Spring (March to May): no active codes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.asOf, func(t *testing.T) {
			out, err := execute(t, "match", "--catalog", path, "--environment", "in-ground", "--as-of", tt.asOf)
			require.NoError(t, err)
			assert.Contains(t, out, "1. Test Cartridge [p1]\n   Score: 25  Price: $0.00\n")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestMatch_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "unknown environment", args: []string{"--environment", "pond"}, wantErr: domain.ErrInvalidValue},
		{name: "unknown system", args: []string{"--system", "gravel"}, wantErr: domain.ErrInvalidValue},
		{name: "unknown connector", args: []string{"--top-style", "bayonet"}, wantErr: domain.ErrInvalidValue},
		{name: "negative diameter", args: []string{"--diameter=-1"}, wantErr: domain.ErrInvalidRequest},
		{name: "zero turnover", args: []string{"--pool-volume", "20000", "--turnover", "0"}, wantErr: domain.ErrInvalidRequest},
		{name: "bad as-of", args: []string{"--as-of", "tomorrow"}, wantMsg: "invalid --as-of"},
		{name: "missing catalog", args: []string{"--catalog", "/nonexistent/catalog.yaml"}, wantMsg: "failed to open catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"match"}, tt.args...)...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMatch_RejectsArgs(t *testing.T) {
	_, err := execute(t, "match", "pentair")
	assert.Error(t, err)
}
