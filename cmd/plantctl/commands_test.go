package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlants = `[
  {"Scientific Name": "Asclepias tuberosa", "Common Name": "Butterfly Milkweed", "Height (feet)": 2, "States": ["NJ"]},
  {"Scientific Name": "Carex pensylvanica", "Common Name": "Pennsylvania Sedge", "Height (feet)": 0.7, "States": ["PA"]},
  {"Scientific Name": "Cornus florida", "Common Name": "Flowering Dogwood", "Height (feet)": 25, "States": ["NJ"]}
]`

func writeMemoryConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "plants.json")
	require.NoError(t, os.WriteFile(seed, []byte(testPlants), 0o600))

	cfg := filepath.Join(dir, "test.yaml")
	yml := "http:\n  port: 8080\ndatabase:\n  driver: memory\n  seed_file: " + seed + "\n"
	require.NoError(t, os.WriteFile(cfg, []byte(yml), 0o600))
	return cfg
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearch_Table(t *testing.T) {
	cfg := writeMemoryConfig(t)
	out, err := run(t, "search", "-c", cfg, "--filter", "States=NJ", "--sort", "Sort by Height (Low to High)")
	require.NoError(t, err)
	assert.Contains(t, out, "2 plants")
	assert.Contains(t, out, "Asclepias tuberosa")
	assert.NotContains(t, out, "Carex pensylvanica")
	assert.Less(t, bytes.Index([]byte(out), []byte("Asclepias")), bytes.Index([]byte(out), []byte("Cornus")))
}

func TestSearch_JSON(t *testing.T) {
	cfg := writeMemoryConfig(t)
	out, err := run(t, "search", "-c", cfg, "--json", "sedge")
	require.NoError(t, err)

	var body struct {
		Results []map[string]any `json:"results"`
		Total   int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Pennsylvania Sedge", body.Results[0]["Common Name"])
}

func TestSearch_BadFilter(t *testing.T) {
	_, err := run(t, "search", "--filter", "no-equals-sign")
	assert.ErrorContains(t, err, "name=value")
}

func TestIndex_MemoryDriver(t *testing.T) {
	cfg := writeMemoryConfig(t)
	out, err := run(t, "index", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "index already exists")

	_, err = run(t, "index", "-c", cfg, "--drop")
	assert.ErrorContains(t, err, "redis")
}

func TestSeed_MemoryDriver(t *testing.T) {
	cfg := writeMemoryConfig(t)
	extra := filepath.Join(t.TempDir(), "more.json")
	require.NoError(t, os.WriteFile(extra, []byte(`[
		{"Scientific Name": "Carex pensylvanica", "Common Name": "Oak Sedge"},
		{"Scientific Name": "Liatris spicata", "Common Name": "Blazing Star"}
	]`), 0o600))

	out, err := run(t, "seed", "-c", cfg, extra)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 plants (1 new, 1 updated)")
}

func TestEmbed_WithoutModel(t *testing.T) {
	cfg := writeMemoryConfig(t)
	_, err := run(t, "embed", "-c", cfg)
	assert.Error(t, err)
}

func TestSearchParams(t *testing.T) {
	p, err := searchParams([]string{"milkweed"}, 3, "Sort by Common Name (A-Z)",
		[]string{"States=NJ", "States=NY", "Height (feet)[min]=1"})
	require.NoError(t, err)
	assert.Equal(t, "milkweed", p.Get("q"))
	assert.Equal(t, "3", p.Get("page"))
	assert.Equal(t, []string{"NJ", "NY"}, p["States"])
	assert.Equal(t, "1", p.Get("Height (feet)[min]"))
}
