package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/stretchr/testify/require"
)

// CubingYAML is a three-set measurement config in file form.
const CubingYAML = `kind: CubingStatementGenerator
name: cubing
template: "On {date}, I solved the cube in {time}."
arguments:
  - {date: "2021-01-02", time: 12.345}
  - {date: "2021-02-03", time: 10.5}
  - {date: "2021-03-04", time: 9.87}
`

// WriteFile writes content to dir/name and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	return path
}

// SetupConfigDir creates a temporary directory holding the given files.
func SetupConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// MeasurementConfig matches CubingYAML.
func MeasurementConfig() domain.GeneratorConfig {
	return domain.GeneratorConfig{
		Kind:     generator.KindMeasurement,
		Name:     "cubing",
		Template: "On {date}, I solved the cube in {time}.",
		Arguments: []domain.ValueMap{
			{"date": domain.String("2021-01-02"), "time": domain.Float(12.345)},
			{"date": domain.String("2021-02-03"), "time": domain.Float(10.5)},
			{"date": domain.String("2021-03-04"), "time": domain.Float(9.87)},
		},
	}
}

// CountConfig returns a count config with one argument set per value.
func CountConfig(counts ...int64) domain.GeneratorConfig {
	cfg := domain.GeneratorConfig{
		Kind:     generator.KindCount,
		Template: "I own {count} cubes.",
	}
	for _, n := range counts {
		cfg.Arguments = append(cfg.Arguments, domain.ValueMap{"count": domain.Int(n)})
	}
	return cfg
}
