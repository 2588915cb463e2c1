package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/twotruths/internal/adapters/file"
	"github.com/aretw0/twotruths/internal/adapters/memory"
	"github.com/aretw0/twotruths/internal/adapters/redis"
	"github.com/aretw0/twotruths/internal/testutils"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	s, err := loadSettings(v)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Generate.Truths)
	assert.Equal(t, 1, s.Generate.Lies)
	assert.Equal(t, domain.DefaultMaxRetries, s.Generate.MaxRetries)
	assert.True(t, s.Generate.EnsureNotTrue)
	assert.Equal(t, "memory", s.Store.Backend)
	assert.Equal(t, time.Hour, s.Store.TTL)
	assert.Equal(t, "stdio", s.MCP.Transport)
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("TWOTRUTHS_GENERATE_LIES", "4")
	t.Setenv("TWOTRUTHS_STORE_TTL", "90s")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TWOTRUTHS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	s, err := loadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Generate.Lies)
	assert.Equal(t, 90*time.Second, s.Store.TTL)
}

func TestGenerateSettings_Request(t *testing.T) {
	req := GenerateSettings{Truths: 1, Lies: 2, MaxRetries: 3, EnsureNotTrue: true, Seed: 8}.Request()
	assert.Equal(t, domain.Request{Truths: 1, Lies: 2, MaxRetries: 3, EnsureNotTrue: true, Seed: 8}, req)
}

func TestInputPaths(t *testing.T) {
	paths, err := inputPaths([]string{"a.yaml"}, Settings{Inputs: []string{"b.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml"}, paths)

	paths, err = inputPaths(nil, Settings{Inputs: []string{"b.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.yaml"}, paths)

	_, err = inputPaths(nil, Settings{})
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	st, closeFn, err := openStore(StoreSettings{Backend: "memory", TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, st)
	assert.NoError(t, closeFn())

	st, _, err = openStore(StoreSettings{Backend: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, st)

	st, closeFn, err = openStore(StoreSettings{Backend: "redis", RedisAddr: "localhost:0"})
	require.NoError(t, err)
	assert.IsType(t, &redis.Store{}, st)
	assert.NoError(t, closeFn())

	_, _, err = openStore(StoreSettings{Backend: "etcd"})
	assert.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	configs := []domain.GeneratorConfig{
		{
			Kind:     generator.KindCount,
			Name:     "cubes",
			Template: "I own {count} {thing}.",
			Arguments: []domain.ValueMap{
				{"count": domain.Int(3), "thing": domain.String("cubes")},
				{"count": domain.Int(4)},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, runValidate(&buf, generator.DefaultRegistry(), configs))
	out := buf.String()
	assert.Contains(t, out, "ok   cubes (CountStatementGenerator): 2 argument sets")
	assert.Contains(t, out, "warning: argument set 1 leaves thing unfilled")
	assert.Contains(t, out, "1 generator configs are valid")

	buf.Reset()
	configs = append(configs, domain.GeneratorConfig{Kind: "Mystery"})
	err := runValidate(&buf, generator.DefaultRegistry(), configs)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "FAIL Mystery")
}

func TestGenerateCommand(t *testing.T) {
	dir := testutils.SetupConfigDir(t, map[string]string{"cubing.yaml": testutils.CubingYAML})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"generate", dir, "--truths", "2", "--lies", "1", "--seed", "11"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	truths := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "true: ") {
			truths++
		} else {
			assert.True(t, strings.HasPrefix(line, "false: "), line)
		}
	}
	assert.Equal(t, 2, truths)
}
