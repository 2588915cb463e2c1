package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/twotruths/internal/dto"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FileLoader implements ports.ConfigLoader over YAML and JSON files.
// Each path may be a file or a directory; directories contribute every
// .yaml, .yml and .json file they contain, in name order.
type FileLoader struct {
	Paths []string
}

// NewFileLoader creates a loader for the given paths.
func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{Paths: paths}
}

// Load reads and decodes every config file.
func (l *FileLoader) Load(ctx context.Context) ([]domain.GeneratorConfig, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}

	configs := make([]domain.GeneratorConfig, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (l *FileLoader) files() ([]string, error) {
	var files []string
	for _, p := range l.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat config path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read config dir %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && isConfigFile(e.Name()) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadConfigFile reads one generator config (YAML or JSON, by extension).
func LoadConfigFile(path string) (domain.GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.GeneratorConfig{}, fmt.Errorf("failed to read generator config: %w", err)
	}

	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return domain.GeneratorConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Name == "" {
		base := filepath.Base(path)
		cfg.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return cfg, nil
}

// ParseConfig decodes a generator config document. format is "json" or "yaml".
func ParseConfig(data []byte, format string) (domain.GeneratorConfig, error) {
	var raw map[string]any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return domain.GeneratorConfig{}, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.GeneratorConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	return decodeConfig(raw)
}

func decodeConfig(raw map[string]any) (domain.GeneratorConfig, error) {
	var file dto.GeneratorFile
	if err := mapstructure.Decode(raw, &file); err != nil {
		return domain.GeneratorConfig{}, fmt.Errorf("failed to decode generator config: %w", err)
	}

	cfg := domain.GeneratorConfig{
		Kind:     file.Kind,
		Name:     file.Name,
		Template: file.Template,
	}
	if cfg.Kind == "" {
		cfg.Kind = file.ClassName
	}
	if cfg.Template == "" {
		cfg.Template = file.TemplateString
	}
	if cfg.Kind == "" {
		return domain.GeneratorConfig{}, fmt.Errorf("generator config missing kind")
	}

	cfg.Arguments = make([]domain.ValueMap, 0, len(file.Args))
	for i, arg := range file.Args {
		vm, err := domain.ValueMapOf(arg)
		if err != nil {
			return domain.GeneratorConfig{}, fmt.Errorf("argument %d: %w", i, err)
		}
		cfg.Arguments = append(cfg.Arguments, vm)
	}
	return cfg, nil
}
