package dto

// GeneratorFile represents the on-disk shape of a generator config.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type GeneratorFile struct {
	Kind     string           `json:"kind" mapstructure:"kind"`
	Name     string           `json:"name" mapstructure:"name"`
	Template string           `json:"template" mapstructure:"template"`
	Args     []map[string]any `json:"arguments" mapstructure:"arguments"`

	// Legacy keys from older config files.
	ClassName      string `json:"class_name" mapstructure:"class_name"`
	TemplateString string `json:"template_string" mapstructure:"template_string"`
}
