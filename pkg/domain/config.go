package domain

// GeneratorConfig describes one statement generator: which variant renders it,
// the template it fills and the argument sets it samples from.
// The number of argument sets is the generator's sampling weight.
type GeneratorConfig struct {
	// Kind selects the generator variant (e.g. "CubingStatementGenerator").
	Kind string `json:"kind" yaml:"kind"`

	// Name identifies the config in logs and listings. Optional.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Template holds {field} placeholders filled from each argument set.
	Template string `json:"template" yaml:"template"`

	// Arguments is the ordered list of argument sets.
	Arguments []ValueMap `json:"arguments" yaml:"arguments"`
}

// Weight returns the number of argument sets.
func (c GeneratorConfig) Weight() int {
	return len(c.Arguments)
}
