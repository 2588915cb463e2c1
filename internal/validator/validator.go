package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/aretw0/twotruths/pkg/render"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem in one config.
type Finding struct {
	Severity Severity
	Message  string
}

// Result is the outcome of checking one config.
type Result struct {
	Config   domain.GeneratorConfig
	Kind     string
	Size     int
	Findings []Finding
}

// OK reports whether the config has no errors. Warnings are allowed.
func (r Result) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Name returns the config name, falling back to its kind.
func (r Result) Name() string {
	if r.Config.Name != "" {
		return r.Config.Name
	}
	return r.Config.Kind
}

// fieldRule describes an argument every set of a kind must carry.
type fieldRule struct {
	name    string
	integer bool
}

// rulesFor keys on the variant, so aliased kinds get the same rules.
func rulesFor(g generator.Generator) []fieldRule {
	switch g.(type) {
	case *generator.MeasurementGenerator:
		return []fieldRule{{name: generator.MeasurementField}}
	case *generator.CountGenerator:
		return []fieldRule{{name: generator.CountField, integer: true}}
	}
	return nil
}

// ValidateConfigs builds a generator for every config and reports what would
// go wrong at generation time. It returns an error when any config has errors.
func ValidateConfigs(reg *generator.Registry, configs []domain.GeneratorConfig) ([]Result, error) {
	results := make([]Result, len(configs))
	failed := 0
	for i, cfg := range configs {
		results[i] = check(reg, cfg)
		if !results[i].OK() {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("found %d invalid generator configs out of %d", failed, len(configs))
	}
	return results, nil
}

func check(reg *generator.Registry, cfg domain.GeneratorConfig) Result {
	res := Result{Config: cfg}
	g, err := reg.Create(cfg)
	if err != nil {
		res.add(SeverityError, err.Error())
		return res
	}
	res.Kind = g.Kind()
	res.Size = g.Size()

	if strings.TrimSpace(cfg.Template) == "" {
		res.add(SeverityError, "template is empty")
	}
	if g.Size() == 0 {
		res.add(SeverityWarning, "no argument sets, the generator is never picked")
	}

	if repeated := render.Repeated(cfg.Template); len(repeated) > 0 {
		res.add(SeverityWarning, fmt.Sprintf("template repeats %s, only the first is filled", strings.Join(repeated, ", ")))
	}

	rules := rulesFor(g)
	seen := make(map[string]int, g.Size())
	for i, args := range cfg.Arguments {
		for _, rule := range rules {
			if msg := rule.check(args); msg != "" {
				res.add(SeverityError, fmt.Sprintf("argument set %d: %s", i, msg))
			}
		}
		if missing := render.Missing(cfg.Template, args); len(missing) > 0 {
			res.add(SeverityWarning, fmt.Sprintf("argument set %d leaves %s unfilled", i, strings.Join(missing, ", ")))
		}

		text, err := generator.TruthAt(g, i)
		if err != nil {
			res.add(SeverityError, err.Error())
			continue
		}
		if first, dup := seen[text]; dup {
			res.add(SeverityWarning, fmt.Sprintf("argument sets %d and %d render the same truth", first, i))
			continue
		}
		seen[text] = i
	}
	return res
}

func (rule fieldRule) check(args domain.ValueMap) string {
	v, ok := args[rule.name]
	if !ok || v.IsAbsent() {
		return fmt.Sprintf("%q is required", rule.name)
	}
	f, ok := v.Float()
	if !ok {
		return fmt.Sprintf("%q must be a number, got %s", rule.name, v)
	}
	if rule.integer && f != math.Trunc(f) {
		return fmt.Sprintf("%q must be a whole number, got %s", rule.name, v)
	}
	return ""
}

func (r *Result) add(sev Severity, msg string) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Message: msg})
}
