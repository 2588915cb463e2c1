package generator

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/aretw0/twotruths/pkg/domain"
)

const (
	// KindMeasurement is the registered name of MeasurementGenerator.
	KindMeasurement = "CubingStatementGenerator"

	// MeasurementField is the argument holding the measured time in seconds.
	MeasurementField = "time"

	measurementUnit   = " seconds rounded to the nearest hundredth of a second"
	maxTimeDelta      = 1.0
)

// MeasurementGenerator renders timed results such as speedcubing solves.
// The "time" field is shown with two decimals and a unit caption; lies shift
// it by a uniform delta in [-1, 1] seconds.
type MeasurementGenerator struct {
	Base
}

// NewMeasurement creates a MeasurementGenerator.
func NewMeasurement(config domain.GeneratorConfig) (Generator, error) {
	return &MeasurementGenerator{Base: NewBase(config)}, nil
}

func (g *MeasurementGenerator) Truth(args domain.ValueMap) string {
	t, _ := args[MeasurementField].Float()
	return g.Base.Truth(withField(args, MeasurementField, FormatMeasurement(t)))
}

func (g *MeasurementGenerator) Lie(args domain.ValueMap, rng *rand.Rand) string {
	t, _ := args[MeasurementField].Float()
	delta := maxTimeDelta * (2*rng.Float64() - 1)
	return g.Base.Truth(withField(args, MeasurementField, FormatMeasurement(t+delta)))
}

// FormatMeasurement renders seconds the way MeasurementGenerator does.
// The shortest decimal form of seconds is cut to two fractional digits, so
// 12.345 reads 12.34 even though its float64 value lies just above 12.345.
func FormatMeasurement(seconds float64) string {
	return hundredths(seconds) + measurementUnit
}

func hundredths(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	frac += "00"
	s = whole + "." + frac[:2]
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// withField returns a copy of args with key replaced by a string value.
func withField(args domain.ValueMap, key, text string) domain.ValueMap {
	out := args.Clone()
	out[key] = domain.String(text)
	return out
}
