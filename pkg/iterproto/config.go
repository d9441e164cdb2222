package iterproto

import (
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/option"
)

// TraceConfig configures how Trace reports the Steps of a Cursor.
// It can be loaded from the environment with LoadTraceConfig,
// and it can be passed to Trace as an option.
type TraceConfig struct {
	// Label is attached to every trace entry under the "cursor" key.
	Label string `env:"ITERPROTO_TRACE_LABEL" default:"cursor"`
	// Values makes the yielded values part of the trace entries.
	Values bool `env:"ITERPROTO_TRACE_VALUES" default:"false"`
}

const defaultTraceLabel = "cursor"

// LoadTraceConfig reads the TraceConfig from the environment.
//
//   - ITERPROTO_TRACE_LABEL sets Label (default "cursor")
//   - ITERPROTO_TRACE_VALUES sets Values (default false)
func LoadTraceConfig() (TraceConfig, error) {
	var c TraceConfig
	if err := env.Load(&c); err != nil {
		return TraceConfig{}, err
	}
	return c, nil
}

func (c *TraceConfig) Init() {
	c.Label = defaultTraceLabel
}

// Configure applies the non-zero fields of c to the target configuration.
func (c TraceConfig) Configure(t *TraceConfig) {
	*t = reflectkit.MergeStruct(*t, c)
}

// TraceOption configures Trace.
// A TraceConfig is a TraceOption too.
type TraceOption option.Option[TraceConfig]

// TraceLabel sets the value of the "cursor" field in the trace entries.
func TraceLabel(label string) TraceOption {
	return option.Func[TraceConfig](func(c *TraceConfig) {
		c.Label = label
	})
}

// TraceValues toggles whether the yielded values are logged.
func TraceValues(ok bool) TraceOption {
	return option.Func[TraceConfig](func(c *TraceConfig) {
		c.Values = ok
	})
}
