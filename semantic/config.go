package semantic

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// PropertyInput mirrors Property with mapstructure tags.
type PropertyInput struct {
	Name string `mapstructure:"name"`
	Ty   string `mapstructure:"ty"`
}

// CompletionSettingsInput mirrors the nested "completion" object a
// context payload may carry; ide/completion.DecodeConfig reads it off
// a ContextInput decoded here rather than re-decoding the same raw map
// (which would trip over the other package's unrelated keys under
// strict ErrorUnused decoding).
type CompletionSettingsInput struct {
	PreferredLimit *int `mapstructure:"preferred_limit"`
}

// ContextInput is the single untyped-map shape a caller supplies: a
// property schema plus optional completion settings, decoded together
// and strictly (unknown top-level fields are rejected) so the two
// concerns share one schema instead of quietly allowing typos in
// either's field names.
type ContextInput struct {
	Properties []PropertyInput         `mapstructure:"properties"`
	Completion CompletionSettingsInput `mapstructure:"completion"`
}

// DecodeContextInput strictly decodes raw into a ContextInput. Callers
// needing just the Context use DecodeContext; callers also needing
// completion settings can decode once here and derive both from the
// result via ContextFromInput and completion.ConfigFromInput.
func DecodeContextInput(raw map[string]any) (ContextInput, error) {
	var in ContextInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &in,
	})
	if err != nil {
		return ContextInput{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return ContextInput{}, err
	}
	return in, nil
}

var tyByName = map[string]Ty{
	"null":    Null,
	"boolean": Boolean,
	"number":  Number,
	"string":  String,
	"date":    Date,
}

// ContextFromInput converts a decoded ContextInput's property list into
// a Context, using Builtins() as the function catalog. An empty or
// unrecognized-type property is rejected.
func ContextFromInput(in ContextInput) (Context, error) {
	ctx := Context{Functions: Builtins()}
	for _, p := range in.Properties {
		if p.Name == "" {
			return Context{}, fmt.Errorf("context: property name must not be empty")
		}
		ty, ok := tyByName[p.Ty]
		if !ok {
			return Context{}, fmt.Errorf("context: unknown property type %q for %q", p.Ty, p.Name)
		}
		ctx.Properties = append(ctx.Properties, Property{Name: p.Name, Ty: ty})
	}
	return ctx, nil
}

// DecodeContext strictly decodes an untyped map (as would arrive from a
// CLI flag file or an RPC payload) into a Context. Unknown fields and
// unrecognized property type names are rejected rather than silently
// ignored, and an empty property name is rejected too.
func DecodeContext(raw map[string]any) (Context, error) {
	in, err := DecodeContextInput(raw)
	if err != nil {
		return Context{}, err
	}
	return ContextFromInput(in)
}
