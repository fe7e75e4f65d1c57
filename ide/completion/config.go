package completion

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joverzhang/formulang/semantic"
)

// Request is a fully decoded completion request: the formula source,
// the byte offset of the cursor within it, and the context to complete
// against (decoded separately via semantic.DecodeContext).
type Request struct {
	Source string
	Cursor uint32
}

// DefaultPreferredLimit is the cap on preferred_indices when a caller's
// config omits completion.preferred_limit.
const DefaultPreferredLimit = 5

// Config tunes how many of the ranked candidates are additionally
// marked "preferred" (type-compatible with the cursor's expected type).
type Config struct {
	PreferredLimit int
}

// DefaultConfig returns the zero-configuration default.
func DefaultConfig() Config {
	return Config{PreferredLimit: DefaultPreferredLimit}
}

// ConfigFromInput derives a Config from a ContextInput already decoded
// by semantic.DecodeContextInput, defaulting PreferredLimit when the
// input omitted completion.preferred_limit and rejecting a negative
// value.
func ConfigFromInput(in semantic.ContextInput) (Config, error) {
	limit := DefaultPreferredLimit
	if in.Completion.PreferredLimit != nil {
		limit = *in.Completion.PreferredLimit
		if limit < 0 {
			return Config{}, fmt.Errorf("completion: preferred_limit must be non-negative, got %d", limit)
		}
	}
	return Config{PreferredLimit: limit}, nil
}

// DecodeConfig strictly decodes the completion.preferred_limit field of
// a Context-shaped input map, defaulting to DefaultPreferredLimit when
// absent and rejecting a negative value or any unrecognized field. It
// shares semantic.DecodeContextInput's schema rather than decoding its
// own, so a map carrying both `properties` and `completion` keys never
// trips one decode's ErrorUnused on the other's field; a caller that
// also needs the property schema from the same map should decode once
// via semantic.DecodeContextInput + ConfigFromInput instead of calling
// this and semantic.DecodeContext separately.
func DecodeConfig(raw map[string]any) (Config, error) {
	in, err := semantic.DecodeContextInput(raw)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromInput(in)
}

type requestInput struct {
	Source string `mapstructure:"source"`
	Cursor uint32 `mapstructure:"cursor"`
}

// DecodeRequest strictly decodes an untyped map into a Request,
// rejecting unknown fields and a cursor past the end of the source.
func DecodeRequest(raw map[string]any) (Request, error) {
	var in requestInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &in,
	})
	if err != nil {
		return Request{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Request{}, err
	}
	if int(in.Cursor) > len(in.Source) {
		return Request{}, fmt.Errorf("completion: cursor %d is past end of source (len %d)", in.Cursor, len(in.Source))
	}
	return Request{Source: in.Source, Cursor: in.Cursor}, nil
}
