package reference

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = validator.New()

// decode fills out from params, rejecting unknown keys, then validates it.
// Fields already set on out act as defaults.
func decode(what string, params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to create decoder: %w", what, err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

func asMap(what string, v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping, got %T", what, v)
	}
	return m, nil
}
