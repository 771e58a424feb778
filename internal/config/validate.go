package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	structRules  *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their TOML keys, e.g. logging.level.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structRules = v
	})
	return structRules
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := rules().Struct(c); err != nil {
		return describeValidation(err)
	}
	if _, err := c.Parser.Charmap(); err != nil {
		return err
	}
	return nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}
	fe := fieldErrs[0]
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", key)
	case "oneof":
		return fmt.Errorf("%s: unsupported value %q (expected one of: %s)", key, fmt.Sprint(fe.Value()), fe.Param())
	case "gte", "lte":
		return fmt.Errorf("%s must be between 1 and 64, got %v", key, fe.Value())
	default:
		return fmt.Errorf("%s: failed %q check", key, fe.Tag())
	}
}
