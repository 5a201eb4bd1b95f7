package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"flavorcheck/internal/services"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their TOML key so messages match the file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate ensures the configuration is usable. Every rule violation is
// reported, one per line, as "section.key must ...".
func (c *Config) Validate() error {
	var problems []string
	if err := structValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fieldKey(fe)+" "+friendlyMessage(fe))
		}
	}
	if c.Analysis.LargeStepRatio <= c.Analysis.TinyStepRatio {
		problems = append(problems, "analysis.large_step_ratio must be greater than analysis.tiny_step_ratio")
	}
	if c.Output.MinBarWidth > c.Output.BarWidth {
		problems = append(problems, "output.min_bar_width must not exceed output.bar_width")
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", services.ErrConfiguration, strings.Join(problems, "; "))
}

// RequireCredentials reports whether the API credentials are present. It is
// separate from Validate so commands that never call the API work without
// secrets.
func (c *Config) RequireCredentials() error {
	var missing []string
	if c.Kaltura.PartnerID <= 0 {
		missing = append(missing, fmt.Sprintf("kaltura.partner_id (or %s)", EnvPartnerID))
	}
	if strings.TrimSpace(c.Kaltura.AdminSecret) == "" {
		missing = append(missing, fmt.Sprintf("kaltura.admin_secret (or %s)", EnvAdminSecret))
	}
	if len(missing) == 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%w: %s required. Set the environment variables or edit %s (create with 'flavorcheck config init')",
		services.ErrConfiguration, strings.Join(missing, " and "), defaultPath)
}

// fieldKey drops the root struct name: "Config.kaltura.page_size" becomes
// "kaltura.page_size".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	default:
		return "is invalid"
	}
}
