package policy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

var structs = newStructValidator()

// newStructValidator reports fields by their YAML path (meta.policy_id)
func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks all required constraints.
// 실패 시 첫 번째 ValidationError 반환
func Validate(cfg *Config) error {
	if cfg == nil {
		return ValidationError{"policy", "required"}
	}

	if err := structs.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fromFieldError(fieldErrs[0])
		}
		return err
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning
	b := cfg.Bonus

	if b.PodiumPct > b.LeaderPct {
		warnings = append(warnings, Warning{
			Code:    "PODIUM_ABOVE_LEADER",
			Message: fmt.Sprintf("podium_pct=%.2f > leader_pct=%.2f: 1위 보너스율이 더 낮음", b.PodiumPct, b.LeaderPct),
		})
	}

	if b.LastPct > b.DefaultPct {
		warnings = append(warnings, Warning{
			Code:    "LAST_ABOVE_DEFAULT",
			Message: fmt.Sprintf("last_pct=%.2f > default_pct=%.2f: 꼴찌 보너스율이 더 높음", b.LastPct, b.DefaultPct),
		})
	}

	if cfg.Revenue.Method == MethodSimple {
		warnings = append(warnings, Warning{
			Code:    "SIMPLE_REVENUE",
			Message: "SIMPLE 매출: sale_price 누락 항목은 매출 0으로 계산됨",
		})
	}

	return warnings
}

func fromFieldError(fe validator.FieldError) ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "required"
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		msg = "must be >= " + fe.Param()
	case "lte":
		msg = "must be <= " + fe.Param()
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}

	return ValidationError{Field: field, Message: msg}
}
