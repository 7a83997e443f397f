package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ChargeModelKind names a pricing model.
type ChargeModelKind string

const (
	ChargeModelStandard   ChargeModelKind = "standard"
	ChargeModelPercentage ChargeModelKind = "percentage"
	ChargeModelGraduated  ChargeModelKind = "graduated"
	ChargeModelVolume     ChargeModelKind = "volume"
	ChargeModelPackage    ChargeModelKind = "package"
)

// ChargeModelKinds lists every supported kind.
func ChargeModelKinds() []ChargeModelKind {
	return []ChargeModelKind{
		ChargeModelStandard,
		ChargeModelPercentage,
		ChargeModelGraduated,
		ChargeModelVolume,
		ChargeModelPackage,
	}
}

// ChargeProperties is a closed union: Kind plus exactly one matching variant.
type ChargeProperties struct {
	Kind       ChargeModelKind       `json:"charge_model"`
	Standard   *StandardProperties   `json:"standard,omitempty"`
	Percentage *PercentageProperties `json:"percentage,omitempty"`
	Graduated  *GraduatedProperties  `json:"graduated,omitempty"`
	Volume     *VolumeProperties     `json:"volume,omitempty"`
	Package    *PackageProperties    `json:"package,omitempty"`
}

// StandardProperties charges every unit at the same price.
type StandardProperties struct {
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// PercentageProperties charges a share of usage plus a fixed fee per billed event.
type PercentageProperties struct {
	Rate                         float64  `json:"rate"                                       validate:"gte=0"`
	FixedAmount                  float64  `json:"fixed_amount"                               validate:"gte=0"`
	FreeUnitsPerEvents           *int     `json:"free_units_per_events,omitempty"            validate:"omitempty,gte=0"`
	FreeUnitsPerTotalAggregation *float64 `json:"free_units_per_total_aggregation,omitempty" validate:"omitempty,gte=0"`
}

// GraduatedRange is a usage slice (FromValue, ToValue]; a nil ToValue is unbounded.
type GraduatedRange struct {
	FromValue     float64  `json:"from_value"         validate:"gte=0"`
	ToValue       *float64 `json:"to_value,omitempty" validate:"omitempty,gte=0"`
	PerUnitAmount float64  `json:"per_unit_amount"    validate:"gte=0"`
	FlatAmount    float64  `json:"flat_amount"        validate:"gte=0"`
}

// GraduatedProperties slices usage across contiguous ranges.
type GraduatedProperties struct {
	Ranges []GraduatedRange `json:"graduated_ranges" validate:"required,min=1,dive"`
}

// VolumeTier is a usage band [FromValue, ToValue]; a nil ToValue is unbounded.
type VolumeTier struct {
	FromValue     float64  `json:"from_value"         validate:"gte=0"`
	ToValue       *float64 `json:"to_value,omitempty" validate:"omitempty,gte=0"`
	PerUnitAmount float64  `json:"per_unit_amount"    validate:"gte=0"`
	FlatAmount    float64  `json:"flat_amount"        validate:"gte=0"`
}

// VolumeProperties charges the whole usage at the rate of the tier it falls in.
type VolumeProperties struct {
	Tiers []VolumeTier `json:"volume_ranges" validate:"required,min=1,dive"`
}

// PackageProperties charges usage in fixed-size packages.
type PackageProperties struct {
	PackageSize  float64 `json:"package_size"  validate:"gt=0"`
	PackagePrice float64 `json:"package_price" validate:"gte=0"`
	FreePackages int     `json:"free_packages" validate:"gte=0"`
}

// Charge is a configured charge on a plan.
type Charge struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	Currency          string           `json:"currency"`
	Properties        ChargeProperties `json:"properties"`
	MinimumCommitment float64          `json:"min_amount,omitempty"`
}

// Variant returns the populated variant for Kind, or nil when it is missing.
func (p ChargeProperties) Variant() any {
	switch p.Kind {
	case ChargeModelStandard:
		if p.Standard != nil {
			return p.Standard
		}
	case ChargeModelPercentage:
		if p.Percentage != nil {
			return p.Percentage
		}
	case ChargeModelGraduated:
		if p.Graduated != nil {
			return p.Graduated
		}
	case ChargeModelVolume:
		if p.Volume != nil {
			return p.Volume
		}
	case ChargeModelPackage:
		if p.Package != nil {
			return p.Package
		}
	}
	return nil
}

func (p ChargeProperties) variantCount() int {
	count := 0
	for _, set := range []bool{
		p.Standard != nil,
		p.Percentage != nil,
		p.Graduated != nil,
		p.Volume != nil,
		p.Package != nil,
	} {
		if set {
			count++
		}
	}
	return count
}

// Validate checks the union shape and the field constraints of its variant.
func (p ChargeProperties) Validate() Failure {
	if p.Kind == "" {
		return NewValidationFailure("charge_model", ReasonMandatory)
	}

	variant := p.Variant()
	if variant == nil {
		if !isKnownKind(p.Kind) {
			return NewValidationFailure("charge_model", ReasonInvalid)
		}
		return NewValidationFailure("properties", ReasonMandatory)
	}
	if p.variantCount() != 1 {
		return NewValidationFailure("properties", ReasonInvalid)
	}

	return ValidateStruct(variant)
}

// Validate checks the charge record itself and its properties.
func (c Charge) Validate() Failure {
	failure := &ValidationFailure{}
	if c.ID == "" {
		failure.Add("id", ReasonMandatory)
	}
	if c.Currency == "" {
		failure.Add("currency", ReasonMandatory)
	}
	if c.MinimumCommitment < 0 {
		failure.Add("min_amount", ReasonOutOfRange)
	}
	if propsFailure := c.Properties.Validate(); propsFailure != nil {
		var vf *ValidationFailure
		if errors.As(propsFailure, &vf) {
			failure.Merge(vf)
		} else {
			return propsFailure
		}
	}
	return failure.OrNil()
}

func isKnownKind(kind ChargeModelKind) bool {
	for _, known := range ChargeModelKinds() {
		if kind == known {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names so failures match the configuration payload.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the validate tags of s and converts violations into a ValidationFailure.
func ValidateStruct(s any) Failure {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Unexpected(err)
	}

	failure := &ValidationFailure{}
	for _, fieldErr := range validationErrors {
		failure.Add(fieldPath(fieldErr), reasonFor(fieldErr))
	}
	return failure
}

// fieldPath drops the top-level struct name: "PercentageProperties.rate" -> "rate".
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fieldErr.Field()
}

func reasonFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required", "min":
		return ReasonMandatory
	case "gte", "gt", "lte", "lt":
		return ReasonOutOfRange
	default:
		return ReasonInvalid
	}
}
