package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/domain"
)

func standardCharge(id string) domain.Charge {
	return domain.Charge{
		ID:       id,
		Code:     "api_calls",
		Currency: "USD",
		Properties: domain.ChargeProperties{
			Kind:     domain.ChargeModelStandard,
			Standard: &domain.StandardProperties{UnitPrice: 0.5},
		},
	}
}

func validationMessages(t *testing.T, failure domain.Failure) map[string][]string {
	t.Helper()

	require.Error(t, failure)
	validation, ok := failure.(*domain.ValidationFailure)
	require.True(t, ok, "expected validation failure, got %T", failure)
	return validation.Messages
}

func TestChargeProperties_Validate(t *testing.T) {
	t.Run("should accept a well formed variant", func(t *testing.T) {
		require.NoError(t, standardCharge("c1").Properties.Validate())
	})

	t.Run("should require a kind", func(t *testing.T) {
		messages := validationMessages(t, domain.ChargeProperties{}.Validate())

		require.Equal(t, []string{domain.ReasonMandatory}, messages["charge_model"])
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		messages := validationMessages(t, domain.ChargeProperties{Kind: "dynamic"}.Validate())

		require.Equal(t, []string{domain.ReasonInvalid}, messages["charge_model"])
	})

	t.Run("should require the variant matching the kind", func(t *testing.T) {
		props := domain.ChargeProperties{
			Kind:    domain.ChargeModelPercentage,
			Package: &domain.PackageProperties{PackageSize: 1},
		}

		messages := validationMessages(t, props.Validate())
		require.Equal(t, []string{domain.ReasonMandatory}, messages["properties"])
	})

	t.Run("should reject more than one variant", func(t *testing.T) {
		props := domain.ChargeProperties{
			Kind:     domain.ChargeModelStandard,
			Standard: &domain.StandardProperties{UnitPrice: 1},
			Package:  &domain.PackageProperties{PackageSize: 1},
		}

		messages := validationMessages(t, props.Validate())
		require.Equal(t, []string{domain.ReasonInvalid}, messages["properties"])
	})

	t.Run("should report nested fields by their json path", func(t *testing.T) {
		props := domain.ChargeProperties{
			Kind: domain.ChargeModelVolume,
			Volume: &domain.VolumeProperties{Tiers: []domain.VolumeTier{
				{FromValue: 0, PerUnitAmount: 1},
				{FromValue: 10, PerUnitAmount: -1},
			}},
		}

		messages := validationMessages(t, props.Validate())
		require.Equal(t, []string{domain.ReasonOutOfRange}, messages["volume_ranges[1].per_unit_amount"])
	})
}

func TestCharge_Validate(t *testing.T) {
	t.Run("should accept a complete charge", func(t *testing.T) {
		require.NoError(t, standardCharge("c1").Validate())
	})

	t.Run("should merge record and property failures", func(t *testing.T) {
		charge := domain.Charge{
			MinimumCommitment: -1,
			Properties: domain.ChargeProperties{
				Kind:     domain.ChargeModelStandard,
				Standard: &domain.StandardProperties{UnitPrice: -1},
			},
		}

		messages := validationMessages(t, charge.Validate())
		require.Contains(t, messages, "id")
		require.Contains(t, messages, "currency")
		require.Contains(t, messages, "min_amount")
		require.Contains(t, messages, "unit_price")
	})
}
