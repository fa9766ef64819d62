package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCharge_Amount(t *testing.T) {
	tests := []struct {
		name   string
		charge Charge
		basis  ChargeBasis
		want   float64
	}{
		{
			name:   "PercentageCapped",
			charge: Charge{Kind: KindPercentage, Value: 2, MaxAmount: ptr(150)},
			basis:  ChargeBasis{PercentOf: 10000},
			want:   150,
		},
		{
			name:   "PercentageUncapped",
			charge: Charge{Kind: KindPercentage, Value: 2},
			basis:  ChargeBasis{PercentOf: 10000},
			want:   200,
		},
		{
			name:   "PercentageFloored",
			charge: Charge{Kind: KindPercentage, Value: 1.5, MinAmount: ptr(30)},
			basis:  ChargeBasis{PercentOf: 1000},
			want:   30,
		},
		{
			name:   "Fixed",
			charge: Charge{Kind: KindFixed, Value: 25},
			want:   25,
		},
		{
			name:   "PerUnitWeight",
			charge: Charge{Kind: KindPerUnitWeight, Value: 1.5},
			basis:  ChargeBasis{Weight: 14.4},
			want:   21.6,
		},
		{
			name:   "PerPackage",
			charge: Charge{Kind: KindPerPackage, Value: 40},
			basis:  ChargeBasis{Packages: 3},
			want:   120,
		},
		{
			name:   "PerPackageDefaultsToOne",
			charge: Charge{Kind: KindPerPackage, Value: 40},
			want:   40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.charge.Amount(tt.basis))
		})
	}
}

func TestParseChargeCategory(t *testing.T) {
	assert.Equal(t, CategoryFuel, ParseChargeCategory("fuel_surcharge"))
	assert.Equal(t, CategoryCOD, ParseChargeCategory("COD_PERCENTAGE"))
	assert.Equal(t, CategoryODA, ParseChargeCategory(" out_of_area "))
	assert.Equal(t, CategoryRTO, ParseChargeCategory("RETURN_RISK"))
	assert.Equal(t, CategoryOther, ParseChargeCategory("GREEN_TAX"))
	assert.Equal(t, CategoryOther, ParseChargeCategory(""))
}

func TestParseCalculationKind(t *testing.T) {
	assert.Equal(t, KindPercentage, ParseCalculationKind("percent"))
	assert.Equal(t, KindPerUnitWeight, ParseCalculationKind("PER_KG"))
	assert.Equal(t, KindPerPackage, ParseCalculationKind("per_package"))
	assert.Equal(t, KindFixed, ParseCalculationKind("FIXED"))
	assert.Equal(t, KindFixed, ParseCalculationKind("flat_fee"))
}

func TestCharge_UnmarshalJSON(t *testing.T) {
	var c Charge
	err := json.Unmarshal([]byte(`{"category":"fuel_surcharge","kind":"percent","value":12,"max_amount":90}`), &c)
	require.NoError(t, err)

	assert.Equal(t, CategoryFuel, c.Category)
	assert.Equal(t, KindPercentage, c.Kind)
	require.NotNil(t, c.MaxAmount)
	assert.Equal(t, 90.0, *c.MaxAmount)
}

func TestCharge_AppliesTo(t *testing.T) {
	assert.True(t, Charge{}.AppliesTo("C"))
	assert.True(t, Charge{Zone: "c"}.AppliesTo("C"))
	assert.False(t, Charge{Zone: "D"}.AppliesTo("C"))
}
