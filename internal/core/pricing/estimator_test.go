package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

func TestEstimate_BulkRefrigeratedUrgent(t *testing.T) {
	// 12000 L > breakpoint -> rate 2.5; urgent 1.8; refrigerated 1.3;
	// temperature control 1.2 and insurance 1.1 -> 12000*2.5*1.8*1.3*1.32
	got := Estimate(Input{
		Quantity:           12000,
		QuantityUnit:       domain.UnitLiters,
		Urgency:            domain.UrgencyUrgent,
		VehicleType:        "Refrigerated Truck",
		TemperatureControl: true,
		InsuranceRequired:  true,
	})
	assert.Equal(t, int64(92664), got)
}

func TestEstimate_BaseRates(t *testing.T) {
	tests := []struct {
		name     string
		unit     domain.QuantityUnit
		quantity float64
		want     int64
	}{
		{"liters below breakpoint", domain.UnitLiters, 10000, 30000},
		{"liters above breakpoint", domain.UnitLiters, 10001, 25003},
		{"tons below breakpoint", domain.UnitTons, 20, 3600},
		{"tons above breakpoint", domain.UnitTons, 21, 3150},
		{"barrels below breakpoint", domain.UnitBarrels, 100, 3000},
		{"barrels above breakpoint", domain.UnitBarrels, 101, 2525},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(Input{
				Quantity:     tt.quantity,
				QuantityUnit: tt.unit,
				Urgency:      domain.UrgencyMedium,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimate_UrgencyMultipliers(t *testing.T) {
	base := Input{Quantity: 100, QuantityUnit: domain.UnitBarrels}

	low := base
	low.Urgency = domain.UrgencyLow
	medium := base
	medium.Urgency = domain.UrgencyMedium
	high := base
	high.Urgency = domain.UrgencyHigh
	urgent := base
	urgent.Urgency = domain.UrgencyUrgent

	assert.Equal(t, int64(2400), Estimate(low))
	assert.Equal(t, int64(3000), Estimate(medium))
	assert.Equal(t, int64(3900), Estimate(high))
	assert.Equal(t, int64(5400), Estimate(urgent))
}

func TestEstimate_VehicleMultipliers(t *testing.T) {
	base := Input{Quantity: 10, QuantityUnit: domain.UnitTons, Urgency: domain.UrgencyMedium}

	plain := base
	plain.VehicleType = "Flatbed Truck"
	hazmat := base
	hazmat.VehicleType = "Hazmat Tanker"
	hazardous := base
	hazardous.VehicleType = "Hazardous Material Truck"
	fridge := base
	fridge.VehicleType = "refrigerated van"

	assert.Equal(t, int64(1800), Estimate(plain))
	assert.Equal(t, int64(2700), Estimate(hazmat))
	assert.Equal(t, int64(2700), Estimate(hazardous))
	assert.Equal(t, int64(2340), Estimate(fridge))
}

func TestEstimate_SpecialFlagsCompound(t *testing.T) {
	in := Input{
		Quantity:           10,
		QuantityUnit:       domain.UnitTons,
		Urgency:            domain.UrgencyMedium,
		TemperatureControl: true,
		HazardousMaterial:  true,
		InsuranceRequired:  true,
	}
	// 10*180 * 1.2*1.4*1.1 = 1800 * 1.848
	assert.Equal(t, int64(3326), Estimate(in))
}

// The rate is a step function: increasing quantity past the breakpoint must
// never increase the per-unit rate.
func TestEstimate_RateNonIncreasingInQuantity(t *testing.T) {
	units := []domain.QuantityUnit{domain.UnitLiters, domain.UnitTons, domain.UnitBarrels}
	for _, unit := range units {
		prev := baseRate(unit, 1)
		for q := 2.0; q < 30000; q *= 1.5 {
			rate := baseRate(unit, q)
			assert.LessOrEqual(t, rate, prev, "unit %s at quantity %v", unit, q)
			prev = rate
		}
	}
}

func TestEstimate_UnknownUnitIsZero(t *testing.T) {
	assert.Zero(t, Estimate(Input{Quantity: 100, QuantityUnit: "gallons", Urgency: domain.UrgencyHigh}))
}
