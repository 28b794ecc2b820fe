// Package pricing computes cost estimates for transport requests. The
// estimator is a pure function over the request's quantity, urgency, vehicle
// type and special-handling flags, so it can be tested exhaustively.
package pricing

import (
	"math"
	"strings"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// Input carries everything the estimator needs from a transport request.
type Input struct {
	Quantity           float64
	QuantityUnit       domain.QuantityUnit
	Urgency            domain.Urgency
	VehicleType        string
	TemperatureControl bool
	HazardousMaterial  bool
	InsuranceRequired  bool
}

// Estimate returns the estimated cost in whole currency units.
//
// The rate per unit is a step function of quantity: bulk quantities past the
// unit's breakpoint get the lower rate. The result is the rounded product of
// quantity, base rate and the urgency / vehicle / special-handling multipliers.
func Estimate(in Input) int64 {
	rate := baseRate(in.QuantityUnit, in.Quantity)
	cost := in.Quantity * rate * urgencyMultiplier(in.Urgency) * vehicleMultiplier(in.VehicleType) * specialMultiplier(in)
	return int64(math.Round(cost))
}

func baseRate(unit domain.QuantityUnit, quantity float64) float64 {
	switch unit {
	case domain.UnitLiters:
		if quantity > 10000 {
			return 2.5
		}
		return 3.0
	case domain.UnitTons:
		if quantity > 20 {
			return 150
		}
		return 180
	case domain.UnitBarrels:
		if quantity > 100 {
			return 25
		}
		return 30
	}
	return 0
}

func urgencyMultiplier(u domain.Urgency) float64 {
	switch u {
	case domain.UrgencyLow:
		return 0.8
	case domain.UrgencyHigh:
		return 1.3
	case domain.UrgencyUrgent:
		return 1.8
	default: // medium or unknown
		return 1.0
	}
}

func vehicleMultiplier(vehicleType string) float64 {
	vt := strings.ToLower(vehicleType)
	switch {
	case strings.Contains(vt, "hazmat"), strings.Contains(vt, "hazardous"):
		return 1.5
	case strings.Contains(vt, "refrigerated"):
		return 1.3
	}
	return 1.0
}

func specialMultiplier(in Input) float64 {
	m := 1.0
	if in.TemperatureControl {
		m *= 1.2
	}
	if in.HazardousMaterial {
		m *= 1.4
	}
	if in.InsuranceRequired {
		m *= 1.1
	}
	return m
}
