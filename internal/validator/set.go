package validator

import (
	"github.com/dvoicu/deploy-assistant/internal/models"
)

// Spec binds a Validator to the directions it applies to.
type Spec struct {
	Validator  Validator
	Directions []models.Direction
}

// Set holds the ordered validators for each direction. The order of the
// specs passed to NewSet is the evaluation order; it never changes at
// runtime, so a Set is safe to share between concurrent requests.
type Set struct {
	input  []Validator
	output []Validator
}

func NewSet(specs []Spec) *Set {
	s := &Set{}
	for _, spec := range specs {
		for _, direction := range spec.Directions {
			switch direction {
			case models.DirectionInput:
				s.input = append(s.input, spec.Validator)
			case models.DirectionOutput:
				s.output = append(s.output, spec.Validator)
			}
		}
	}
	return s
}

// For returns the validators applicable to a direction, in evaluation order.
func (s *Set) For(direction models.Direction) []Validator {
	if direction == models.DirectionInput {
		return s.input
	}
	return s.output
}
