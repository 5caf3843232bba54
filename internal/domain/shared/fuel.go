package shared

import "fmt"

// Fuel represents an immutable fuel state
type Fuel struct {
	Current  int
	Capacity int
}

// NewFuel creates a new fuel value object with validation
func NewFuel(current, capacity int) (*Fuel, error) {
	if current < 0 {
		return nil, fmt.Errorf("current fuel cannot be negative")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("fuel capacity must be positive")
	}
	if current > capacity {
		return nil, fmt.Errorf("current fuel cannot exceed capacity")
	}

	return &Fuel{
		Current:  current,
		Capacity: capacity,
	}, nil
}

// FullTank returns a fuel value at capacity
func FullTank(capacity int) (*Fuel, error) {
	return NewFuel(capacity, capacity)
}

// CanTravel reports whether a leg of the given distance is affordable
func (f *Fuel) CanTravel(distance int) bool {
	return distance <= f.Current
}

// Consume returns new Fuel with the distance burned.
// The tank never clamps at zero: an unaffordable leg is an error.
func (f *Fuel) Consume(distance int) (*Fuel, error) {
	if distance < 0 {
		return nil, fmt.Errorf("fuel amount cannot be negative")
	}
	if !f.CanTravel(distance) {
		return nil, NewInsufficientFuelError(distance, f.Current)
	}
	return &Fuel{
		Current:  f.Current - distance,
		Capacity: f.Capacity,
	}, nil
}

// Refill returns a full tank. Refuelling overwrites, it never tops up.
func (f *Fuel) Refill() *Fuel {
	return &Fuel{
		Current:  f.Capacity,
		Capacity: f.Capacity,
	}
}

// Percentage returns fuel as percentage of capacity
func (f *Fuel) Percentage() float64 {
	if f.Capacity == 0 {
		return 0.0
	}
	return float64(f.Current) / float64(f.Capacity) * 100.0
}

func (f *Fuel) String() string {
	return fmt.Sprintf("Fuel(%d/%d)", f.Current, f.Capacity)
}
