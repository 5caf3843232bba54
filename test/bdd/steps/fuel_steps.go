package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
	"github.com/cucumber/godog"
)

// tankContext drives a single fuel tank along roads and through stations
type tankContext struct {
	tank      *shared.Fuel
	createErr error
	driveErr  error
}

func (tc *tankContext) reset() {
	tc.tank = nil
	tc.createErr = nil
	tc.driveErr = nil
}

func (tc *tankContext) requireTank() error {
	if tc.tank == nil {
		return fmt.Errorf("no tank in this scenario")
	}
	return nil
}

func (tc *tankContext) aTankHolding(current, capacity int) error {
	tank, err := shared.NewFuel(current, capacity)
	if err != nil {
		return err
	}
	tc.tank = tank
	return nil
}

func (tc *tankContext) aFullTankOf(capacity int) error {
	tank, err := shared.FullTank(capacity)
	if err != nil {
		return err
	}
	tc.tank = tank
	return nil
}

func (tc *tankContext) iFillATankWith(current, capacity int) error {
	tc.tank, tc.createErr = shared.NewFuel(current, capacity)
	return nil
}

func (tc *tankContext) iDriveRoads(table *godog.Table) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		values, err := rowInts(row, 0)
		if err != nil {
			return err
		}
		if err := tc.drive(values[0]); err != nil {
			return err
		}
		if tc.driveErr != nil {
			return nil
		}
	}
	return nil
}

func (tc *tankContext) iDriveARoadOfLength(distance int) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	return tc.drive(distance)
}

func (tc *tankContext) drive(distance int) error {
	next, err := tc.tank.Consume(distance)
	if err != nil {
		tc.driveErr = err
		return nil
	}
	tc.tank = next
	return nil
}

func (tc *tankContext) iStopAtAStation() error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	tc.tank = tc.tank.Refill()
	return nil
}

func (tc *tankContext) aRoadOfLengthShouldBeDrivable(distance int) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	if !tc.tank.CanTravel(distance) {
		return fmt.Errorf("road of %d should be drivable with %s", distance, tc.tank)
	}
	return nil
}

func (tc *tankContext) aRoadOfLengthShouldNotBeDrivable(distance int) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	if tc.tank.CanTravel(distance) {
		return fmt.Errorf("road of %d should not be drivable with %s", distance, tc.tank)
	}
	return nil
}

func (tc *tankContext) theTankShouldHold(current, capacity int) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	if tc.tank.Current != current || tc.tank.Capacity != capacity {
		return fmt.Errorf("expected Fuel(%d/%d), got %s", current, capacity, tc.tank)
	}
	return nil
}

func (tc *tankContext) theTankShouldBePercentFull(expected float64) error {
	if err := tc.requireTank(); err != nil {
		return err
	}
	if got := tc.tank.Percentage(); math.Abs(got-expected) > 0.01 {
		return fmt.Errorf("expected %.2f%% full, got %.2f%%", expected, got)
	}
	return nil
}

func (tc *tankContext) theDriveShouldFailNeedingButHaving(required, available int) error {
	var fuelErr *shared.InsufficientFuelError
	if !errors.As(tc.driveErr, &fuelErr) {
		return fmt.Errorf("expected an insufficient fuel error, got %v", tc.driveErr)
	}
	if fuelErr.Required != required || fuelErr.Available != available {
		return fmt.Errorf("expected need %d have %d, got %v", required, available, fuelErr)
	}
	return nil
}

func (tc *tankContext) theTankShouldBeRejectedWith(message string) error {
	if tc.createErr == nil {
		return fmt.Errorf("expected the tank to be rejected with %q", message)
	}
	if tc.createErr.Error() != message {
		return fmt.Errorf("expected %q, got %q", message, tc.createErr.Error())
	}
	return nil
}

func (tc *tankContext) theTankShouldBeAccepted() error {
	if tc.createErr != nil {
		return fmt.Errorf("expected the tank to be accepted, got %v", tc.createErr)
	}
	return nil
}

func InitializeFuelScenario(ctx *godog.ScenarioContext) {
	tc := &tankContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a tank holding (\d+) of (\d+)$`, tc.aTankHolding)
	ctx.Step(`^a full tank of (\d+)$`, tc.aFullTankOf)
	ctx.Step(`^I fill a tank with (-?\d+) of (-?\d+)$`, tc.iFillATankWith)

	ctx.Step(`^I drive a road of length (\d+)$`, tc.iDriveARoadOfLength)
	ctx.Step(`^I drive the roads:$`, tc.iDriveRoads)
	ctx.Step(`^I stop at a station$`, tc.iStopAtAStation)

	ctx.Step(`^a road of length (\d+) should be drivable$`, tc.aRoadOfLengthShouldBeDrivable)
	ctx.Step(`^a road of length (\d+) should not be drivable$`, tc.aRoadOfLengthShouldNotBeDrivable)
	ctx.Step(`^the tank should hold (\d+) of (\d+)$`, tc.theTankShouldHold)
	ctx.Step(`^the tank should be ([0-9.]+) percent full$`, tc.theTankShouldBePercentFull)
	ctx.Step(`^the drive should fail needing (\d+) but having (\d+)$`, tc.theDriveShouldFailNeedingButHaving)
	ctx.Step(`^the tank should be rejected with "([^"]*)"$`, tc.theTankShouldBeRejectedWith)
	ctx.Step(`^the tank should be accepted$`, tc.theTankShouldBeAccepted)
}
