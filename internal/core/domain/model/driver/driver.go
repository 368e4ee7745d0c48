package driver

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrVehicleTypeIsRequired is returned when attempting to create a driver without a vehicle type.
	ErrVehicleTypeIsRequired = errs.NewValueIsRequiredError("vehicleType")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, vehicle details, and
// availability for assignments.
//
// Business rules:
//   - A driver is either Available or Busy, never both
//   - Only an Available driver can be bound to a new assignment
//   - Releasing a driver after a completed delivery increments the lifetime
//     delivery counter; releasing after a failed delivery does not
type Driver struct {
	id    kernel.UUID
	name  string
	phone string

	vehicleType  string
	vehiclePlate string
	vehicleModel string

	status          Status
	totalDeliveries int

	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver who starts out Available with no deliveries.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number shared with customers during deliveries (must be non-empty)
//   - vehicleType: Kind of vehicle, e.g. "van" or "motorcycle" (must be non-empty)
//   - vehiclePlate: Registration plate (may be empty for unregistered vehicles)
//   - vehicleModel: Model description (may be empty)
func NewDriver(id kernel.UUID, name string, phone string,
	vehicleType string, vehiclePlate string, vehicleModel string) (*Driver, error) {
	driver := &Driver{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setPhone(phone),
		driver.setVehicle(vehicleType, vehiclePlate, vehicleModel),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// preserving status and the lifetime delivery counter.
func RestoreDriver(id kernel.UUID, name string, phone string,
	vehicleType string, vehiclePlate string, vehicleModel string,
	status Status, totalDeliveries int) (*Driver, error) {
	driver, err := NewDriver(id, name, phone, vehicleType, vehiclePlate, vehicleModel)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if totalDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalDeliveries", totalDeliveries, 0, int(^uint(0)>>1))
	}

	driver.status = status
	driver.totalDeliveries = totalDeliveries
	return driver, nil
}

// IsEqual compares two drivers for equality based on their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed using a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// VehicleType returns the kind of vehicle the driver operates.
func (d *Driver) VehicleType() string {
	return d.vehicleType
}

// VehiclePlate returns the vehicle's registration plate.
func (d *Driver) VehiclePlate() string {
	return d.vehiclePlate
}

// VehicleModel returns the vehicle's model description.
func (d *Driver) VehicleModel() string {
	return d.vehicleModel
}

// Status returns the driver's current availability status.
func (d *Driver) Status() Status {
	return d.status
}

// TotalDeliveries returns the driver's lifetime completed delivery count.
func (d *Driver) TotalDeliveries() int {
	return d.totalDeliveries
}

// IsAvailable reports whether the driver can take a new assignment.
func (d *Driver) IsAvailable() bool {
	return d.status == Available
}

// MarkBusy binds the driver to active work.
//
// Business rules:
//   - The driver must be Available; a Busy driver cannot take another
//     assignment
func (d *Driver) MarkBusy() error {
	if d.status != Available {
		return errs.NewDriverUnavailableError(d.id.String(), d.status.String())
	}

	d.status = Busy
	return nil
}

// Release frees the driver after an assignment reached a terminal outcome.
// When completedDelivery is true the lifetime delivery counter is incremented;
// a failed delivery releases the driver without counting.
func (d *Driver) Release(completedDelivery bool) {
	d.status = Available
	if completedDelivery {
		d.totalDeliveries++
	}
}

// setID sets the driver's unique identifier with validation.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setPhone sets the driver's contact number with validation.
func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	d.phone = phone
	return nil
}

// setVehicle sets the vehicle descriptors. Only the type is mandatory.
func (d *Driver) setVehicle(vehicleType string, vehiclePlate string, vehicleModel string) error {
	if vehicleType == "" {
		return ErrVehicleTypeIsRequired
	}

	d.vehicleType = vehicleType
	d.vehiclePlate = vehiclePlate
	d.vehicleModel = vehicleModel
	return nil
}
