package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root for a car-part order moving through fulfillment:
// collection from the garage, quality inspection, delivery to the customer,
// and the return leg when inspection fails.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and order number
//   - Status transitions follow the fulfillment state machine
//   - Every status transition produces an append-only StatusChange record
//   - Can only be created through NewOrder or RestoreOrder
//
// Pending StatusChange records accumulate on the aggregate and are persisted
// together with the order row in the same transaction, so an order status can
// never change without a matching history entry.
type Order struct {
	id          kernel.UUID
	orderNumber string

	customerID kernel.UUID
	garageID   kernel.UUID
	driverID   *kernel.UUID

	partDescription string

	garageAddress    kernel.Address
	deliveryAddress  kernel.Address
	garageLocation   *kernel.GeoPoint
	deliveryLocation *kernel.GeoPoint

	partPrice   float64
	deliveryFee float64
	totalAmount float64

	status        Status
	statusChanges []StatusChange

	isConstructed bool
}

// NewOrder creates a new Order awaiting collection. This is the entry point for
// orders handed over from checkout: the garage has confirmed the part and the
// order starts in ReadyForPickup.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	garageID kernel.UUID,
	partDescription string,
	garageAddress kernel.Address,
	deliveryAddress kernel.Address,
	garageLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	partPrice float64,
	deliveryFee float64,
) (*Order, error) {
	order := &Order{
		status:        ReadyForPickup,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerID(customerID),
		order.setGarageID(garageID),
		order.setPartDescription(partDescription),
		order.setGarageAddress(garageAddress),
		order.setDeliveryAddress(deliveryAddress),
		order.setGarageLocation(garageLocation),
		order.setDeliveryLocation(deliveryLocation),
		order.setPricing(partPrice, deliveryFee),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without altering its
// state. The stored status must be a valid order status.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	garageID kernel.UUID,
	driverID *kernel.UUID,
	partDescription string,
	garageAddress kernel.Address,
	deliveryAddress kernel.Address,
	garageLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	partPrice float64,
	deliveryFee float64,
	status Status,
) (*Order, error) {
	order, err := NewOrder(id, orderNumber, customerID, garageID, partDescription,
		garageAddress, deliveryAddress, garageLocation, deliveryLocation, partPrice, deliveryFee)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	order.status = status

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		id := *driverID
		order.driverID = &id
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number, e.g. "ORD-1718190000-4821".
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the buying customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// GarageID returns the selling garage's identifier.
func (o *Order) GarageID() kernel.UUID {
	return o.garageID
}

// Driver returns the assigned driver's ID, or nil if no driver is bound.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// PartDescription returns the description of the car part being fulfilled.
func (o *Order) PartDescription() string {
	return o.partDescription
}

// GarageAddress returns the pickup address at the selling garage.
func (o *Order) GarageAddress() kernel.Address {
	return o.garageAddress
}

// DeliveryAddress returns the customer's delivery address.
func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
}

// GarageLocation returns the garage's coordinates, or nil when not geocoded.
func (o *Order) GarageLocation() *kernel.GeoPoint {
	return o.garageLocation
}

// DeliveryLocation returns the delivery coordinates, or nil when not geocoded.
func (o *Order) DeliveryLocation() *kernel.GeoPoint {
	return o.deliveryLocation
}

// PartPrice returns the price of the part.
func (o *Order) PartPrice() float64 {
	return o.partPrice
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// TotalAmount returns the total charged to the customer.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PendingStatusChanges returns the history records produced by transitions on
// this instance since it was constructed. The repository persists them with
// the order and in the same transaction.
func (o *Order) PendingStatusChanges() []StatusChange {
	return o.statusChanges
}

// Collect marks the part as picked up from the garage.
//
// Business rules:
//   - The order must be in ReadyForPickup status
func (o *Order) Collect(actor Actor, reason string) error {
	return o.transition(Collected, ReadyForPickup, actor, reason)
}

// BindDriver attaches a driver to the order without changing its status.
// Used when a driver is already known at collection time.
func (o *Order) BindDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	o.driverID = &driverID
	return nil
}

// PassInspection records a successful quality inspection.
//
// Business rules:
//   - The order must be in Collected status
func (o *Order) PassInspection(actor Actor, reason string) error {
	return o.transition(QCPassed, Collected, actor, reason)
}

// FailInspection records a failed quality inspection.
//
// Business rules:
//   - The order must be in Collected status
func (o *Order) FailInspection(actor Actor, reason string) error {
	return o.transition(QCFailed, Collected, actor, reason)
}

// Dispatch assigns a driver for the customer delivery leg and puts the order
// in transit.
//
// Business rules:
//   - The order must have passed quality inspection (QCPassed status);
//     this is the hard gate that keeps uninspected parts away from customers
//   - The driver ID must be valid
func (o *Order) Dispatch(driverID kernel.UUID, actor Actor, reason string) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.transition(InTransit, QCPassed, actor, reason); err != nil {
		return err
	}

	o.driverID = &driverID
	return nil
}

// MarkDelivered records that the part reached the customer.
//
// Business rules:
//   - The order must be in InTransit status
func (o *Order) MarkDelivered(actor Actor, reason string) error {
	return o.transition(Delivered, InTransit, actor, reason)
}

// Complete finishes the order after delivery. This is the final state.
//
// Business rules:
//   - The order must be in Delivered status
func (o *Order) Complete(actor Actor, reason string) error {
	return o.transition(Completed, Delivered, actor, reason)
}

// StartReturn puts a failed part on its way back to the garage.
//
// Business rules:
//   - The order must have failed quality inspection (QCFailed status)
func (o *Order) StartReturn(actor Actor, reason string) error {
	return o.transition(ReturningToGarage, QCFailed, actor, reason)
}

// transition moves the order to target after checking the transition table,
// recording a StatusChange for the move. required is the status the calling
// operation demands; it is surfaced in the precondition error so API clients
// can see why the operation was refused.
func (o *Order) transition(target Status, required Status, actor Actor, reason string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewPreconditionFailedError("order", o.id.String(), o.status.String(), required.String())
	}

	o.statusChanges = append(o.statusChanges, newStatusChange(o.id, o.status, target, actor, reason))
	o.status = target
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing order number.
func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

// setCustomerID validates and sets the customer's identifier.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

// setGarageID validates and sets the garage's identifier.
func (o *Order) setGarageID(garageID kernel.UUID) error {
	if err := garageID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("garageID", err)
	}
	o.garageID = garageID
	return nil
}

// setPartDescription validates and sets the part description.
func (o *Order) setPartDescription(partDescription string) error {
	if partDescription == "" {
		return errs.NewValueIsRequiredError("partDescription")
	}
	o.partDescription = partDescription
	return nil
}

// setGarageAddress validates and sets the pickup address.
func (o *Order) setGarageAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("garageAddress", err)
	}
	o.garageAddress = address
	return nil
}

// setDeliveryAddress validates and sets the delivery address.
func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryAddress", err)
	}
	o.deliveryAddress = address
	return nil
}

// setGarageLocation validates and sets the optional garage coordinates.
func (o *Order) setGarageLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("garageLocation", err)
	}
	point := *location
	o.garageLocation = &point
	return nil
}

// setDeliveryLocation validates and sets the optional delivery coordinates.
func (o *Order) setDeliveryLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryLocation", err)
	}
	point := *location
	o.deliveryLocation = &point
	return nil
}

// setPricing validates the amounts and derives the total.
func (o *Order) setPricing(partPrice float64, deliveryFee float64) error {
	if partPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("partPrice is invalid",
			fmt.Errorf("%f is negative", partPrice))
	}
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee is invalid",
			fmt.Errorf("%f is negative", deliveryFee))
	}

	o.partPrice = partPrice
	o.deliveryFee = deliveryFee
	o.totalAmount = partPrice + deliveryFee
	return nil
}
