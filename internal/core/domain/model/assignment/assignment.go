package assignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Type distinguishes the delivery leg an assignment covers.
type Type string

const (
	// TypeStandard is the inspection-center-to-customer delivery leg.
	TypeStandard Type = "standard"
	// TypeReturnToGarage is the return leg for parts that failed inspection.
	TypeReturnToGarage Type = "return_to_garage"
)

// Validate checks if the Type is one of the defined assignment types.
func (t Type) Validate() error {
	switch t {
	case TypeStandard, TypeReturnToGarage:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("assignment type is invalid",
			fmt.Errorf("%q is not a valid assignment type", string(t)))
	}
}

// String returns the wire representation of the type.
func (t Type) String() string {
	return string(t)
}

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized DeliveryAssignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"DeliveryAssignment must be created via NewAssignment or RestoreAssignment constructor")
	// ErrReturnReasonIsRequired is returned when creating a return assignment without a reason.
	ErrReturnReasonIsRequired = errs.NewValueIsRequiredError("returnReason")
)

// ProgressUpdate carries the optional proof-of-delivery fields a driver may
// attach while advancing an assignment. Empty fields keep the existing values,
// matching how partial progress reports arrive from the driver app.
type ProgressUpdate struct {
	DriverNotes      string
	RecipientName    string
	DeliveryPhotoURL string
	SignatureURL     string
	FailureReason    string
}

// DeliveryAssignment is the aggregate root for one physical movement of a
// part: either the standard delivery leg to the customer or the return leg to
// the garage after a failed inspection.
//
// Business rules:
//   - At most one assignment exists per order (enforced by the persistence
//     layer through an order-unique upsert)
//   - Status transitions follow the assignment state machine
//   - Proof-of-delivery fields merge keep-if-absent so partial updates never
//     erase earlier data
//   - Return assignments always carry the reason the part is going back
type DeliveryAssignment struct {
	id       kernel.UUID
	orderID  kernel.UUID
	driverID *kernel.UUID

	assignmentType Type
	status         Status

	pickupAddress   kernel.Address
	deliveryAddress kernel.Address

	estimatedPickupAt   *time.Time
	estimatedDeliveryAt *time.Time
	pickedUpAt          *time.Time
	deliveredAt         *time.Time

	currentLocation *kernel.GeoPoint
	locatedAt       *time.Time

	driverNotes      string
	recipientName    string
	deliveryPhotoURL string
	signatureURL     string
	failureReason    string
	returnReason     string

	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment in Assigned status.
// driverID may be nil: return assignments can be created before a driver is
// chosen for the leg. returnReason is mandatory for return assignments and
// must be empty for standard ones.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID *kernel.UUID,
	assignmentType Type,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	estimatedPickupAt *time.Time,
	estimatedDeliveryAt *time.Time,
	returnReason string,
) (*DeliveryAssignment, error) {
	assignment := &DeliveryAssignment{
		status: Assigned,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setOrderID(orderID),
		assignment.setDriverID(driverID),
		assignment.setType(assignmentType),
		assignment.setPickupAddress(pickupAddress),
		assignment.setDeliveryAddress(deliveryAddress),
		assignment.setReturnReason(assignmentType, returnReason),
	); err != nil {
		return nil, err
	}

	assignment.estimatedPickupAt = cloneTime(estimatedPickupAt)
	assignment.estimatedDeliveryAt = cloneTime(estimatedDeliveryAt)

	return assignment, nil
}

// RestoreAssignment reconstructs a DeliveryAssignment from persistent storage
// without altering its state.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID *kernel.UUID,
	assignmentType Type,
	status Status,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	estimatedPickupAt *time.Time,
	estimatedDeliveryAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	currentLocation *kernel.GeoPoint,
	locatedAt *time.Time,
	driverNotes string,
	recipientName string,
	deliveryPhotoURL string,
	signatureURL string,
	failureReason string,
	returnReason string,
) (*DeliveryAssignment, error) {
	assignment, err := NewAssignment(id, orderID, driverID, assignmentType,
		pickupAddress, deliveryAddress, estimatedPickupAt, estimatedDeliveryAt, returnReason)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	assignment.status = status
	assignment.pickedUpAt = cloneTime(pickedUpAt)
	assignment.deliveredAt = cloneTime(deliveredAt)
	assignment.locatedAt = cloneTime(locatedAt)
	assignment.driverNotes = driverNotes
	assignment.recipientName = recipientName
	assignment.deliveryPhotoURL = deliveryPhotoURL
	assignment.signatureURL = signatureURL
	assignment.failureReason = failureReason

	if currentLocation != nil {
		if err := currentLocation.Validate(); err != nil {
			return nil, err
		}
		point := *currentLocation
		assignment.currentLocation = &point
	}

	return assignment, nil
}

// Validate checks if the DeliveryAssignment was properly constructed.
func (a *DeliveryAssignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares two assignments by their unique identifiers.
func (a *DeliveryAssignment) IsEqual(other *DeliveryAssignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *DeliveryAssignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order this assignment moves.
func (a *DeliveryAssignment) OrderID() kernel.UUID {
	return a.orderID
}

// Driver returns the bound driver's ID, or nil for driverless returns.
func (a *DeliveryAssignment) Driver() *kernel.UUID {
	return a.driverID
}

// Type returns the assignment type.
func (a *DeliveryAssignment) Type() Type {
	return a.assignmentType
}

// Status returns the assignment's current status.
func (a *DeliveryAssignment) Status() Status {
	return a.status
}

// PickupAddress returns where the driver collects the part.
func (a *DeliveryAssignment) PickupAddress() kernel.Address {
	return a.pickupAddress
}

// DeliveryAddress returns where the driver drops the part off.
func (a *DeliveryAssignment) DeliveryAddress() kernel.Address {
	return a.deliveryAddress
}

// EstimatedPickupAt returns the planned pickup time, if any.
func (a *DeliveryAssignment) EstimatedPickupAt() *time.Time {
	return cloneTime(a.estimatedPickupAt)
}

// EstimatedDeliveryAt returns the planned delivery time, if any.
func (a *DeliveryAssignment) EstimatedDeliveryAt() *time.Time {
	return cloneTime(a.estimatedDeliveryAt)
}

// PickedUpAt returns when the driver collected the part, if they have.
func (a *DeliveryAssignment) PickedUpAt() *time.Time {
	return cloneTime(a.pickedUpAt)
}

// DeliveredAt returns when the part was dropped off, if it has been.
func (a *DeliveryAssignment) DeliveredAt() *time.Time {
	return cloneTime(a.deliveredAt)
}

// CurrentLocation returns the driver's last reported position, if any.
func (a *DeliveryAssignment) CurrentLocation() *kernel.GeoPoint {
	if a.currentLocation == nil {
		return nil
	}
	point := *a.currentLocation
	return &point
}

// LocatedAt returns when the last position report arrived, if any.
func (a *DeliveryAssignment) LocatedAt() *time.Time {
	return cloneTime(a.locatedAt)
}

// DriverNotes returns the driver's free-form notes.
func (a *DeliveryAssignment) DriverNotes() string {
	return a.driverNotes
}

// RecipientName returns who accepted the delivery.
func (a *DeliveryAssignment) RecipientName() string {
	return a.recipientName
}

// DeliveryPhotoURL returns the proof-of-delivery photo URL.
func (a *DeliveryAssignment) DeliveryPhotoURL() string {
	return a.deliveryPhotoURL
}

// SignatureURL returns the recipient signature image URL.
func (a *DeliveryAssignment) SignatureURL() string {
	return a.signatureURL
}

// FailureReason returns why the leg failed, if it did.
func (a *DeliveryAssignment) FailureReason() string {
	return a.failureReason
}

// ReturnReason returns why the part is going back to the garage.
// Empty for standard assignments.
func (a *DeliveryAssignment) ReturnReason() string {
	return a.returnReason
}

// AssignDriver binds a driver to the assignment. Used for driverless return
// assignments once operations picks a driver for the leg.
//
// Business rules:
//   - The assignment must be in Assigned status
func (a *DeliveryAssignment) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if a.status != Assigned {
		return errs.NewPreconditionFailedError("assignment", a.id.String(),
			a.status.String(), Assigned.String())
	}

	a.driverID = &driverID
	return nil
}

// Reassign hands a failed assignment to a new driver, restarting the leg.
//
// Business rules:
//   - The assignment must be in Failed status
func (a *DeliveryAssignment) Reassign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if !a.status.CanTransitionTo(Assigned) {
		return errs.NewPreconditionFailedError("assignment", a.id.String(),
			a.status.String(), sourcesOf(Assigned))
	}

	a.status = Assigned
	a.driverID = &driverID
	a.failureReason = ""
	return nil
}

// Progress advances the assignment to target, merging the optional
// proof-of-delivery fields. Provided fields replace stored values, absent
// (empty) fields keep them.
//
// Side effects by target status:
//   - PickedUp stamps PickedUpAt with now
//   - Delivered stamps DeliveredAt with now
//
// Business rules:
//   - The transition must be allowed by the assignment state machine
func (a *DeliveryAssignment) Progress(target Status, update ProgressUpdate, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !a.status.CanTransitionTo(target) {
		return errs.NewPreconditionFailedError("assignment", a.id.String(),
			a.status.String(), sourcesOf(target))
	}

	a.status = target
	a.mergeUpdate(update)

	switch target {
	case PickedUp:
		at := now
		a.pickedUpAt = &at
	case Delivered:
		at := now
		a.deliveredAt = &at
	case Assigned, InTransit, Failed:
	}

	return nil
}

// UpdateLocation records the driver's live position. This is the lightweight
// tracking path: no status preconditions apply.
func (a *DeliveryAssignment) UpdateLocation(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	point := location
	at := now
	a.currentLocation = &point
	a.locatedAt = &at
	return nil
}

// mergeUpdate applies keep-if-absent merge semantics for progress fields.
func (a *DeliveryAssignment) mergeUpdate(update ProgressUpdate) {
	if update.DriverNotes != "" {
		a.driverNotes = update.DriverNotes
	}
	if update.RecipientName != "" {
		a.recipientName = update.RecipientName
	}
	if update.DeliveryPhotoURL != "" {
		a.deliveryPhotoURL = update.DeliveryPhotoURL
	}
	if update.SignatureURL != "" {
		a.signatureURL = update.SignatureURL
	}
	if update.FailureReason != "" {
		a.failureReason = update.FailureReason
	}
}

// setID sets the assignment's unique identifier with validation.
func (a *DeliveryAssignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setOrderID sets the order reference with validation.
func (a *DeliveryAssignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	a.orderID = orderID
	return nil
}

// setDriverID sets the optional driver reference with validation.
func (a *DeliveryAssignment) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverID", err)
	}
	id := *driverID
	a.driverID = &id
	return nil
}

// setType sets the assignment type with validation.
func (a *DeliveryAssignment) setType(assignmentType Type) error {
	if err := assignmentType.Validate(); err != nil {
		return err
	}
	a.assignmentType = assignmentType
	return nil
}

// setPickupAddress sets the pickup address with validation.
func (a *DeliveryAssignment) setPickupAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickupAddress", err)
	}
	a.pickupAddress = address
	return nil
}

// setDeliveryAddress sets the delivery address with validation.
func (a *DeliveryAssignment) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryAddress", err)
	}
	a.deliveryAddress = address
	return nil
}

// setReturnReason enforces the reason rules per assignment type.
func (a *DeliveryAssignment) setReturnReason(assignmentType Type, returnReason string) error {
	if assignmentType == TypeReturnToGarage && returnReason == "" {
		return ErrReturnReasonIsRequired
	}
	if assignmentType == TypeStandard && returnReason != "" {
		return errs.NewValueIsInvalidErrorWithCause("returnReason",
			errors.New("standard assignments cannot carry a return reason"))
	}

	a.returnReason = returnReason
	return nil
}

// cloneTime copies an optional timestamp so callers cannot mutate internals.
func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
