package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ActorKind classifies who performed a status change.
type ActorKind string

const (
	// ActorOperations is a member of the operations staff.
	ActorOperations ActorKind = "operations"
	// ActorDriver is a delivery driver.
	ActorDriver ActorKind = "driver"
	// ActorSystem is an automated process such as a scheduled job.
	ActorSystem ActorKind = "system"
)

// Validate checks if the ActorKind is one of the defined kinds.
func (k ActorKind) Validate() error {
	switch k {
	case ActorOperations, ActorDriver, ActorSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actor kind is invalid",
			fmt.Errorf("%q is not a valid actor kind", string(k)))
	}
}

// ErrActorIsNotConstructed is returned when attempting to use an improperly
// initialized Actor. Actors must be created via NewActor or SystemActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor or SystemActor constructors")

// Actor is an immutable value object identifying who changed an order's
// status. It is stamped into every history record.
type Actor struct {
	id    string
	kind  ActorKind
	guard guard.ConstructorGuard
}

// NewActor creates an Actor from an identifier and kind.
// The identifier is the authenticated user or driver ID.
func NewActor(id string, kind ActorKind) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if err := kind.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// SystemActor returns the actor used for automated status changes.
func SystemActor() Actor {
	actor, _ := NewActor("system", ActorSystem)
	return actor
}

// Validate checks if the Actor was properly constructed.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identifier.
func (a Actor) ID() string {
	return a.id
}

// Kind returns the actor's kind.
func (a Actor) Kind() ActorKind {
	return a.kind
}
