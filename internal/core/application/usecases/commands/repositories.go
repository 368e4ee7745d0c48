// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit notification.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
// Each handler depends only on the repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// InspectionRepoFactory provides access to the inspection repository within a transaction.
	InspectionRepoFactory interface {
		InspectionRepository() ports.InspectionRepository
	}

	// FulfillmentUoW manages transactions for operations that move an order and
	// its delivery leg together: collection, dispatch, and delivery progress.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		AssignmentRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// InspectionUoW manages transactions for quality inspection operations,
	// which touch the order and its inspection record.
	InspectionUoW interface {
		TxManager
		OrderRepoFactory
		InspectionRepoFactory
	}

	// InspectionUoWFactory creates new inspection unit of work instances.
	InspectionUoWFactory interface {
		Create() InspectionUoW
	}

	// ReturnUoW manages transactions for the return flow, which reads the
	// failed inspection and coordinates order, driver, and assignment.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		AssignmentRepoFactory
		InspectionRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// TrackingUoW manages transactions for live location updates, which touch
	// the assignment and read the order for notification routing.
	TrackingUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}
)
