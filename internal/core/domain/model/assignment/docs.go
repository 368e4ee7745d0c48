// Package assignment provides the DeliveryAssignment aggregate root covering
// one physical movement of a part: the standard delivery leg from the
// inspection center to the customer, or the return leg back to the garage
// after a failed inspection.
//
// The package includes:
//   - DeliveryAssignment: The aggregate root with proof-of-delivery merging
//   - Status: A state machine for the leg (assigned, picked_up, in_transit,
//     delivered, failed; failed legs can be reassigned)
//   - Type: Distinguishes standard deliveries from returns
//
// Progress reports from the driver app are partial: absent fields keep their
// stored values so a later update never erases an earlier photo or signature.
package assignment
