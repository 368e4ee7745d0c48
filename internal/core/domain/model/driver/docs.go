// Package driver provides the Driver aggregate root managing driver identity,
// vehicle details, and availability.
//
// A driver flips between Available and Busy as assignments are bound and
// released. The exclusivity rule (one active assignment per driver) is
// enforced through MarkBusy, which refuses work for a driver who is not
// Available, combined with locking reads in the persistence layer.
package driver
