package ports

// Audience identifies who a notification is addressed to.
type Audience string

const (
	// AudienceCustomer addresses the order's buying customer.
	AudienceCustomer Audience = "customer"
	// AudienceGarage addresses the selling garage.
	AudienceGarage Audience = "garage"
	// AudienceDriver addresses the assigned driver.
	AudienceDriver Audience = "driver"
	// AudienceOperations broadcasts to all operations staff.
	AudienceOperations Audience = "operations"
)

// Notification is one event addressed to a single audience. RecipientID is
// empty for operations broadcasts.
type Notification struct {
	Audience    Audience
	RecipientID string
	Event       string
	Payload     map[string]any
}

// Notifier delivers workflow notifications to external parties.
//
// Delivery is fire-and-forget: handlers call Notify strictly after their
// transaction commits, and implementations must never let a delivery failure
// surface as an operation failure. Implementations log failures instead.
// Notify must therefore not return an error and must be safe for concurrent
// use.
type Notifier interface {
	Notify(notification Notification)
}
