package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Upsert(ctx context.Context, a *assignment.DeliveryAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.DeliveryAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context,
	id kernel.UUID) (*assignment.DeliveryAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.DeliveryAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context,
	orderID kernel.UUID) (*assignment.DeliveryAssignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.DeliveryAssignment), args.Error(1)
}

type MockInspectionRepository struct{ mock.Mock }

func (m *MockInspectionRepository) Upsert(ctx context.Context, i *inspection.QualityInspection) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInspectionRepository) GetByOrder(ctx context.Context,
	orderID kernel.UUID) (*inspection.QualityInspection, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inspection.QualityInspection), args.Error(1)
}

// MockUoW satisfies every unit of work composite the handlers use, so each
// test wires only the repositories its handler touches.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) InspectionRepository() ports.InspectionRepository {
	args := m.Called()
	return args.Get(0).(ports.InspectionRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockInspectionUoWFactory struct{ mock.Mock }

func (m *MockInspectionUoWFactory) Create() commands.InspectionUoW {
	args := m.Called()
	return args.Get(0).(commands.InspectionUoW)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(notification ports.Notification) {
	m.Called(notification)
}

// expectAnyNotifications lets a test ignore post-commit notifications.
func expectAnyNotifications(notifier *MockNotifier) {
	notifier.On("Notify", mock.AnythingOfType("ports.Notification")).Return().Maybe()
}

// notificationWithEvent matches notifications by event name and audience.
func notificationWithEvent(audience ports.Audience, event string) any {
	return mock.MatchedBy(func(n ports.Notification) bool {
		return n.Audience == audience && n.Event == event
	})
}

func mustAddress(t *testing.T, value string) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress(value)
	require.NoError(t, err)
	return address
}

func operationsActor(t *testing.T) order.Actor {
	t.Helper()
	actor, err := order.NewActor("ops-1", order.ActorOperations)
	require.NoError(t, err)
	return actor
}

// orderInStatus builds an order restored in the given status.
func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	restored, err := order.RestoreOrder(
		kernel.NewUUID(),
		"ORD-1718190000-4821",
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		"Front brake pads, Toyota Corolla 2018",
		mustAddress(t, "12 Garage St"),
		mustAddress(t, "34 Customer Ave"),
		nil,
		nil,
		150, 25,
		status,
	)
	require.NoError(t, err)
	return restored
}

// driverInStatus builds a driver restored in the given status.
func driverInStatus(t *testing.T, status driver.Status) *driver.Driver {
	t.Helper()
	restored, err := driver.RestoreDriver(
		kernel.NewUUID(),
		"John Doe",
		"+971501234567",
		"van",
		"A 12345",
		"Toyota Hiace",
		status,
		7,
	)
	require.NoError(t, err)
	return restored
}

// assignmentInStatus builds an assignment of the given type and status with a
// bound driver.
func assignmentInStatus(t *testing.T, orderID kernel.UUID, driverID kernel.UUID,
	assignmentType assignment.Type, status assignment.Status) *assignment.DeliveryAssignment {
	t.Helper()
	returnReason := ""
	if assignmentType == assignment.TypeReturnToGarage {
		returnReason = "QC Failed: damage - cracked housing"
	}
	restored, err := assignment.RestoreAssignment(
		kernel.NewUUID(),
		orderID,
		&driverID,
		assignmentType,
		status,
		mustAddress(t, "QScrap Inspection Center"),
		mustAddress(t, "34 Customer Ave"),
		nil, nil, nil, nil,
		nil, nil,
		"", "", "", "", "",
		returnReason,
	)
	require.NoError(t, err)
	return restored
}
