package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusChangeDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_history").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrievedOrder.ID())
	suite.Equal(testOrder.OrderNumber(), retrievedOrder.OrderNumber())
	suite.Equal(testOrder.CustomerID(), retrievedOrder.CustomerID())
	suite.Equal(testOrder.GarageID(), retrievedOrder.GarageID())
	suite.Equal("Front brake pads for Nissan Patrol 2019", retrievedOrder.PartDescription())
	suite.Equal("12 Garage St", retrievedOrder.GarageAddress().String())
	suite.Equal("34 Customer Ave", retrievedOrder.DeliveryAddress().String())
	suite.InDelta(150.0, retrievedOrder.PartPrice(), 0.001)
	suite.InDelta(25.0, retrievedOrder.DeliveryFee(), 0.001)
	suite.InDelta(175.0, retrievedOrder.TotalAmount(), 0.001)
	suite.Equal(order.ReadyForPickup, retrievedOrder.Status())
	suite.Nil(retrievedOrder.Driver())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsCoordinates() {
	ctx := context.Background()

	garageLocation, err := kernel.NewGeoPoint(25.2048, 55.2708)
	suite.Require().NoError(err)
	deliveryLocation, err := kernel.NewGeoPoint(25.1124, 55.1390)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-1718190000-4821",
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Front brake pads for Nissan Patrol 2019",
		suite.mustAddress("12 Garage St"),
		suite.mustAddress("34 Customer Ave"),
		&garageLocation,
		&deliveryLocation,
		150,
		25,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NotNil(retrievedOrder.GarageLocation())
	suite.InDelta(25.2048, retrievedOrder.GarageLocation().Latitude(), 0.000001)
	suite.InDelta(55.2708, retrievedOrder.GarageLocation().Longitude(), 0.000001)
	suite.Require().NotNil(retrievedOrder.DeliveryLocation())
	suite.InDelta(25.1124, retrievedOrder.DeliveryLocation().Latitude(), 0.000001)
	suite.InDelta(55.1390, retrievedOrder.DeliveryLocation().Longitude(), 0.000001)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitionPersistsHistory() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	actor, err := order.NewActor("driver-7", order.ActorDriver)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Collect(actor, "Part collected from garage"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Collected, retrievedOrder.Status())

	var historyCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.StatusChangeDTO{}).
		Where("order_id = ?", testOrder.ID().Bytes()).Count(&historyCount).Error)
	suite.Equal(int64(1), historyCount)

	var row orderrepo.StatusChangeDTO
	suite.Require().NoError(suite.db.First(&row, "order_id = ?", testOrder.ID().Bytes()).Error)
	suite.Equal(order.ReadyForPickup.String(), row.FromStatus)
	suite.Equal(order.Collected.String(), row.ToStatus)
	suite.Equal("driver-7", row.ActorID)
	suite.Equal(string(order.ActorDriver), row.ActorKind)
	suite.Equal("Part collected from garage", row.Reason)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsDriverBinding() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driverID := kernel.NewUUID()
	suite.Require().NoError(testOrder.BindDriver(driverID))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.Driver())
	suite.True(driverID.IsEqual(*retrievedOrder.Driver()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrievedOrder, err := suite.repository.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// createTestOrder creates a valid order awaiting collection.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-1718190000-4821",
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Front brake pads for Nissan Patrol 2019",
		suite.mustAddress("12 Garage St"),
		suite.mustAddress("34 Customer Ave"),
		nil,
		nil,
		150,
		25,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) mustAddress(value string) kernel.Address {
	address, err := kernel.NewAddress(value)
	suite.Require().NoError(err)
	return address
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
