package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/inspectionrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPendingReturnsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPendingReturnsQueryHandler
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &inspectionrepo.InspectionDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetPendingReturnsQueryHandler(db)
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, quality_inspections CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetPendingReturnsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) TestHandle_ReturnsFailedOrdersWithVerdictOldestFirst() {
	now := time.Now().UTC()

	first := suite.seedOrder("ORD-1718190000-0001", order.QCFailed)
	suite.seedFailedInspection(first.ID, "damage", "Deep crack across the mounting bracket", now.Add(-2*time.Hour))

	second := suite.seedOrder("ORD-1718190000-0002", order.QCFailed)
	suite.seedFailedInspection(second.ID, "wrong_part", "Listing says left side, part is right side", now.Add(-time.Hour))

	// Returns already on the road stay out of the queue
	returning := suite.seedOrder("ORD-1718190000-0003", order.ReturningToGarage)
	suite.seedFailedInspection(returning.ID, "damage", "Bent beyond tolerance on both ends", now.Add(-3*time.Hour))

	query := queries.NewGetPendingReturnsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("ORD-1718190000-0001", result[0].OrderNumber)
	suite.Equal(first.ID, result[0].ID.Bytes())
	suite.Equal(first.GarageID, result[0].GarageID.Bytes())
	suite.Equal("12 Garage St", result[0].GarageAddress)
	suite.Equal("damage", result[0].FailureCategory)
	suite.Equal("Deep crack across the mounting bracket", result[0].FailureReason)
	suite.Require().NotNil(result[0].FailedAt)
	suite.WithinDuration(now.Add(-2*time.Hour), *result[0].FailedAt, time.Second)

	suite.Equal("ORD-1718190000-0002", result[1].OrderNumber)
	suite.Equal("wrong_part", result[1].FailureCategory)
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPendingReturnsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetPendingReturnsQuery constructor")
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) seedOrder(
	orderNumber string, status order.Status) orderrepo.OrderDTO {
	dto := orderrepo.OrderDTO{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		CustomerID:      uuid.New(),
		GarageID:        uuid.New(),
		PartDescription: "Front brake pads for Nissan Patrol 2019",
		GarageAddress:   "12 Garage St",
		DeliveryAddress: "34 Customer Ave",
		PartPrice:       150,
		DeliveryFee:     25,
		TotalAmount:     175,
		Status:          status.String(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto
}

func (suite *GetPendingReturnsQueryHandlerTestSuite) seedFailedInspection(
	orderID uuid.UUID, category, reason string, completedAt time.Time) {
	dto := inspectionrepo.InspectionDTO{
		ID:              uuid.New(),
		OrderID:         orderID,
		InspectorID:     uuid.New(),
		Status:          inspection.Failed.String(),
		FailureReason:   reason,
		FailureCategory: category,
		PartGrade:       inspection.GradeReject.String(),
		StartedAt:       completedAt.Add(-20 * time.Minute),
		CompletedAt:     &completedAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func TestGetPendingReturnsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPendingReturnsQueryHandlerTestSuite))
}
