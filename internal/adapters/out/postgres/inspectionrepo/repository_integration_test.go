package inspectionrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/inspectionrepo"
	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
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

// InspectionRepositoryIntegrationTestSuite provides integration tests for
// InspectionRepository, covering the jsonb checklist and text array photo
// columns alongside the order-unique upsert.
type InspectionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inspectionrepo.GormInspectionRepository
	tracker    *MockAggregateTracker
}

func (suite *InspectionRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inspectionrepo.InspectionDTO{}))
}

func (suite *InspectionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE quality_inspections").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = inspectionrepo.NewGormInspectionRepository(suite.db, suite.tracker)
}

func (suite *InspectionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestUpsert_OpenInspection_Inserts() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	record, err := inspection.NewInspection(kernel.NewUUID(), orderID, kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	retrieved, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(record.ID(), retrieved.ID())
	suite.Equal(inspection.InProgress, retrieved.Status())
	suite.Empty(retrieved.PhotoURLs())
	suite.Nil(retrieved.CompletedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestUpsert_FailedVerdict_RoundTripsFindings() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	inspectorID := kernel.NewUUID()

	record, err := inspection.NewInspection(kernel.NewUUID(), orderID, inspectorID, time.Now().UTC())
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	suite.Require().NoError(record.SubmitFailed(inspectorID, inspection.Report{
		ChecklistResults: []inspection.ChecklistItem{
			{Criterion: "part matches listing", Passed: true},
			{Criterion: "no structural damage", Passed: false, Note: "crack across mounting bracket"},
		},
		Notes:           "Part unusable",
		FailureReason:   "Deep crack across the mounting bracket",
		FailureCategory: "damage",
		PhotoURLs:       []string{"https://cdn.example.com/qc/1.jpg", "https://cdn.example.com/qc/2.jpg"},
	}, now))

	suite.tracker.On("TrackAggregate", record.ID(), record)
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	retrieved, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(inspection.Failed, retrieved.Status())
	suite.Equal(inspection.GradeReject, retrieved.PartGrade())
	suite.Equal("Deep crack across the mounting bracket", retrieved.FailureReason())
	suite.Equal("damage", retrieved.FailureCategory())
	suite.Equal("Part unusable", retrieved.Notes())

	checklist := retrieved.ChecklistResults()
	suite.Require().Len(checklist, 2)
	suite.Equal("part matches listing", checklist[0].Criterion)
	suite.True(checklist[0].Passed)
	suite.Equal("crack across mounting bracket", checklist[1].Note)

	suite.Equal([]string{
		"https://cdn.example.com/qc/1.jpg",
		"https://cdn.example.com/qc/2.jpg",
	}, retrieved.PhotoURLs())

	suite.Require().NotNil(retrieved.CompletedAt())
	suite.WithinDuration(now, *retrieved.CompletedAt(), time.Second)
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestUpsert_Resubmission_UpdatesSingleRow() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	inspectorID := kernel.NewUUID()

	record, err := inspection.NewInspection(kernel.NewUUID(), orderID, inspectorID, time.Now().UTC())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", record.ID(), record)
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	// Verdict lands on the same row
	suite.Require().NoError(record.SubmitPassed(inspectorID, inspection.Report{
		PartGrade: inspection.GradeA,
	}, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Upsert(ctx, record))

	var count int64
	suite.Require().NoError(suite.db.Model(&inspectionrepo.InspectionDTO{}).
		Where("order_id = ?", orderID.Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)

	retrieved, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(inspection.Passed, retrieved.Status())
	suite.Equal(inspection.GradeA, retrieved.PartGrade())
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestGetByOrder_NoInspection_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByOrder(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func TestInspectionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InspectionRepositoryIntegrationTestSuite))
}
