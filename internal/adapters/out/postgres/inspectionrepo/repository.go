package inspectionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInspectionRepository implements InspectionRepository using GORM.
type GormInspectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInspectionRepository creates a new GORM inspection repository.
func NewGormInspectionRepository(db *gorm.DB, tracker aggregateTracker) *GormInspectionRepository {
	return &GormInspectionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert saves the inspection, replacing any existing row for the same order.
// Verdict re-submissions and re-inspections after a failed part came back
// land on the single row the order-unique index guarantees.
func (r *GormInspectionRepository) Upsert(ctx context.Context, aggregate *inspection.QualityInspection) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrder retrieves the inspection for an order, if one exists.
func (r *GormInspectionRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*inspection.QualityInspection, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InspectionDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inspection", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
