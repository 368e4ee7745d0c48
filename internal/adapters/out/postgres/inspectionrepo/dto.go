// Package inspectionrepo provides data transfer objects and mapping functions
// for quality inspection persistence. Checklist results are stored as jsonb
// and photo URLs as a text array, so the inspection row stays a single record
// per order.
package inspectionrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// InspectionDTO represents the database structure for persisting quality
// inspection aggregates.
type InspectionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	InspectorID uuid.UUID `gorm:"type:uuid;index"`

	Status string `gorm:"index"`

	ChecklistResults []byte `gorm:"type:jsonb"`
	Notes            string
	FailureReason    string
	FailureCategory  string
	PhotoURLs        pq.StringArray `gorm:"type:text[]"`

	PartGrade           string
	ConditionAssessment string

	StartedAt   time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for inspection entities.
func (InspectionDTO) TableName() string {
	return "quality_inspections"
}

// fromDomain converts an inspection domain aggregate to its database
// representation.
func fromDomain(aggregate *inspection.QualityInspection) (InspectionDTO, error) {
	checklist, err := json.Marshal(aggregate.ChecklistResults())
	if err != nil {
		return InspectionDTO{}, err
	}

	return InspectionDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderID:             aggregate.OrderID().Bytes(),
		InspectorID:         aggregate.InspectorID().Bytes(),
		Status:              aggregate.Status().String(),
		ChecklistResults:    checklist,
		Notes:               aggregate.Notes(),
		FailureReason:       aggregate.FailureReason(),
		FailureCategory:     aggregate.FailureCategory(),
		PhotoURLs:           pq.StringArray(aggregate.PhotoURLs()),
		PartGrade:           aggregate.PartGrade().String(),
		ConditionAssessment: aggregate.ConditionAssessment(),
		StartedAt:           aggregate.StartedAt(),
		CompletedAt:         aggregate.CompletedAt(),
	}, nil
}

// toDomain converts a database DTO to an inspection domain aggregate.
func toDomain(dto InspectionDTO) (*inspection.QualityInspection, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	inspectorID, err := kernel.UUIDFromBytes(dto.InspectorID[:])
	if err != nil {
		return nil, err
	}

	var checklist []inspection.ChecklistItem
	if len(dto.ChecklistResults) > 0 {
		if err := json.Unmarshal(dto.ChecklistResults, &checklist); err != nil {
			return nil, err
		}
	}

	return inspection.RestoreInspection(
		id,
		orderID,
		inspectorID,
		inspection.Status(dto.Status),
		checklist,
		dto.Notes,
		dto.FailureReason,
		dto.FailureCategory,
		[]string(dto.PhotoURLs),
		inspection.Grade(dto.PartGrade),
		dto.ConditionAssessment,
		dto.StartedAt,
		dto.CompletedAt,
	)
}
