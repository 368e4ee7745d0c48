package inspection

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// FailureReasonMinLength is the minimum length of a failure reason. Short
// reasons like "bad" give the garage nothing to act on, so failed verdicts
// must explain themselves.
const FailureReasonMinLength = 10

// Status represents the state of a quality inspection.
type Status string

const (
	// InProgress means an inspector has opened the inspection.
	InProgress Status = "in_progress"
	// Passed means the part met the quality bar and can be dispatched.
	Passed Status = "passed"
	// Failed means the part must be returned to the garage.
	Failed Status = "failed"
)

// Validate checks if the Status is one of the defined inspection statuses.
func (s Status) Validate() error {
	switch s {
	case InProgress, Passed, Failed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid inspection status", string(s)))
	}
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// Grade is the assessed quality grade of an inspected part.
type Grade string

const (
	// GradeA is a part in excellent condition.
	GradeA Grade = "A"
	// GradeB is a part in good, serviceable condition. The default on pass.
	GradeB Grade = "B"
	// GradeC is a part in acceptable but worn condition.
	GradeC Grade = "C"
	// GradeReject marks a part that failed inspection.
	GradeReject Grade = "reject"
)

// Validate checks if the Grade is one of the defined grades.
func (g Grade) Validate() error {
	switch g {
	case GradeA, GradeB, GradeC, GradeReject:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("partGrade is invalid",
			fmt.Errorf("%q is not a valid part grade", string(g)))
	}
}

// String returns the wire representation of the grade.
func (g Grade) String() string {
	return string(g)
}

// ChecklistItem is one criterion the inspector checked, with the outcome and
// an optional note.
type ChecklistItem struct {
	Criterion string `json:"criterion"`
	Passed    bool   `json:"passed"`
	Note      string `json:"note,omitempty"`
}

// Report carries the fields of a verdict submission. Absent fields (empty
// strings, nil slices) keep the values already stored on the inspection, so a
// re-submission never erases earlier findings. Photo URLs append.
type Report struct {
	ChecklistResults    []ChecklistItem
	Notes               string
	FailureReason       string
	FailureCategory     string
	PhotoURLs           []string
	PartGrade           Grade
	ConditionAssessment string
}

// Domain errors for inspection operations.
var (
	// ErrInspectionIsNotConstructed is returned when using an improperly initialized QualityInspection.
	ErrInspectionIsNotConstructed = errors.New(
		"QualityInspection must be created via NewInspection or RestoreInspection constructor")
	// ErrFailureReasonTooShort is returned when a failed verdict's reason is shorter than FailureReasonMinLength.
	ErrFailureReasonTooShort = errs.NewValueIsInvalidErrorWithCause("failureReason",
		fmt.Errorf("must be at least %d characters", FailureReasonMinLength))
	// ErrFailureCategoryIsRequired is returned when a failed verdict omits the failure category.
	ErrFailureCategoryIsRequired = errs.NewValueIsRequiredError("failureCategory")
)

// QualityInspection is the aggregate root for the quality control of one
// order's part. There is at most one inspection per order; re-inspections
// after a failed verdict update the same record.
//
// Business rules:
//   - Starting an inspection is idempotent: an existing inspection is
//     returned untouched
//   - A failed verdict must carry a failure reason of at least
//     FailureReasonMinLength characters and a failure category
//   - Photo URLs accumulate across submissions; scalar findings merge
//     keep-if-absent
//   - A passed part is graded A, B, or C (defaulting to B); a failed part is
//     always graded reject
type QualityInspection struct {
	id          kernel.UUID
	orderID     kernel.UUID
	inspectorID kernel.UUID

	status Status

	checklistResults    []ChecklistItem
	notes               string
	failureReason       string
	failureCategory     string
	photoURLs           []string
	partGrade           Grade
	conditionAssessment string

	startedAt   time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewInspection opens a quality inspection for an order.
func NewInspection(id kernel.UUID, orderID kernel.UUID, inspectorID kernel.UUID,
	startedAt time.Time) (*QualityInspection, error) {
	inspection := &QualityInspection{
		status:    InProgress,
		startedAt: startedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inspection.setID(id),
		inspection.setOrderID(orderID),
		inspection.setInspectorID(inspectorID),
	); err != nil {
		return nil, err
	}

	return inspection, nil
}

// RestoreInspection reconstructs a QualityInspection from persistent storage.
func RestoreInspection(
	id kernel.UUID,
	orderID kernel.UUID,
	inspectorID kernel.UUID,
	status Status,
	checklistResults []ChecklistItem,
	notes string,
	failureReason string,
	failureCategory string,
	photoURLs []string,
	partGrade Grade,
	conditionAssessment string,
	startedAt time.Time,
	completedAt *time.Time,
) (*QualityInspection, error) {
	inspection, err := NewInspection(id, orderID, inspectorID, startedAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if partGrade != "" {
		if err := partGrade.Validate(); err != nil {
			return nil, err
		}
	}

	inspection.status = status
	inspection.checklistResults = cloneChecklist(checklistResults)
	inspection.notes = notes
	inspection.failureReason = failureReason
	inspection.failureCategory = failureCategory
	inspection.photoURLs = cloneStrings(photoURLs)
	inspection.partGrade = partGrade
	inspection.conditionAssessment = conditionAssessment
	if completedAt != nil {
		at := *completedAt
		inspection.completedAt = &at
	}

	return inspection, nil
}

// Validate checks if the QualityInspection was properly constructed.
func (i *QualityInspection) Validate() error {
	if i == nil {
		return ErrInspectionIsNotConstructed
	}
	return i.guard.Validate(ErrInspectionIsNotConstructed)
}

// IsEqual compares two inspections by their unique identifiers.
func (i *QualityInspection) IsEqual(other *QualityInspection) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the inspection's unique identifier.
func (i *QualityInspection) ID() kernel.UUID {
	return i.id
}

// OrderID returns the inspected order.
func (i *QualityInspection) OrderID() kernel.UUID {
	return i.orderID
}

// InspectorID returns who performed the inspection.
func (i *QualityInspection) InspectorID() kernel.UUID {
	return i.inspectorID
}

// Status returns the inspection's current status.
func (i *QualityInspection) Status() Status {
	return i.status
}

// ChecklistResults returns the inspector's checklist findings.
func (i *QualityInspection) ChecklistResults() []ChecklistItem {
	return cloneChecklist(i.checklistResults)
}

// Notes returns the inspector's free-form notes.
func (i *QualityInspection) Notes() string {
	return i.notes
}

// FailureReason returns why the part failed, if it did.
func (i *QualityInspection) FailureReason() string {
	return i.failureReason
}

// FailureCategory returns the failure classification, if the part failed.
func (i *QualityInspection) FailureCategory() string {
	return i.failureCategory
}

// PhotoURLs returns the accumulated inspection photo URLs.
func (i *QualityInspection) PhotoURLs() []string {
	return cloneStrings(i.photoURLs)
}

// PartGrade returns the assessed grade. Empty while in progress.
func (i *QualityInspection) PartGrade() Grade {
	return i.partGrade
}

// ConditionAssessment returns the inspector's condition summary.
func (i *QualityInspection) ConditionAssessment() string {
	return i.conditionAssessment
}

// StartedAt returns when the inspection was opened.
func (i *QualityInspection) StartedAt() time.Time {
	return i.startedAt
}

// CompletedAt returns when a verdict was submitted, if one has been.
func (i *QualityInspection) CompletedAt() *time.Time {
	if i.completedAt == nil {
		return nil
	}
	at := *i.completedAt
	return &at
}

// SubmitPassed records a passing verdict. The part grade comes from the
// report, defaulting to GradeB, and must not be GradeReject.
func (i *QualityInspection) SubmitPassed(inspectorID kernel.UUID, report Report, now time.Time) error {
	grade := report.PartGrade
	if grade == "" {
		grade = GradeB
	}
	if err := grade.Validate(); err != nil {
		return err
	}
	if grade == GradeReject {
		return errs.NewValueIsInvalidErrorWithCause("partGrade",
			errors.New("a passed part cannot be graded reject"))
	}

	if err := i.complete(inspectorID, Passed, report, grade, now); err != nil {
		return err
	}

	return nil
}

// SubmitFailed records a failing verdict.
//
// Business rules:
//   - The failure reason must be at least FailureReasonMinLength characters
//   - The failure category is mandatory
//   - The grade is forced to GradeReject
func (i *QualityInspection) SubmitFailed(inspectorID kernel.UUID, report Report, now time.Time) error {
	if len(report.FailureReason) < FailureReasonMinLength {
		return ErrFailureReasonTooShort
	}
	if report.FailureCategory == "" {
		return ErrFailureCategoryIsRequired
	}

	if err := i.complete(inspectorID, Failed, report, GradeReject, now); err != nil {
		return err
	}

	i.failureReason = report.FailureReason
	i.failureCategory = report.FailureCategory
	return nil
}

// complete applies the merge shared by both verdicts: photos append, scalar
// findings keep their stored values when the report leaves them empty.
// Re-submission after a failed verdict is allowed, which covers re-inspection
// of a part that came back and was collected again.
func (i *QualityInspection) complete(inspectorID kernel.UUID, verdict Status, report Report,
	grade Grade, now time.Time) error {
	if err := inspectorID.Validate(); err != nil {
		return err
	}
	if i.status == Passed {
		return errs.NewPreconditionFailedError("inspection", i.id.String(),
			i.status.String(), InProgress.String())
	}

	i.inspectorID = inspectorID
	i.status = verdict
	i.partGrade = grade
	i.photoURLs = append(i.photoURLs, report.PhotoURLs...)

	if len(report.ChecklistResults) > 0 {
		i.checklistResults = cloneChecklist(report.ChecklistResults)
	}
	if report.Notes != "" {
		i.notes = report.Notes
	}
	if report.ConditionAssessment != "" {
		i.conditionAssessment = report.ConditionAssessment
	}

	at := now
	i.completedAt = &at
	return nil
}

// setID sets the inspection's unique identifier with validation.
func (i *QualityInspection) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

// setOrderID sets the order reference with validation.
func (i *QualityInspection) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	i.orderID = orderID
	return nil
}

// setInspectorID sets the inspector reference with validation.
func (i *QualityInspection) setInspectorID(inspectorID kernel.UUID) error {
	if err := inspectorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("inspectorID", err)
	}
	i.inspectorID = inspectorID
	return nil
}

func cloneChecklist(items []ChecklistItem) []ChecklistItem {
	if items == nil {
		return nil
	}
	out := make([]ChecklistItem, len(items))
	copy(out, items)
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
