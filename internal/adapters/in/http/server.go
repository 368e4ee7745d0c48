// Package http exposes the fulfillment workflows over an echo HTTP server.
// Handlers translate requests into commands and queries and map domain errors
// to status codes. Authentication happens upstream: the acting party's id and
// role arrive as headers stamped by the gateway.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Headers carrying the authenticated actor's identity.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	collectOrderHandler         commands.CollectOrderCommandHandler
	assignDriverHandler         commands.AssignDriverCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	updateLocationHandler       commands.UpdateLocationCommandHandler
	startInspectionHandler      commands.StartInspectionCommandHandler
	submitInspectionHandler     commands.SubmitInspectionCommandHandler
	createReturnHandler         commands.CreateReturnAssignmentCommandHandler

	// Query handlers
	collectionReadyHandler  queries.GetCollectionReadyOrdersQueryHandler
	qcPassedHandler         queries.GetQCPassedOrdersQueryHandler
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler
	pendingReturnsHandler   queries.GetPendingReturnsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	collectOrderHandler commands.CollectOrderCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	startInspectionHandler commands.StartInspectionCommandHandler,
	submitInspectionHandler commands.SubmitInspectionCommandHandler,
	createReturnHandler commands.CreateReturnAssignmentCommandHandler,
	collectionReadyHandler queries.GetCollectionReadyOrdersQueryHandler,
	qcPassedHandler queries.GetQCPassedOrdersQueryHandler,
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	pendingReturnsHandler queries.GetPendingReturnsQueryHandler,
) *Server {
	return &Server{
		collectOrderHandler:         collectOrderHandler,
		assignDriverHandler:         assignDriverHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		updateLocationHandler:       updateLocationHandler,
		startInspectionHandler:      startInspectionHandler,
		submitInspectionHandler:     submitInspectionHandler,
		createReturnHandler:         createReturnHandler,
		collectionReadyHandler:      collectionReadyHandler,
		qcPassedHandler:             qcPassedHandler,
		activeDeliveriesHandler:     activeDeliveriesHandler,
		pendingReturnsHandler:       pendingReturnsHandler,
	}
}

// RegisterRoutes mounts all fulfillment routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.GET("/delivery/orders/ready-for-collection", s.GetCollectionReadyOrders)
	v1.GET("/delivery/active", s.GetActiveDeliveries)
	v1.POST("/delivery/orders/:order_id/assign-driver", s.AssignDriver)
	v1.POST("/delivery/orders/:order_id/status", s.UpdateDeliveryStatus)
	v1.POST("/delivery/orders/:order_id/location", s.UpdateLocation)

	v1.GET("/quality/orders/qc-passed", s.GetQCPassedOrders)
	v1.POST("/quality/orders/:order_id/inspection/start", s.StartInspection)
	v1.POST("/quality/orders/:order_id/inspection/submit", s.SubmitInspection)
	v1.POST("/quality/orders/:order_id/return", s.CreateReturnAssignment)

	v1.GET("/operations/returns/pending", s.GetPendingReturns)
	v1.POST("/operations/orders/:order_id/collect", s.CollectOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Error is the JSON error body returned by all handlers.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CollectOrderRequest is the body for collecting an order from the garage.
type CollectOrderRequest struct {
	DriverID *string `json:"driver_id,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// CollectOrder handles POST /api/v1/operations/orders/:order_id/collect.
func (s *Server) CollectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CollectOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCollectOrderCommand(orderID, driverID, actor, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.collectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriverRequest is the body for dispatching a QC-passed order.
type AssignDriverRequest struct {
	DriverID            string     `json:"driver_id"`
	EstimatedPickupAt   *time.Time `json:"estimated_pickup_at,omitempty"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at,omitempty"`
}

// AssignDriver handles POST /api/v1/delivery/orders/:order_id/assign-driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, actor,
		req.EstimatedPickupAt, req.EstimatedDeliveryAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatusRequest is the body for advancing a delivery leg.
type UpdateDeliveryStatusRequest struct {
	Status           string `json:"status"`
	DriverNotes      string `json:"driver_notes,omitempty"`
	RecipientName    string `json:"recipient_name,omitempty"`
	DeliveryPhotoURL string `json:"delivery_photo_url,omitempty"`
	SignatureURL     string `json:"signature_url,omitempty"`
	FailureReason    string `json:"failure_reason,omitempty"`
}

// UpdateDeliveryStatus handles POST /api/v1/delivery/orders/:order_id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateDeliveryStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	update := assignment.ProgressUpdate{
		DriverNotes:      req.DriverNotes,
		RecipientName:    req.RecipientName,
		DeliveryPhotoURL: req.DeliveryPhotoURL,
		SignatureURL:     req.SignatureURL,
		FailureReason:    req.FailureReason,
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID,
		assignment.Status(req.Status), update, actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocationRequest is the body for a driver position ping.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateLocation handles POST /api/v1/delivery/orders/:order_id/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateLocationCommand(orderID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InspectionResponse describes an opened inspection.
type InspectionResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	InspectorID string    `json:"inspector_id"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
}

// StartInspection handles POST /api/v1/quality/orders/:order_id/inspection/start.
// Idempotent: reopening returns the existing inspection.
func (s *Server) StartInspection(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	inspectorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return badRequest(ctx, "Invalid inspector id")
	}

	cmd, err := commands.NewStartInspectionCommand(orderID, inspectorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	opened, err := s.startInspectionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, InspectionResponse{
		ID:          opened.ID().String(),
		OrderID:     opened.OrderID().String(),
		InspectorID: opened.InspectorID().String(),
		Status:      opened.Status().String(),
		StartedAt:   opened.StartedAt(),
	})
}

// ChecklistItemRequest is one checked criterion in a verdict submission.
type ChecklistItemRequest struct {
	Criterion string `json:"criterion"`
	Passed    bool   `json:"passed"`
	Note      string `json:"note,omitempty"`
}

// SubmitInspectionRequest is the body for recording an inspection verdict.
type SubmitInspectionRequest struct {
	Passed              bool                   `json:"passed"`
	ChecklistResults    []ChecklistItemRequest `json:"checklist_results,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
	FailureReason       string                 `json:"failure_reason,omitempty"`
	FailureCategory     string                 `json:"failure_category,omitempty"`
	PhotoURLs           []string               `json:"photo_urls,omitempty"`
	PartGrade           string                 `json:"part_grade,omitempty"`
	ConditionAssessment string                 `json:"condition_assessment,omitempty"`
}

// SubmitInspection handles POST /api/v1/quality/orders/:order_id/inspection/submit.
func (s *Server) SubmitInspection(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	inspectorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return badRequest(ctx, "Invalid inspector id")
	}

	var req SubmitInspectionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	checklist := make([]inspection.ChecklistItem, 0, len(req.ChecklistResults))
	for _, item := range req.ChecklistResults {
		checklist = append(checklist, inspection.ChecklistItem{
			Criterion: item.Criterion,
			Passed:    item.Passed,
			Note:      item.Note,
		})
	}

	report := inspection.Report{
		ChecklistResults:    checklist,
		Notes:               req.Notes,
		FailureReason:       req.FailureReason,
		FailureCategory:     req.FailureCategory,
		PhotoURLs:           req.PhotoURLs,
		PartGrade:           inspection.Grade(req.PartGrade),
		ConditionAssessment: req.ConditionAssessment,
	}

	cmd, err := commands.NewSubmitInspectionCommand(orderID, inspectorID, req.Passed, report)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.submitInspectionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateReturnRequest is the body for opening the return leg of a failed order.
type CreateReturnRequest struct {
	DriverID *string `json:"driver_id,omitempty"`
}

// CreateReturnAssignment handles POST /api/v1/quality/orders/:order_id/return.
func (s *Server) CreateReturnAssignment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CreateReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateReturnAssignmentCommand(orderID, driverID, actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CollectionReadyOrder is one order awaiting collection from its garage.
type CollectionReadyOrder struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	GarageID        string    `json:"garage_id"`
	PartDescription string    `json:"part_description"`
	GarageAddress   string    `json:"garage_address"`
	DeliveryAddress string    `json:"delivery_address"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetCollectionReadyOrders handles GET /api/v1/delivery/orders/ready-for-collection.
func (s *Server) GetCollectionReadyOrders(ctx echo.Context) error {
	query := queries.NewGetCollectionReadyOrdersQuery()

	orders, err := s.collectionReadyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve collection queue")
	}

	response := make([]CollectionReadyOrder, len(orders))
	for i, o := range orders {
		response[i] = CollectionReadyOrder{
			ID:              o.ID.String(),
			OrderNumber:     o.OrderNumber,
			GarageID:        o.GarageID.String(),
			PartDescription: o.PartDescription,
			GarageAddress:   o.GarageAddress,
			DeliveryAddress: o.DeliveryAddress,
			CreatedAt:       o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// QCPassedOrder is one inspected order awaiting dispatch.
type QCPassedOrder struct {
	ID                  string     `json:"id"`
	OrderNumber         string     `json:"order_number"`
	CustomerID          string     `json:"customer_id"`
	PartDescription     string     `json:"part_description"`
	DeliveryAddress     string     `json:"delivery_address"`
	PartGrade           string     `json:"part_grade"`
	ConditionAssessment string     `json:"condition_assessment,omitempty"`
	InspectedAt         *time.Time `json:"inspected_at,omitempty"`
}

// GetQCPassedOrders handles GET /api/v1/quality/orders/qc-passed.
func (s *Server) GetQCPassedOrders(ctx echo.Context) error {
	query := queries.NewGetQCPassedOrdersQuery()

	orders, err := s.qcPassedHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve dispatch queue")
	}

	response := make([]QCPassedOrder, len(orders))
	for i, o := range orders {
		response[i] = QCPassedOrder{
			ID:                  o.ID.String(),
			OrderNumber:         o.OrderNumber,
			CustomerID:          o.CustomerID.String(),
			PartDescription:     o.PartDescription,
			DeliveryAddress:     o.DeliveryAddress,
			PartGrade:           o.PartGrade,
			ConditionAssessment: o.ConditionAssessment,
			InspectedAt:         o.InspectedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActiveDelivery is one assignment still moving.
type ActiveDelivery struct {
	AssignmentID        string     `json:"assignment_id"`
	OrderID             string     `json:"order_id"`
	OrderNumber         string     `json:"order_number"`
	AssignmentType      string     `json:"assignment_type"`
	Status              string     `json:"status"`
	DriverName          string     `json:"driver_name,omitempty"`
	DriverPhone         string     `json:"driver_phone,omitempty"`
	PickupAddress       string     `json:"pickup_address"`
	DeliveryAddress     string     `json:"delivery_address"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at,omitempty"`
	CurrentLatitude     *float64   `json:"current_latitude,omitempty"`
	CurrentLongitude    *float64   `json:"current_longitude,omitempty"`
	LocatedAt           *time.Time `json:"located_at,omitempty"`
}

// GetActiveDeliveries handles GET /api/v1/delivery/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.activeDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve delivery board")
	}

	response := make([]ActiveDelivery, len(deliveries))
	for i, d := range deliveries {
		entry := ActiveDelivery{
			AssignmentID:        d.AssignmentID.String(),
			OrderID:             d.OrderID.String(),
			OrderNumber:         d.OrderNumber,
			AssignmentType:      d.AssignmentType,
			Status:              d.Status,
			DriverName:          d.DriverName,
			DriverPhone:         d.DriverPhone,
			PickupAddress:       d.PickupAddress,
			DeliveryAddress:     d.DeliveryAddress,
			EstimatedDeliveryAt: d.EstimatedDeliveryAt,
			LocatedAt:           d.LocatedAt,
		}
		if d.CurrentLocation != nil {
			lat := d.CurrentLocation.Latitude()
			lng := d.CurrentLocation.Longitude()
			entry.CurrentLatitude = &lat
			entry.CurrentLongitude = &lng
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// PendingReturn is one failed order awaiting its return leg.
type PendingReturn struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"order_number"`
	GarageID        string     `json:"garage_id"`
	PartDescription string     `json:"part_description"`
	GarageAddress   string     `json:"garage_address"`
	FailureCategory string     `json:"failure_category"`
	FailureReason   string     `json:"failure_reason"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
}

// GetPendingReturns handles GET /api/v1/operations/returns/pending.
func (s *Server) GetPendingReturns(ctx echo.Context) error {
	query := queries.NewGetPendingReturnsQuery()

	returns, err := s.pendingReturnsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending returns")
	}

	response := make([]PendingReturn, len(returns))
	for i, r := range returns {
		response[i] = PendingReturn{
			ID:              r.ID.String(),
			OrderNumber:     r.OrderNumber,
			GarageID:        r.GarageID.String(),
			PartDescription: r.PartDescription,
			GarageAddress:   r.GarageAddress,
			FailureCategory: r.FailureCategory,
			FailureReason:   r.FailureReason,
			FailedAt:        r.FailedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders builds the acting party from the gateway-stamped headers.
func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	id := ctx.Request().Header.Get(HeaderActorID)
	role := ctx.Request().Header.Get(HeaderActorRole)
	return order.NewActor(id, order.ActorKind(role))
}

// optionalUUID parses a UUID that request bodies may omit.
func optionalUUID(value *string) (*kernel.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// domainError maps use case errors to HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, errs.ErrDriverUnavailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
