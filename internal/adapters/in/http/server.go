// Package http exposes the order lifecycle over a REST API.
// Every endpoint resolves the acting user from the JWT, builds a command or
// query, and maps the error taxonomy onto HTTP statuses.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	approveOrderHandler         commands.ApproveOrderCommandHandler
	confirmOrderHandler         commands.ConfirmOrderCommandHandler
	raiseIssueHandler           commands.RaiseIssueCommandHandler
	replyIssueHandler           commands.ReplyIssueCommandHandler
	postIssueMessageHandler     commands.PostIssueMessageCommandHandler
	setArrangingStageHandler    commands.SetArrangingStageCommandHandler
	startPackagingHandler       commands.StartPackagingCommandHandler
	completePackagingHandler    commands.CompletePackagingCommandHandler
	dispatchOrderHandler        commands.DispatchOrderCommandHandler
	confirmReceivedHandler      commands.ConfirmReceivedCommandHandler
	closeOrderHandler           commands.CloseOrderCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getIssueThreadHandler   queries.GetIssueThreadQueryHandler
	getNotificationsHandler queries.GetNotificationsQueryHandler

	media ports.MediaStore
}

// ServerHandlers groups the use case handlers wired into the server.
type ServerHandlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	ApproveOrder         commands.ApproveOrderCommandHandler
	ConfirmOrder         commands.ConfirmOrderCommandHandler
	RaiseIssue           commands.RaiseIssueCommandHandler
	ReplyIssue           commands.ReplyIssueCommandHandler
	PostIssueMessage     commands.PostIssueMessageCommandHandler
	SetArrangingStage    commands.SetArrangingStageCommandHandler
	StartPackaging       commands.StartPackagingCommandHandler
	CompletePackaging    commands.CompletePackagingCommandHandler
	DispatchOrder        commands.DispatchOrderCommandHandler
	ConfirmReceived      commands.ConfirmReceivedCommandHandler
	CloseOrder           commands.CloseOrderCommandHandler
	MarkNotificationRead commands.MarkNotificationReadCommandHandler

	GetOrder         queries.GetOrderQueryHandler
	GetIssueThread   queries.GetIssueThreadQueryHandler
	GetNotifications queries.GetNotificationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers, media ports.MediaStore) *Server {
	return &Server{
		createOrderHandler:          handlers.CreateOrder,
		approveOrderHandler:         handlers.ApproveOrder,
		confirmOrderHandler:         handlers.ConfirmOrder,
		raiseIssueHandler:           handlers.RaiseIssue,
		replyIssueHandler:           handlers.ReplyIssue,
		postIssueMessageHandler:     handlers.PostIssueMessage,
		setArrangingStageHandler:    handlers.SetArrangingStage,
		startPackagingHandler:       handlers.StartPackaging,
		completePackagingHandler:    handlers.CompletePackaging,
		dispatchOrderHandler:        handlers.DispatchOrder,
		confirmReceivedHandler:      handlers.ConfirmReceived,
		closeOrderHandler:           handlers.CloseOrder,
		markNotificationReadHandler: handlers.MarkNotificationRead,
		getOrderHandler:             handlers.GetOrder,
		getIssueThreadHandler:       handlers.GetIssueThread,
		getNotificationsHandler:     handlers.GetNotifications,
		media:                       media,
	}
}

// RegisterRoutes wires the API endpoints onto the echo instance.
// Everything under /api/v1 requires a valid Bearer token.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/approve", s.ApproveOrder)
	api.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	api.POST("/orders/:orderId/issues", s.RaiseIssue)
	api.POST("/orders/:orderId/issues/reply", s.ReplyIssue)
	api.GET("/orders/:orderId/issues", s.GetIssueThread)
	api.POST("/orders/:orderId/messages", s.PostIssueMessage)
	api.POST("/orders/:orderId/arranging", s.SetArrangingStage)
	api.POST("/orders/:orderId/packaging/start", s.StartPackaging)
	api.POST("/orders/:orderId/packaging/complete", s.CompletePackaging)
	api.POST("/orders/:orderId/dispatch", s.DispatchOrder)
	api.POST("/orders/:orderId/receive", s.ConfirmReceived)
	api.POST("/orders/:orderId/close", s.CloseOrder)
	api.POST("/orders/:orderId/attachments", s.AddAttachment)

	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:notificationId/read", s.MarkNotificationRead)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewOrderItem is one requested order line in the creation request.
type NewOrderItem struct {
	QtyRequested int   `json:"qty_requested"`
	UnitPrice    int64 `json:"unit_price"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	BranchID string         `json:"branch_id"`
	Items    []NewOrderItem `json:"items"`
	Remarks  string         `json:"remarks"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing authentication",
		})
	}

	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	branchID, err := kernel.UUIDFromString(request.BranchID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.ItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.ItemInput{
			ID:           kernel.NewUUID(),
			QtyRequested: item.QtyRequested,
			UnitPrice:    item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, branchID, actor, items, request.Remarks)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(response))
}

// ApprovalInput is one per-item quantity decision.
type ApprovalInput struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

// ApproveOrderRequest is the body of POST /api/v1/orders/:orderId/approve.
type ApproveOrderRequest struct {
	Approvals []ApprovalInput `json:"approvals"`
}

// ApproveOrder handles POST /api/v1/orders/:orderId/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ApproveOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	approvals := make([]order.QuantityApproval, 0, len(request.Approvals))
	for _, approval := range request.Approvals {
		itemID, parseErr := kernel.UUIDFromString(approval.ItemID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		approvals = append(approvals, order.QuantityApproval{ItemID: itemID, Qty: approval.Qty})
	}

	cmd, err := commands.NewApproveOrderCommand(orderID, actor, approvals)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/orders/:orderId/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RaiseIssueRequest is the body of POST /api/v1/orders/:orderId/issues.
type RaiseIssueRequest struct {
	Message     string  `json:"message"`
	ItemID      *string `json:"item_id,omitempty"`
	ProposedQty *int    `json:"proposed_qty,omitempty"`
}

// RaiseIssue handles POST /api/v1/orders/:orderId/issues.
func (s *Server) RaiseIssue(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request RaiseIssueRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	itemID, err := optionalUUID(request.ItemID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRaiseIssueCommand(orderID, actor, request.Message, itemID, request.ProposedQty)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.raiseIssueHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReplyIssueRequest is the body of POST /api/v1/orders/:orderId/issues/reply.
type ReplyIssueRequest struct {
	Reply     string          `json:"reply"`
	Revisions []ApprovalInput `json:"revisions,omitempty"`
}

// ReplyIssue handles POST /api/v1/orders/:orderId/issues/reply.
func (s *Server) ReplyIssue(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReplyIssueRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	revisions := make([]order.QuantityApproval, 0, len(request.Revisions))
	for _, revision := range request.Revisions {
		itemID, parseErr := kernel.UUIDFromString(revision.ItemID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		revisions = append(revisions, order.QuantityApproval{ItemID: itemID, Qty: revision.Qty})
	}

	cmd, err := commands.NewReplyIssueCommand(orderID, actor, request.Reply, revisions)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.replyIssueHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetIssueThread handles GET /api/v1/orders/:orderId/issues.
func (s *Server) GetIssueThread(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetIssueThreadQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	thread, err := s.getIssueThreadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]IssueMessageView, len(thread))
	for i, entry := range thread {
		response[i] = toIssueMessageView(entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

// PostIssueMessageRequest is the body of POST /api/v1/orders/:orderId/messages.
type PostIssueMessageRequest struct {
	Text        string  `json:"text"`
	ItemID      *string `json:"item_id,omitempty"`
	ProposedQty *int    `json:"proposed_qty,omitempty"`
}

// PostIssueMessage handles POST /api/v1/orders/:orderId/messages.
// It appends a ledger entry without moving the order's state.
func (s *Server) PostIssueMessage(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request PostIssueMessageRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	itemID, err := optionalUUID(request.ItemID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPostIssueMessageCommand(orderID, actor, request.Text, itemID, request.ProposedQty)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.postIssueMessageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetArrangingStageRequest is the body of POST /api/v1/orders/:orderId/arranging.
type SetArrangingStageRequest struct {
	Stage string `json:"stage"`
}

// SetArrangingStage handles POST /api/v1/orders/:orderId/arranging.
func (s *Server) SetArrangingStage(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request SetArrangingStageRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	stage, err := order.ParseSubstage(request.Stage)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetArrangingStageCommand(orderID, actor, stage)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.setArrangingStageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartPackaging handles POST /api/v1/orders/:orderId/packaging/start.
func (s *Server) StartPackaging(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewStartPackagingCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.startPackagingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePackaging handles POST /api/v1/orders/:orderId/packaging/complete.
func (s *Server) CompletePackaging(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompletePackagingCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.completePackagingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrderRequest is the body of POST /api/v1/orders/:orderId/dispatch.
type DispatchOrderRequest struct {
	TrackingID   string `json:"tracking_id"`
	TrackingLink string `json:"tracking_link"`
}

// DispatchOrder handles POST /api/v1/orders/:orderId/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request DispatchOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, actor, request.TrackingID, request.TrackingLink)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmReceived handles POST /api/v1/orders/:orderId/receive.
func (s *Server) ConfirmReceived(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmReceivedCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.confirmReceivedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseOrder handles POST /api/v1/orders/:orderId/close.
func (s *Server) CloseOrder(ctx echo.Context) error {
	actor, orderID, err := s.transitionInputs(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCloseOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.closeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddAttachmentRequest is the body of POST /api/v1/orders/:orderId/attachments.
type AddAttachmentRequest struct {
	Edge        string `json:"edge"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// AddAttachment handles POST /api/v1/orders/:orderId/attachments.
// Attachments recorded here satisfy the media gates of later transitions.
func (s *Server) AddAttachment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request AddAttachmentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	edge, ok := parseEdge(request.Edge)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown lifecycle edge: " + request.Edge,
		})
	}

	err = s.media.AddAttachment(
		ctx.Request().Context(), orderID, edge, request.FileName, request.ContentType, request.URL,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetNotifications handles GET /api/v1/notifications.
// The optional unread=true query parameter restricts the list to unread
// notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing authentication",
		})
	}

	unreadOnly := ctx.QueryParam("unread") == "true"

	query, err := queries.NewGetNotificationsQuery(actor.ID, unreadOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]NotificationView, len(notifications))
	for i, entry := range notifications {
		response[i] = toNotificationView(entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/:notificationId/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing authentication",
		})
	}

	notificationID, err := kernel.UUIDFromString(ctx.Param("notificationId"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// transitionInputs resolves the acting user and the target order shared by
// every transition endpoint.
func (s *Server) transitionInputs(ctx echo.Context) (order.Actor, kernel.UUID, error) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return order.Actor{}, kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return order.Actor{}, kernel.UUID{}, err
	}

	return actor, orderID, nil
}

// optionalUUID parses an optional UUID string from a request body.
func optionalUUID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseEdge resolves a lifecycle edge by name.
func parseEdge(s string) (order.Edge, bool) {
	for _, edge := range order.AllEdges() {
		if string(edge) == s {
			return edge, true
		}
	}
	return "", false
}
