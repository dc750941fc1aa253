package services

import (
	"errors"
	"strings"
	"text/template"

	"fulfillment/internal/core/domain/model/order"
)

// ErrUnroutableEdge is returned when a transition outcome carries an edge
// the routing table knows nothing about.
var ErrUnroutableEdge = errors.New("no route for edge")

// Audience selects who receives a notice for a given edge: either the
// order's requester or every user holding a role.
type Audience int

const (
	// AudienceRequester addresses the branch user who created the order.
	AudienceRequester Audience = iota

	// AudienceRole addresses all users holding the route's role.
	AudienceRole
)

// Recipient is one addressee slot of a route. For AudienceRole the Role
// field names the role to resolve; for AudienceRequester it is unset.
type Recipient struct {
	Audience Audience
	Role     order.Role
}

// Notice is one rendered notification, addressed but not yet resolved to
// concrete user IDs.
type Notice struct {
	Recipient Recipient
	Title     string
	Message   string
}

// route pairs the recipients of an edge with its message templates.
type route struct {
	recipients []Recipient
	title      *template.Template
	body       *template.Template
}

// noticeData is the rendering context for the route templates.
type noticeData struct {
	Number   string
	From     string
	To       string
	Substage string
}

var (
	requesterSlot  = Recipient{Audience: AudienceRequester}
	managerSlot    = Recipient{Audience: AudienceRole, Role: order.RoleManager}
	packagerSlot   = Recipient{Audience: AudienceRole, Role: order.RolePackager}
	dispatcherSlot = Recipient{Audience: AudienceRole, Role: order.RoleDispatcher}
)

// NotificationRouter is a domain service that maps a lifecycle transition to
// its notifications. The mapping is a static table keyed by edge: each entry
// lists the recipients and the message templates for that edge. Every edge
// of the lifecycle graph has exactly one entry, so the router is total over
// transitions the aggregate can produce.
//
// The router only renders and addresses; resolving role audiences to user
// IDs and delivering over channels is the caller's concern.
type NotificationRouter struct {
	routes map[order.Edge]route
}

// NewNotificationRouter creates a router with the built-in routing table.
func NewNotificationRouter() NotificationRouter {
	return NotificationRouter{routes: buildRoutes()}
}

// Route renders the notices for one transition outcome, in the routing
// table's recipient order.
func (r NotificationRouter) Route(outcome order.TransitionOutcome) ([]Notice, error) {
	rt, ok := r.routes[outcome.Edge]
	if !ok {
		return nil, ErrUnroutableEdge
	}

	data := noticeData{
		Number:   outcome.OrderNumber,
		From:     outcome.From.String(),
		To:       outcome.To.String(),
		Substage: outcome.Substage.String(),
	}

	notices := make([]Notice, 0, len(rt.recipients))
	for _, recipient := range rt.recipients {
		title, err := render(rt.title, data)
		if err != nil {
			return nil, err
		}
		body, err := render(rt.body, data)
		if err != nil {
			return nil, err
		}
		notices = append(notices, Notice{Recipient: recipient, Title: title, Message: body})
	}
	return notices, nil
}

// Routes returns the edges the router can handle.
func (r NotificationRouter) Routes() []order.Edge {
	edges := make([]order.Edge, 0, len(r.routes))
	for edge := range r.routes {
		edges = append(edges, edge)
	}
	return edges
}

func render(t *template.Template, data noticeData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func tmpl(text string) *template.Template {
	return template.Must(template.New("").Parse(text))
}

func buildRoutes() map[order.Edge]route {
	return map[order.Edge]route{
		order.EdgeRequest: {
			recipients: []Recipient{managerSlot},
			title:      tmpl("New order {{.Number}}"),
			body:       tmpl("Order {{.Number}} was submitted and is waiting for your approval."),
		},
		order.EdgeApprove: {
			recipients: []Recipient{requesterSlot},
			title:      tmpl("Order {{.Number}} approved"),
			body:       tmpl("Order {{.Number}} was approved by the manager. Review the quantities and confirm, or raise an issue."),
		},
		order.EdgeConfirm: {
			recipients: []Recipient{managerSlot},
			title:      tmpl("Order {{.Number}} confirmed"),
			body:       tmpl("The branch confirmed the approved quantities of order {{.Number}}."),
		},
		order.EdgeRaiseIssue: {
			recipients: []Recipient{managerSlot},
			title:      tmpl("Issue raised on order {{.Number}}"),
			body:       tmpl("The branch disputed the approved quantities of order {{.Number}}. A reply is required."),
		},
		order.EdgeReply: {
			recipients: []Recipient{requesterSlot},
			title:      tmpl("Reply on order {{.Number}}"),
			body:       tmpl("The manager replied to your issue on order {{.Number}}. Review the revision and confirm, or raise the issue again."),
		},
		order.EdgeArrangingStarted: {
			recipients: []Recipient{requesterSlot},
			title:      tmpl("Order {{.Number}} is being arranged"),
			body:       tmpl("Arranging of order {{.Number}} has started."),
		},
		order.EdgeArranged: {
			recipients: []Recipient{requesterSlot},
			title:      tmpl("Order {{.Number}} arranged"),
			body:       tmpl("All positions of order {{.Number}} have been arranged."),
		},
		order.EdgeSentForPackaging: {
			recipients: []Recipient{requesterSlot, packagerSlot},
			title:      tmpl("Order {{.Number}} sent for packaging"),
			body:       tmpl("Order {{.Number}} was handed over to the packaging team."),
		},
		order.EdgeStartPackaging: {
			recipients: []Recipient{managerSlot},
			title:      tmpl("Order {{.Number}} under packaging"),
			body:       tmpl("Packaging of order {{.Number}} has started."),
		},
		order.EdgeCompletePackaging: {
			recipients: []Recipient{managerSlot, dispatcherSlot},
			title:      tmpl("Order {{.Number}} packaged"),
			body:       tmpl("Order {{.Number}} is packaged and ready for dispatch."),
		},
		order.EdgeDispatch: {
			recipients: []Recipient{managerSlot, requesterSlot},
			title:      tmpl("Order {{.Number}} dispatched"),
			body:       tmpl("Order {{.Number}} is in transit."),
		},
		order.EdgeConfirmReceived: {
			recipients: []Recipient{managerSlot, dispatcherSlot},
			title:      tmpl("Order {{.Number}} received"),
			body:       tmpl("The branch confirmed receipt of order {{.Number}}."),
		},
		order.EdgeClose: {
			recipients: []Recipient{requesterSlot, managerSlot},
			title:      tmpl("Order {{.Number}} closed"),
			body:       tmpl("Order {{.Number}} was closed."),
		},
	}
}
