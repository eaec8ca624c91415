package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Metadata defines model for Metadata.
type Metadata = map[string]interface{}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Amount      float64   `json:"amount"`
	CountryCode *string   `json:"country_code,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
	ProductIds  []string  `json:"product_ids"`
}

// Order defines model for Order.
type Order struct {
	Amount     float64            `json:"amount"`
	CreatedAt  time.Time          `json:"created_at"`
	Id         openapi_types.UUID `json:"id"`
	Metadata   Metadata           `json:"metadata"`
	ProductIds []string           `json:"product_ids"`
	State      string             `json:"state"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	AllowedEvents        []string `json:"allowed_events"`
	ApplicableRules      []string `json:"applicable_rules"`
	Enrichment           Metadata `json:"enrichment"`
	EventsFiltered       int      `json:"events_filtered"`
	Order                Order    `json:"order"`
	RequiresManualReview bool     `json:"requires_manual_review"`
}

// OrderEventRequest defines model for OrderEventRequest.
type OrderEventRequest struct {
	Event    string    `json:"event"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// ProcessEventResponse defines model for ProcessEventResponse.
type ProcessEventResponse struct {
	Actions       []string             `json:"actions"`
	AllowedEvents []string             `json:"allowed_events"`
	AppliedRules  []string             `json:"applied_rules"`
	Enrichment    Metadata             `json:"enrichment"`
	Order         Order                `json:"order"`
	PreviousState string               `json:"previous_state"`
	TicketIds     []openapi_types.UUID `json:"ticket_ids"`
}

// AllowedEvents defines model for AllowedEvents.
type AllowedEvents struct {
	AllowedEvents []string           `json:"allowed_events"`
	Amount        float64            `json:"amount"`
	BaseEvents    []string           `json:"base_events"`
	OrderId       openapi_types.UUID `json:"order_id"`
	RemovedEvents []string           `json:"removed_events"`
	State         string             `json:"state"`
}

// EventRecord defines model for EventRecord.
type EventRecord struct {
	CreatedAt time.Time          `json:"created_at"`
	Event     string             `json:"event"`
	Id        openapi_types.UUID `json:"id"`
	Metadata  Metadata           `json:"metadata"`
	NewState  string             `json:"new_state"`
	OldState  string             `json:"old_state"`
	OrderId   openapi_types.UUID `json:"order_id"`
}

// TicketStatus defines model for TicketStatus.
type TicketStatus string

// Defines values for TicketStatus.
const (
	Closed     TicketStatus = "closed"
	InProgress TicketStatus = "in_progress"
	Open       TicketStatus = "open"
	Resolved   TicketStatus = "resolved"
)

// Ticket defines model for Ticket.
type Ticket struct {
	Amount    float64            `json:"amount"`
	CreatedAt time.Time          `json:"created_at"`
	Id        openapi_types.UUID `json:"id"`
	Metadata  Metadata           `json:"metadata"`
	OrderId   openapi_types.UUID `json:"order_id"`
	Reason    string             `json:"reason"`
	Status    TicketStatus       `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TicketStatusUpdate defines model for TicketStatusUpdate.
type TicketStatusUpdate struct {
	Metadata *Metadata    `json:"metadata,omitempty"`
	Status   TicketStatus `json:"status"`
}

// TicketStatusStats defines model for TicketStatusStats.
type TicketStatusStats struct {
	AverageAmount float64      `json:"average_amount"`
	Count         int64        `json:"count"`
	Status        TicketStatus `json:"status"`
}

// TicketsSummary defines model for TicketsSummary.
type TicketsSummary struct {
	ByStatus []TicketStatusStats `json:"by_status"`
	Total    int64               `json:"total"`
}

// Rule defines model for Rule.
type Rule struct {
	Description  string `json:"description"`
	Enabled      bool   `json:"enabled"`
	Id           string `json:"id"`
	Kind         string `json:"kind"`
	Priority     int    `json:"priority"`
	PriorityName string `json:"priority_name"`
}

// RulesList defines model for RulesList.
type RulesList struct {
	ByKind  map[string]int `json:"by_kind"`
	Enabled int            `json:"enabled"`
	Rules   []Rule         `json:"rules"`
	Total   int            `json:"total"`
}

// TicketRequest defines model for TicketRequest.
type TicketRequest struct {
	Amount   float64  `json:"amount"`
	Metadata Metadata `json:"metadata"`
	Reason   string   `json:"reason"`
}

// RuleFailure defines model for RuleFailure.
type RuleFailure struct {
	Error  string `json:"error"`
	RuleId string `json:"rule_id"`
}

// Simulation defines model for Simulation.
type Simulation struct {
	Actions         []string           `json:"actions"`
	Amount          float64            `json:"amount"`
	ApplicableRules []Rule             `json:"applicable_rules"`
	ExecutedRules   []string           `json:"executed_rules"`
	FailedRules     []RuleFailure      `json:"failed_rules"`
	FilteredEvents  *[]string          `json:"filtered_events,omitempty"`
	MetadataUpdates Metadata           `json:"metadata_updates"`
	OrderId         openapi_types.UUID `json:"order_id"`
	State           string             `json:"state"`
	Success         bool               `json:"success"`
	TicketRequests  []TicketRequest    `json:"ticket_requests"`
}

// OrderPreview defines model for OrderPreview.
type OrderPreview struct {
	Actions          []string        `json:"actions"`
	Enrichment       Metadata        `json:"enrichment"`
	ExecutedRules    []string        `json:"executed_rules"`
	MetadataUpdates  Metadata        `json:"metadata_updates"`
	TicketRequests   []TicketRequest `json:"ticket_requests"`
	ValidationError  *string         `json:"validation_error,omitempty"`
	ValidationPassed bool            `json:"validation_passed"`
}

// ThresholdUpdate defines model for ThresholdUpdate.
type ThresholdUpdate struct {
	Description string  `json:"description"`
	Threshold   float64 `json:"threshold"`
}

// ToggleRuleParams defines parameters for ToggleRule.
type ToggleRuleParams struct {
	Enable bool `form:"enable" json:"enable"`
}

// SetSmallOrderThresholdParams defines parameters for SetSmallOrderThreshold.
type SetSmallOrderThresholdParams struct {
	Value float64 `form:"value" json:"value"`
}
