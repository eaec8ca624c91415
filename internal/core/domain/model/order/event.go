package order

import (
	"fmt"

	"ordermanager/internal/pkg/errs"
)

// Event is a domain occurrence that may move an order to another state.
type Event string

const (
	EventPendingBiometricalVerification    Event = "pendingBiometricalVerification"
	EventNoVerificationNeeded              Event = "noVerificationNeeded"
	EventPaymentFailed                     Event = "paymentFailed"
	EventOrderCancelled                    Event = "orderCancelled"
	EventBiometricalVerificationSuccessful Event = "biometricalVerificationSuccessful"
	EventVerificationFailed                Event = "verificationFailed"
	EventOrderCancelledByUser              Event = "orderCancelledByUser"
	EventPaymentSuccessful                 Event = "paymentSuccessful"
	EventPreparingShipment                 Event = "preparingShipment"
	EventItemDispatched                    Event = "itemDispatched"
	EventItemReceivedByCustomer            Event = "itemReceivedByCustomer"
	EventDeliveryIssue                     Event = "deliveryIssue"
	EventReturnInitiatedByCustomer         Event = "returnInitiatedByCustomer"
	EventItemReceivedBack                  Event = "itemReceivedBack"
	EventRefundProcessed                   Event = "refundProcessed"

	// EventManualReviewRequired is consumed by the reviewing-state rule and has no
	// transition-table entry.
	EventManualReviewRequired Event = "manualReviewRequired"

	// EventOrderCreated only labels the creation entry of the event log.
	// The state machine rejects it.
	EventOrderCreated Event = "orderCreated"
)

// Events returns every event accepted by ParseEvent.
func Events() []Event {
	return []Event{
		EventPendingBiometricalVerification,
		EventNoVerificationNeeded,
		EventPaymentFailed,
		EventOrderCancelled,
		EventBiometricalVerificationSuccessful,
		EventVerificationFailed,
		EventOrderCancelledByUser,
		EventPaymentSuccessful,
		EventPreparingShipment,
		EventItemDispatched,
		EventItemReceivedByCustomer,
		EventDeliveryIssue,
		EventReturnInitiatedByCustomer,
		EventItemReceivedBack,
		EventRefundProcessed,
		EventManualReviewRequired,
		EventOrderCreated,
	}
}

// ParseEvent converts a transported value into an Event.
func ParseEvent(s string) (Event, error) {
	event := Event(s)
	if err := event.Validate(); err != nil {
		return "", err
	}
	return event, nil
}

// Validate returns an errs.ValueIsInvalidError for values outside the closed set.
func (e Event) Validate() error {
	for _, valid := range Events() {
		if e == valid {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("event is invalid", fmt.Errorf("%q is not a valid event", string(e)))
}

func (e Event) String() string {
	return string(e)
}
