package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEventType is returned by Decode for a type with no registered decoder.
var ErrUnknownEventType = errors.New("unknown event type")

type decoder func(payload []byte) (Event, error)

var typeFactories = map[string]decoder{
	EventTypeAccountCreated.String():     decodeAs[AccountCreated],
	EventTypeAccountNameUpdated.String(): decodeAs[AccountNameUpdated],
	EventTypeAccountFrozen.String():      decodeAs[AccountFrozen],
	EventTypeAccountUnfrozen.String():    decodeAs[AccountUnfrozen],
	EventTypeAccountClosed.String():      decodeAs[AccountClosed],
	EventTypeMoneyDeposited.String():     decodeAs[MoneyDeposited],
	EventTypeMoneyWithdrawn.String():     decodeAs[MoneyWithdrawn],
	EventTypeMoneyTransferred.String():   decodeAs[MoneyTransferred],
	EventTypeFeeCharged.String():         decodeAs[FeeCharged],
	EventTypeInterestCredited.String():   decodeAs[InterestCredited],
	EventTypeDepositScheduled.String():   decodeAs[DepositScheduled],
}

func decodeAs[T Event](payload []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// Decode rebuilds a concrete event from its type name and JSON payload.
func Decode(eventType string, payload []byte) (Event, error) {
	factory, ok := typeFactories[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}
	e, err := factory(payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", eventType, err)
	}
	return e, nil
}

// Types lists every event type Decode understands.
func Types() []string {
	out := make([]string, 0, len(typeFactories))
	for t := range typeFactories {
		out = append(out, t)
	}
	return out
}
