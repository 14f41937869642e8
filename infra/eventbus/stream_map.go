package eventbus

import (
	"fmt"
	"strings"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// streamNameFor maps "Money.Deposited" under prefix "corebank:events" to
// "corebank:events:money:deposited".
func streamNameFor(prefix string, eventType events.EventType) string {
	return nameFor(prefix, eventType)
}

// dlqStreamName returns the DLQ stream name for the given event type.
func dlqStreamName(prefix string, eventType events.EventType) string {
	return nameFor(prefix+":dlq", eventType)
}

// groupNameFor returns the Redis consumer group name for the event type.
func groupNameFor(group string, eventType events.EventType) string {
	return nameFor(group, eventType)
}

func nameFor(prefix string, eventType events.EventType) string {
	parts := strings.Split(eventType.String(), ".")
	if len(parts) == 2 {
		return fmt.Sprintf(
			"%s:%s:%s",
			prefix,
			strings.ToLower(parts[0]),
			strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s", prefix, strings.ToLower(eventType.String()))
}

// topicNameFor maps an event type to its Kafka topic under prefix.
func topicNameFor(prefix string, eventType events.EventType) string {
	return fmt.Sprintf("%s.%s", prefix, strings.ToLower(eventType.String()))
}

func dlqTopicNameFor(prefix string, eventType events.EventType) string {
	return fmt.Sprintf("%s.dlq.%s", prefix, strings.ToLower(eventType.String()))
}

func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
