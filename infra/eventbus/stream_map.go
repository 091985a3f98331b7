package eventbus

import (
	"fmt"
	"strings"

	"github.com/amirasaad/pesaflow/pkg/domain/events"
)

// streamNameFor returns the Redis stream for the event type.
func streamNameFor(prefix string, eventType events.EventType) string {
	return prefix + nameFor("events", eventType)
}

// dlqStreamName returns the DLQ stream name for the given event type.
func dlqStreamName(prefix string, eventType events.EventType) string {
	return prefix + nameFor("dlq", eventType)
}

// groupNameFor returns the Redis consumer group name for the event type.
func groupNameFor(prefix string, eventType events.EventType) string {
	return prefix + nameFor("group", eventType)
}

func nameFor(kind string, eventType events.EventType) string {
	parts := strings.Split(eventType.String(), ".")
	if len(parts) == 2 {
		return fmt.Sprintf(
			"%s:%s:%s",
			kind,
			strings.ToLower(parts[0]),
			strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s", kind, strings.ToLower(eventType.String()))
}

// topicNameFor returns the Kafka topic for the event type.
func topicNameFor(prefix string, eventType events.EventType) string {
	return prefix + strings.ToLower(eventType.String())
}

// dlqTopicNameFor returns the Kafka dead-letter topic for the event type.
func dlqTopicNameFor(prefix string, eventType events.EventType) string {
	return prefix + "dlq." + strings.ToLower(eventType.String())
}
