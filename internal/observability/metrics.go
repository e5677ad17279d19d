package observability

import (
	"fmt"
	"time"
)

// Metrics holds usage metrics derived from the event log.
type Metrics struct {
	EntitiesResolved   int            `json:"entities_resolved"`
	ContextsAssembled  int            `json:"contexts_assembled"`
	MemorySearches     int            `json:"memory_searches"`
	TimelinesExtracted int            `json:"timelines_extracted"`
	BriefingsAssembled int            `json:"briefings_assembled"`
	ByConfidence       map[string]int `json:"by_confidence"`
	GapsReported       int            `json:"gaps_reported"`
	EventCount         int            `json:"event_count"`
	OldestEvent        *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent        *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		ByConfidence: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventEntityResolved:
			m.EntitiesResolved++
		case EventContextAssembled:
			m.ContextsAssembled++
			if confidence, ok := event.Data["confidence"].(string); ok {
				m.ByConfidence[confidence]++
			}
			if gaps, ok := event.Data["gaps"].(float64); ok {
				m.GapsReported += int(gaps)
			}
		case EventMemorySearched:
			m.MemorySearches++
		case EventTimelineExtracted:
			m.TimelinesExtracted++
		case EventBriefingAssembled:
			m.BriefingsAssembled++
		}
	}

	return m, nil
}
