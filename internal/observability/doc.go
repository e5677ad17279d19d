// Package observability provides event logging and usage metrics for the
// intelligence engine. Engine operations append structured JSON Lines
// (JSONL) events; metrics are derived on-demand from the event log.
package observability
