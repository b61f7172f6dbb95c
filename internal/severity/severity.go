// Package severity implements the severity threshold filter: it
// drops events whose mapped severity level falls below a scan's
// configured threshold.
package severity

import "devlogscan/pkg/types"

// Filter returns the subset of events whose severity level is at least
// threshold. Each event's severity string is mapped
// case-insensitively to a SeverityLevel (unknowns, including empty
// strings, map to SeverityInfo) before comparing.
func Filter(events []types.ValidationEvent, threshold types.SeverityLevel) []types.ValidationEvent {
	out := make([]types.ValidationEvent, 0, len(events))
	for _, ev := range events {
		if types.ParseSeverityLevel(ev.Severity) >= threshold {
			out = append(out, ev)
		}
	}
	return out
}
