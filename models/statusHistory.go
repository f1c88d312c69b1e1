package models

import "time"

// StatusTransition is the transient input to a status update. It is never
// persisted as-is; the coordinator derives a StatusHistoryEntry from it.
type StatusTransition struct {
	PropId         string
	ShowId         string
	PreviousStatus PropStatus
	NewStatus      PropStatus
	UpdatedBy      string
	Notes          string
	Reason         string
}

// StatusHistoryEntry is the append-only audit record of one status change.
// Entries are never mutated after creation except to backfill RelatedTaskId
// when a follow-up task is created for the same transition, and never deleted.
type StatusHistoryEntry struct {
	ID                 string     `json:"id"`
	PropId             string     `json:"prop_id"`
	ShowId             string     `json:"show_id"`
	PreviousStatus     PropStatus `json:"previous_status"`
	NewStatus          PropStatus `json:"new_status"`
	UpdatedBy          string     `json:"updated_by"`
	Date               time.Time  `json:"date"`
	Notes              string     `json:"notes,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	RelatedTaskId      string     `json:"related_task_id,omitempty"`
	DamageImageUrls    []string   `json:"damage_image_urls,omitempty"`
	DamageVideoUrls    []string   `json:"damage_video_urls,omitempty"`
	ValidationBypassed bool       `json:"validation_bypassed,omitempty"`
}
