package workflow

import "github.com/mmdatafocus/props_backend/models"

// statusCleanupTable maps a new status to the denormalized prop fields that
// must be nulled when the status is persisted. Explicit table, not inferred:
// a prop back in storage cannot still be checked out, a checked-out prop
// carries no standing assignment, and missing/cut/disposal clear both.
var statusCleanupTable = map[models.PropStatus]map[string]any{
	models.PropStatusAvailableInStorage: {
		"checked_out_details": nil,
	},
	models.PropStatusCheckedOut: {
		"assigned_to": nil,
	},
	models.PropStatusMissing: {
		"checked_out_details": nil,
		"assigned_to":         nil,
	},
	models.PropStatusCut: {
		"checked_out_details": nil,
		"assigned_to":         nil,
	},
	models.PropStatusReadyForDisposal: {
		"checked_out_details": nil,
		"assigned_to":         nil,
	},
}

// StatusCleanupFields returns the partial field set to merge into the status
// write for the given new status. The returned map is a copy; empty for
// statuses with no cleanup.
func StatusCleanupFields(next models.PropStatus) map[string]any {
	fields := statusCleanupTable[next]
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
