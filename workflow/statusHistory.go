package workflow

import (
	"time"

	"github.com/mmdatafocus/props_backend/models"
)

// MediaURLs carries the successfully uploaded damage media for one
// transition, in the caller's attachment order.
type MediaURLs struct {
	DamageImageUrls []string
	DamageVideoUrls []string
}

// BuildStatusHistoryEntry derives the immutable audit record for one
// accepted transition. Pure construction: the caller persists the result and
// owns the timestamp (a UTC instant). Optional fields stay zero-valued and
// are omitted from the stored document, so absence, not empty string, means
// "not applicable".
func BuildStatusHistoryEntry(t models.StatusTransition, media MediaURLs, validationBypassed bool, now time.Time) models.StatusHistoryEntry {
	return models.StatusHistoryEntry{
		PropId:             t.PropId,
		ShowId:             t.ShowId,
		PreviousStatus:     t.PreviousStatus,
		NewStatus:          t.NewStatus,
		UpdatedBy:          t.UpdatedBy,
		Date:               now.UTC(),
		Notes:              t.Notes,
		Reason:             t.Reason,
		DamageImageUrls:    media.DamageImageUrls,
		DamageVideoUrls:    media.DamageVideoUrls,
		ValidationBypassed: validationBypassed,
	}
}
