package workflow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mmdatafocus/props_backend/models"
)

func TestBuildStatusHistoryEntry(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	entry := BuildStatusHistoryEntry(models.StatusTransition{
		PropId:         "p1",
		ShowId:         "s1",
		PreviousStatus: models.PropStatusConfirmed,
		NewStatus:      models.PropStatusUnderMaintenance,
		UpdatedBy:      "u1",
		Notes:          "hinge broken",
	}, MediaURLs{DamageImageUrls: []string{"https://cdn/img1.jpg"}}, false, now)

	if entry.PreviousStatus != models.PropStatusConfirmed || entry.NewStatus != models.PropStatusUnderMaintenance {
		t.Fatalf("entry statuses = %q -> %q", entry.PreviousStatus, entry.NewStatus)
	}
	if !entry.Date.Equal(now) {
		t.Fatalf("entry date = %v, want %v", entry.Date, now)
	}
	if entry.Date.Location() != time.UTC {
		t.Fatalf("entry date not UTC: %v", entry.Date.Location())
	}
	if entry.Notes != "hinge broken" || entry.UpdatedBy != "u1" {
		t.Fatalf("entry carried wrong transition context: %+v", entry)
	}
	if len(entry.DamageImageUrls) != 1 || entry.DamageImageUrls[0] != "https://cdn/img1.jpg" {
		t.Fatalf("damage image urls = %v", entry.DamageImageUrls)
	}
}

// Optional fields must be absent from the stored document, not empty strings.
func TestBuildStatusHistoryEntry_OmitsEmptyOptionalFields(t *testing.T) {
	entry := BuildStatusHistoryEntry(models.StatusTransition{
		PropId:         "p1",
		ShowId:         "s1",
		PreviousStatus: models.PropStatusConfirmed,
		NewStatus:      models.PropStatusCut,
		UpdatedBy:      "u1",
	}, MediaURLs{}, false, time.Now())

	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"notes", "reason", "related_task_id", "damage_image_urls", "damage_video_urls", "validation_bypassed"} {
		if _, ok := data[field]; ok {
			t.Errorf("empty optional field %q serialized: %v", field, data[field])
		}
	}
}

func TestBuildStatusHistoryEntry_FlagsOverride(t *testing.T) {
	entry := BuildStatusHistoryEntry(models.StatusTransition{
		PropId:         "p1",
		PreviousStatus: models.PropStatusCut,
		NewStatus:      models.PropStatusUnderMaintenance,
		UpdatedBy:      "admin",
	}, MediaURLs{}, true, time.Now())
	if !entry.ValidationBypassed {
		t.Fatal("override transition not flagged on history entry")
	}
}
