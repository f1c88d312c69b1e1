package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmdatafocus/props_backend/models"
)

func notifiedUsers(t *testing.T, store *fakeStore) map[string]int {
	t.Helper()
	docs, err := store.GetCollection(context.Background(), CollectionNotifications)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	out := map[string]int{}
	for _, d := range docs {
		user, _ := d.Data["user_id"].(string)
		out[user]++
	}
	return out
}

// Prop goes missing: actor u1, supervisor u2, assignee u3. u2 and u3 are
// notified; the actor never is.
func TestDispatch_ActorIsNeverNotified(t *testing.T) {
	store := newFakeStore()
	showId := seedShow(t, store, models.Show{
		Team: []models.TeamMember{
			{UserId: "u1", Role: models.TeamRoleEditor},
			{UserId: "u2", Role: models.TeamRolePropsSupervisor},
		},
	})
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: showId, Name: "Dagger", AssignedTo: []string{"u3"}}

	err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusMissing, "u1", "", true)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	got := notifiedUsers(t, store)
	if got["u1"] != 0 {
		t.Error("actor u1 received a notification")
	}
	if got["u2"] != 1 || got["u3"] != 1 {
		t.Errorf("notifications = %v, want one each for u2 and u3", got)
	}
}

// Repair-family statuses alert supervisors even when the caller opted out of
// team notifications.
func TestDispatch_RepairFamilyAlwaysAlertsSupervisors(t *testing.T) {
	store := newFakeStore()
	showId := seedShow(t, store, models.Show{
		Team: []models.TeamMember{
			{UserId: "u-sup", Role: models.TeamRolePropsSupervisor},
			{UserId: "u-editor", Role: models.TeamRoleEditor},
		},
	})
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: showId, Name: "Throne"}

	err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusDamagedAwaitingRepair, "u-actor", "leg snapped", false)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	got := notifiedUsers(t, store)
	if got["u-sup"] != 1 {
		t.Errorf("supervisor not alerted: %v", got)
	}
	if got["u-editor"] != 0 {
		t.Errorf("team notified despite notifyTeam=false: %v", got)
	}
}

// A supervisor already alerted by the repair branch is not notified twice by
// the team branch.
func TestDispatch_SupervisorNotDoubleNotified(t *testing.T) {
	store := newFakeStore()
	showId := seedShow(t, store, models.Show{
		Team: []models.TeamMember{
			{UserId: "u-sup", Role: models.TeamRoleGod},
			{UserId: "u-editor", Role: models.TeamRoleEditor},
		},
	})
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: showId, Name: "Throne"}

	if err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusUnderMaintenance, "u-actor", "", true); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	got := notifiedUsers(t, store)
	if got["u-sup"] != 1 {
		t.Errorf("supervisor notified %d times, want 1", got["u-sup"])
	}
	if got["u-editor"] != 1 {
		t.Errorf("team member notified %d times, want 1", got["u-editor"])
	}
}

func TestDispatch_TruncatesLongNotes(t *testing.T) {
	store := newFakeStore()
	showId := seedShow(t, store, models.Show{
		Team: []models.TeamMember{{UserId: "u-sup", Role: models.TeamRolePropsSupervisor}},
	})
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: showId, Name: "Throne"}

	longNotes := strings.Repeat("x", 300)
	if err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusOutForRepair, "u-actor", longNotes, false); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	docs, _ := store.GetCollection(context.Background(), CollectionNotifications)
	if len(docs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(docs))
	}
	msg, _ := docs[0].Data["message"].(string)
	if strings.Contains(msg, longNotes) {
		t.Fatal("notes embedded untruncated")
	}
	if !strings.Contains(msg, strings.Repeat("x", notesSummaryLimit)+"...") {
		t.Errorf("message lost the truncated notes: %q", msg)
	}
}

// One failing recipient must not stop delivery to the others, and the
// aggregate error is advisory.
func TestDispatch_IsolatesPerRecipientFailures(t *testing.T) {
	store := newFakeStore()
	showId := seedShow(t, store, models.Show{
		Team: []models.TeamMember{
			{UserId: "u-a", Role: models.TeamRoleEditor},
			{UserId: "u-b", Role: models.TeamRoleEditor},
			{UserId: "u-c", Role: models.TeamRoleEditor},
		},
	})
	store.AddErr = func(collection string, data map[string]any) error {
		if collection == CollectionNotifications && data["user_id"] == "u-b" {
			return errors.New("write refused")
		}
		return nil
	}
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: showId, Name: "Throne"}

	err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusOnHold, "u-actor", "", true)
	if err == nil {
		t.Fatal("expected advisory aggregate error")
	}

	got := notifiedUsers(t, store)
	if got["u-a"] != 1 || got["u-c"] != 1 {
		t.Errorf("surviving recipients not delivered: %v", got)
	}
	if got["u-b"] != 0 {
		t.Errorf("failed recipient recorded anyway: %v", got)
	}
}

// An unreachable roster degrades to "nobody notified", not an error.
func TestDispatch_MissingShowDegrades(t *testing.T) {
	store := newFakeStore()
	w := newTestWorkflow(store)
	prop := &models.Prop{ID: "p1", ShowId: "nope", Name: "Throne"}

	if err := w.DispatchStatusNotifications(context.Background(), prop,
		models.PropStatusConfirmed, models.PropStatusMissing, "u-actor", "", true); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if store.count(CollectionNotifications) != 0 {
		t.Fatal("notifications written without a roster")
	}
}
