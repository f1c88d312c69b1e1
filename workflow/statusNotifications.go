package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mmdatafocus/props_backend/config"
	"github.com/mmdatafocus/props_backend/models"
	"github.com/mmdatafocus/props_backend/utils"
)

// notesSummaryLimit bounds free-text notes embedded into a notification
// summary line.
const notesSummaryLimit = 100

type pendingNotification struct {
	UserId  string
	Type    models.NotificationType
	Title   string
	Message string
}

// DispatchStatusNotifications resolves the recipient set for a status change
// and fans the sends out concurrently. The actor (updatedBy) is never a
// recipient. The returned error is advisory only: per-recipient failures are
// logged and aggregated, and the coordinator discards the aggregate — a
// failed send to one user must not block delivery to another, nor surface to
// the end user.
func (w *StatusWorkflow) DispatchStatusNotifications(ctx context.Context, prop *models.Prop, previous, next models.PropStatus, updatedBy, notes string, notifyTeam bool) error {
	show, err := w.loadShow(ctx, prop.ShowId)
	if err != nil {
		config.LogWarn(w.Logger, "workflow", "DispatchStatusNotifications", "load show", map[string]any{
			"prop_id": prop.ID,
			"show_id": prop.ShowId,
		}, err.Error())
		return nil
	}

	title := fmt.Sprintf("%s: %s", next.Label(), prop.Name)
	summary := fmt.Sprintf("Status changed from %s to %s.", previous.Label(), next.Label())
	if notes != "" {
		summary = fmt.Sprintf("%s Notes: %s", summary, utils.TruncateRunes(notes, notesSummaryLimit))
	}

	var pending []pendingNotification
	notified := map[string]bool{
		// Invariant: the actor never receives notifications for their own change.
		updatedBy: true,
	}

	// Repair/maintenance statuses always alert supervisors, regardless of
	// the caller's notifyTeam choice.
	if next.IsRepairFamily() {
		for _, sup := range show.Supervisors() {
			if notified[sup.UserId] {
				continue
			}
			notified[sup.UserId] = true
			pending = append(pending, pendingNotification{
				UserId:  sup.UserId,
				Type:    models.NotificationTypeStatusChange,
				Title:   fmt.Sprintf("Attention needed - %s", title),
				Message: summary,
			})
		}
	}

	if notifyTeam {
		recipients := make([]string, 0, len(show.Team)+len(prop.AssignedTo))
		for _, m := range show.Team {
			recipients = append(recipients, m.UserId)
		}
		recipients = append(recipients, prop.AssignedTo...)
		for _, userId := range utils.UniqueSlice(recipients) {
			if userId == "" || notified[userId] {
				continue
			}
			notified[userId] = true
			pending = append(pending, pendingNotification{
				UserId:  userId,
				Type:    models.NotificationTypeStatusChange,
				Title:   title,
				Message: summary,
			})
		}
	}

	if len(pending) == 0 {
		return nil
	}

	// Fan out concurrently; every send is isolated so one failing recipient
	// cannot starve the rest.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, p := range pending {
		wg.Add(1)
		go func(p pendingNotification) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("notification to %s panicked: %v", p.UserId, r))
					mu.Unlock()
				}
			}()
			if err := w.writeNotification(ctx, models.Notification{
				UserId:  p.UserId,
				Type:    p.Type,
				Title:   p.Title,
				Message: p.Message,
				PropId:  prop.ID,
				ShowId:  prop.ShowId,
			}); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("notification to %s: %w", p.UserId, err))
				mu.Unlock()
			}
		}(p)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (w *StatusWorkflow) writeNotification(ctx context.Context, n models.Notification) error {
	n.ID = w.NewId()
	n.CreatedAt = w.Now()
	n.Read = false
	data, err := utils.StructToDocData(n)
	if err != nil {
		return err
	}
	_, err = w.Store.AddDocument(ctx, CollectionNotifications, data)
	return err
}

// createNotification is the fire-and-forget variant used inside other side
// effects (e.g. follow-up task assignment); failures are logged, never
// returned.
func (w *StatusWorkflow) createNotification(ctx context.Context, n models.Notification) {
	if err := w.writeNotification(ctx, n); err != nil {
		config.LogError(w.Logger, "workflow", "createNotification", "write", map[string]any{
			"user_id": n.UserId,
			"prop_id": n.PropId,
		}, &SideEffectError{Step: "notification", PropId: n.PropId, Err: err})
	}
}
