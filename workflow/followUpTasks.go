package workflow

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/props_backend/config"
	"github.com/mmdatafocus/props_backend/docstore"
	"github.com/mmdatafocus/props_backend/models"
	"github.com/mmdatafocus/props_backend/utils"
)

type followUpTemplate struct {
	TitleFormat string
	Description string
	Priority    models.StatusPriority
	Labels      []string
}

// followUpTemplates defines which new statuses auto-create a task board card
// and how the card is synthesized. Statuses absent from this table never
// create tasks.
var followUpTemplates = map[models.PropStatus]followUpTemplate{
	models.PropStatusDamagedAwaitingRepair: {
		TitleFormat: "Repair required: %s",
		Description: "The prop has been reported damaged and is awaiting repair.",
		Priority:    models.StatusPriorityHigh,
		Labels:      []string{"repair", "auto-created"},
	},
	models.PropStatusDamagedAwaitingReplacement: {
		TitleFormat: "Replacement required: %s",
		Description: "The prop has been reported damaged beyond repair and needs a replacement.",
		Priority:    models.StatusPriorityHigh,
		Labels:      []string{"replacement", "auto-created"},
	},
	models.PropStatusOutForRepair: {
		TitleFormat: "Track repair: %s",
		Description: "The prop has been sent out for repair. Chase the repairer and confirm the return date.",
		Priority:    models.StatusPriorityMedium,
		Labels:      []string{"repair", "auto-created"},
	},
	models.PropStatusUnderMaintenance: {
		TitleFormat: "Maintenance required: %s",
		Description: "The prop requires maintenance before it can return to the show.",
		Priority:    models.StatusPriorityMedium,
		Labels:      []string{"maintenance", "auto-created"},
	},
	models.PropStatusMissing: {
		TitleFormat: "Find missing prop: %s",
		Description: "The prop has been reported missing. Check recent locations and sign-out records.",
		Priority:    models.StatusPriorityHigh,
		Labels:      []string{"missing", "auto-created"},
	},
}

// MaybeCreateFollowUpTask creates at most one open task board card for the
// prop when the new status calls for one. Returns the created card id, or ""
// when no card was needed or the board/lookup path degraded.
//
// Failure semantics: board and dedup lookup failures degrade to "no task
// created" with a logged warning; only the card write itself surfaces an
// error, and the coordinator logs rather than propagates it. The status
// transition is never blocked by this path.
func (w *StatusWorkflow) MaybeCreateFollowUpTask(ctx context.Context, prop *models.Prop, previous, next models.PropStatus, notes string) (string, error) {
	tmpl, ok := followUpTemplates[next]
	if !ok {
		return "", nil
	}

	// Best-effort: narrows the read-then-create race between concurrent
	// updates to the same prop. See acquirePropLock.
	release := w.acquirePropLock(ctx, prop.ID)
	defer release()

	boards, err := w.Store.GetCollection(ctx, CollectionTodoBoards,
		docstore.Where("show_id", docstore.OpEqual, prop.ShowId))
	if err != nil {
		w.warnFollowUpSkipped(prop, "board lookup failed: "+err.Error())
		return "", nil
	}
	if len(boards) == 0 {
		w.warnFollowUpSkipped(prop, "show has no task board")
		return "", nil
	}
	boardId := boards[0].ID

	lists, err := w.Store.GetCollection(ctx, boardListsCollection(boardId))
	if err != nil {
		w.warnFollowUpSkipped(prop, "list lookup failed: "+err.Error())
		return "", nil
	}
	if len(lists) == 0 {
		w.warnFollowUpSkipped(prop, "task board has no lists")
		return "", nil
	}

	// Dedup: at most one open follow-up card per prop, across every list on
	// the board (Invariant: no two open follow-up tasks for the same prop).
	for _, list := range lists {
		open, err := w.Store.GetCollection(ctx, listCardsCollection(boardId, list.ID),
			docstore.Where("prop_id", docstore.OpEqual, prop.ID),
			docstore.Where("completed", docstore.OpEqual, false))
		if err != nil {
			w.warnFollowUpSkipped(prop, "open card lookup failed: "+err.Error())
			return "", nil
		}
		if len(open) > 0 {
			return "", nil
		}
	}

	assignee := w.resolveDefaultAssignee(ctx, prop.ShowId)

	description := tmpl.Description
	if notes != "" {
		description = fmt.Sprintf("%s\n\nNotes: %s", tmpl.Description, notes)
	}
	description = fmt.Sprintf("%s\n\nProp: props/%s", description, prop.ID)

	task := models.FollowUpTask{
		ID:          w.NewId(),
		PropId:      prop.ID,
		ShowId:      prop.ShowId,
		Title:       fmt.Sprintf(tmpl.TitleFormat, prop.Name),
		Description: description,
		Priority:    tmpl.Priority,
		Status:      models.TaskStatusNotStarted,
		Completed:   false,
		Labels:      tmpl.Labels,
		CreatedAt:   w.Now(),
	}
	if assignee != "" {
		task.AssignedTo = []string{assignee}
	}

	data, err := utils.StructToDocData(task)
	if err != nil {
		return "", err
	}
	taskId, err := w.Store.AddDocument(ctx, listCardsCollection(boardId, lists[0].ID), data)
	if err != nil {
		return "", err
	}

	if assignee != "" {
		w.createNotification(ctx, models.Notification{
			UserId:  assignee,
			Type:    models.NotificationTypeTaskAssigned,
			Title:   task.Title,
			Message: fmt.Sprintf("You have been assigned a follow-up task for %q.", prop.Name),
			PropId:  prop.ID,
			ShowId:  prop.ShowId,
		})
	}

	return taskId, nil
}

// resolveDefaultAssignee picks the first supervisor-equivalent team member of
// the show. Returns "" (task stays unassigned) when the show cannot be loaded
// or has no supervisor; others can reassign on the board.
func (w *StatusWorkflow) resolveDefaultAssignee(ctx context.Context, showId string) string {
	show, err := w.loadShow(ctx, showId)
	if err != nil {
		config.LogWarn(w.Logger, "workflow", "resolveDefaultAssignee", "load show", map[string]any{
			"show_id": showId,
		}, err.Error())
		return ""
	}
	supervisors := show.Supervisors()
	if len(supervisors) == 0 {
		return ""
	}
	return supervisors[0].UserId
}

func (w *StatusWorkflow) warnFollowUpSkipped(prop *models.Prop, reason string) {
	config.LogWarn(w.Logger, "workflow", "MaybeCreateFollowUpTask", "skipped", map[string]any{
		"prop_id": prop.ID,
		"show_id": prop.ShowId,
	}, reason)
}
