package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/mmdatafocus/props_backend/config"
	"github.com/mmdatafocus/props_backend/docstore"
	"github.com/mmdatafocus/props_backend/models"
	"github.com/mmdatafocus/props_backend/utils"
	"github.com/sirupsen/logrus"
)

// MediaUploader is the media storage collaborator. Each upload fails
// independently; the workflow never treats an upload failure as fatal.
type MediaUploader interface {
	UploadFile(ctx context.Context, objectName string, content []byte) (string, error)
}

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaAttachment is one damage photo/video attached to a status update,
// already decoded by the API layer.
type MediaAttachment struct {
	FileName string
	Kind     MediaKind
	Content  []byte
}

// StatusUpdateInput is the single request a status update runs on.
type StatusUpdateInput struct {
	PropId    string            `validate:"required"`
	NewStatus models.PropStatus `validate:"required"`
	UpdatedBy string            `validate:"required"`
	Notes     string
	Reason    string
	Media     []MediaAttachment

	// AllowOverride bypasses transition validation (privileged/admin paths).
	// Overridden transitions are flagged on the history entry.
	AllowOverride bool

	// NotifyTeam controls the general-team notification branch; nil falls
	// back to config.NotifyTeamDefault(). Supervisor alerts for the repair
	// family ignore this.
	NotifyTeam *bool
}

// StatusWorkflow coordinates a prop status change: validation, media upload,
// the canonical status write with field cleanup, history recording, follow-up
// task orchestration and notification fan-out. Stateless apart from injected
// collaborators, so a single value is safe for concurrent use.
type StatusWorkflow struct {
	Store  docstore.Store
	Media  MediaUploader     // optional; nil skips uploads
	Locker *redislock.Client // optional; nil skips best-effort locking
	Logger *logrus.Logger

	// Now and NewId are injectable for tests.
	Now   func() time.Time
	NewId func() string

	// PublishEvent pushes the realtime status event; optional.
	PublishEvent func(ctx context.Context, event config.StatusEvent) error
}

func NewStatusWorkflow(store docstore.Store, media MediaUploader) *StatusWorkflow {
	w := &StatusWorkflow{
		Store:  store,
		Media:  media,
		Locker: config.GetRedisLock(),
		Logger: config.GetLogger(),
		Now:    func() time.Time { return time.Now().UTC() },
		NewId:  uuid.NewString,
	}
	if config.PushStatusEvents() {
		w.PublishEvent = func(ctx context.Context, event config.StatusEvent) error {
			_, err := config.PublishStatusEventWithResult(ctx, event)
			return err
		}
	}
	return w
}

// UpdateStatus runs the full pipeline for one status change.
//
// Only three failures abort: prop not found, invalid transition (both before
// any mutation), and the canonical status/history writes. Media uploads,
// follow-up task creation and notifications are side effects whose errors
// are deliberately discarded after logging — the contract "side effects never
// block the main path" is carried in code, not comments.
func (w *StatusWorkflow) UpdateStatus(ctx context.Context, input StatusUpdateInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if !input.NewStatus.IsValid() {
		return fmt.Errorf("unknown prop status %q", input.NewStatus)
	}

	// 1. Load. The only NotFound source.
	prop, err := w.loadProp(ctx, input.PropId)
	if err != nil {
		return err
	}
	previous := prop.Status

	// 2. Validate. The only pre-mutation abort besides NotFound.
	if err := ValidateStatusTransition(previous, input.NewStatus, input.AllowOverride); err != nil {
		return err
	}
	bypassed := input.AllowOverride &&
		ValidateStatusTransition(previous, input.NewStatus, false) != nil

	// 3. Media uploads, concurrently. Each failure is swallowed and logged;
	// the aggregate URL lists preserve the caller's attachment order.
	media := w.uploadStatusMedia(ctx, input.PropId, input.Media)

	now := w.Now()

	// 4. Canonical status write + cleanup. Fatal on failure; nothing before
	// this point has persisted anything externally visible.
	fields := StatusCleanupFields(input.NewStatus)
	fields["status"] = string(input.NewStatus)
	fields["last_status_update"] = now.Format(time.RFC3339Nano)
	fields["updated_at"] = now.Format(time.RFC3339Nano)
	if err := w.Store.UpdateDocument(ctx, CollectionProps, prop.ID, fields); err != nil {
		return &PersistenceError{Op: "update prop status", Err: err}
	}

	// 5. History entry. Must land before any side effect that references it.
	transition := models.StatusTransition{
		PropId:         prop.ID,
		ShowId:         prop.ShowId,
		PreviousStatus: previous,
		NewStatus:      input.NewStatus,
		UpdatedBy:      input.UpdatedBy,
		Notes:          input.Notes,
		Reason:         input.Reason,
	}
	entry := BuildStatusHistoryEntry(transition, media, bypassed, now)
	entryData, err := utils.StructToDocData(entry)
	if err != nil {
		return &PersistenceError{Op: "encode history entry", Err: err}
	}
	historyId, err := w.Store.AddDocument(ctx, CollectionStatusHistory, entryData)
	if err != nil {
		return &PersistenceError{Op: "record status history", Err: err}
	}

	notifyTeam := config.NotifyTeamDefault()
	if input.NotifyTeam != nil {
		notifyTeam = *input.NotifyTeam
	}

	// 6 + 7. Follow-up orchestration and notification fan-out, independent
	// of each other, both gated on the persisted history id. Neither can
	// fail the update.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer w.recoverSideEffect("follow-up task", prop.ID)
		taskId, err := w.MaybeCreateFollowUpTask(ctx, prop, previous, input.NewStatus, input.Notes)
		if err != nil {
			w.logSideEffect("follow-up task", prop.ID, err)
			return
		}
		if taskId == "" {
			return
		}
		if err := w.Store.UpdateDocument(ctx, CollectionStatusHistory, historyId, map[string]any{
			"related_task_id": taskId,
		}); err != nil {
			w.logSideEffect("history task backfill", prop.ID, err)
		}
	}()
	go func() {
		defer wg.Done()
		defer w.recoverSideEffect("notifications", prop.ID)
		if err := w.DispatchStatusNotifications(ctx, prop, previous, input.NewStatus, input.UpdatedBy, input.Notes, notifyTeam); err != nil {
			w.logSideEffect("notifications", prop.ID, err)
		}
		if w.PublishEvent != nil {
			event := config.StatusEvent{
				PropId:         prop.ID,
				ShowId:         prop.ShowId,
				PreviousStatus: string(previous),
				NewStatus:      string(input.NewStatus),
				UpdatedBy:      input.UpdatedBy,
				OccurredAt:     now,
				CorrelationId:  correlationIdFromContextOrNew(ctx),
			}
			if err := w.PublishEvent(ctx, event); err != nil {
				w.logSideEffect("status event publish", prop.ID, err)
			}
		}
	}()
	wg.Wait()

	// Steps 4-5 committed; side-effect outcomes do not change the result.
	return nil
}

// uploadStatusMedia uploads all attachments concurrently and returns the
// URLs of the successful ones, partitioned by kind, preserving input order.
func (w *StatusWorkflow) uploadStatusMedia(ctx context.Context, propId string, attachments []MediaAttachment) MediaURLs {
	var media MediaURLs
	if len(attachments) == 0 {
		return media
	}
	if w.Media == nil {
		config.LogWarn(w.Logger, "workflow", "uploadStatusMedia", "no uploader configured", map[string]any{
			"prop_id": propId, "attachments": len(attachments),
		}, "dropping status media")
		return media
	}

	urls := make([]string, len(attachments))
	var wg sync.WaitGroup
	for i, att := range attachments {
		wg.Add(1)
		go func(i int, att MediaAttachment) {
			defer wg.Done()
			defer w.recoverSideEffect("media upload", propId)
			objectName := fmt.Sprintf("props/%s/damage/%s", propId, att.FileName)
			url, err := w.Media.UploadFile(ctx, objectName, att.Content)
			if err != nil {
				w.logSideEffect("media upload", propId, fmt.Errorf("%s: %w", att.FileName, err))
				return
			}
			urls[i] = url
		}(i, att)
	}
	wg.Wait()

	for i, att := range attachments {
		if urls[i] == "" {
			continue
		}
		if att.Kind == MediaKindVideo {
			media.DamageVideoUrls = append(media.DamageVideoUrls, urls[i])
		} else {
			media.DamageImageUrls = append(media.DamageImageUrls, urls[i])
		}
	}
	return media
}

func (w *StatusWorkflow) loadProp(ctx context.Context, propId string) (*models.Prop, error) {
	doc, err := w.Store.GetDocument(ctx, CollectionProps, propId)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, &NotFoundError{Collection: CollectionProps, ID: propId}
		}
		return nil, &PersistenceError{Op: "load prop", Err: err}
	}
	var prop models.Prop
	if err := utils.DocDataToStruct(doc.Data, &prop); err != nil {
		return nil, &PersistenceError{Op: "decode prop", Err: err}
	}
	prop.ID = doc.ID
	return &prop, nil
}

// showCacheTTL bounds roster staleness for notification/assignee resolution.
// Consumers that edit a show's team call config.RemoveRedisKey("show:" + id).
const showCacheTTL = 5 * time.Minute

func (w *StatusWorkflow) loadShow(ctx context.Context, showId string) (*models.Show, error) {
	cacheKey := "show:" + showId
	var cached models.Show
	if ok, err := config.GetRedisObject(cacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	doc, err := w.Store.GetDocument(ctx, CollectionShows, showId)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, &NotFoundError{Collection: CollectionShows, ID: showId}
		}
		return nil, err
	}
	var show models.Show
	if err := utils.DocDataToStruct(doc.Data, &show); err != nil {
		return nil, err
	}
	show.ID = doc.ID
	_ = config.SetRedisObject(cacheKey, show, showCacheTTL)
	return &show, nil
}

func (w *StatusWorkflow) logSideEffect(step, propId string, err error) {
	config.LogError(w.Logger, "workflow", "UpdateStatus", step, map[string]any{
		"prop_id": propId,
		"step":    step,
	}, &SideEffectError{Step: step, PropId: propId, Err: err})
}

func (w *StatusWorkflow) recoverSideEffect(step, propId string) {
	if r := recover(); r != nil {
		w.logSideEffect(step, propId, fmt.Errorf("panic: %v", r))
	}
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
		return v
	}
	return uuid.NewString()
}
