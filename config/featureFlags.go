package config

import (
	"os"
	"strings"
)

// PushStatusEvents enables publishing prop.status_changed events to Pub/Sub
// after a successful status update.
//
// Set via env:
// - PUSH_STATUS_EVENTS=true
func PushStatusEvents() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PUSH_STATUS_EVENTS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// NotifyTeamDefault is the fallback for callers that do not say whether the
// general team should be notified on a status change. Supervisor alerts for
// the repair family are not affected by this flag.
//
// Set via env:
// - NOTIFY_TEAM_DEFAULT=false  (defaults to true when unset)
func NotifyTeamDefault() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFY_TEAM_DEFAULT")))
	if v == "" {
		return true
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
