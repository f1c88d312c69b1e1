package models

// PropStatus is the closed set of lifecycle statuses a prop can be in.
// The set is fixed at compile time; the transition graph over it lives in
// the workflow package.
type PropStatus string

const (
	PropStatusConfirmed                  PropStatus = "confirmed"
	PropStatusCut                        PropStatus = "cut"
	PropStatusOnOrder                    PropStatus = "on_order"
	PropStatusToBuy                      PropStatus = "to_buy"
	PropStatusAwaitingDelivery           PropStatus = "awaiting_delivery"
	PropStatusUnderReview                PropStatus = "under_review"
	PropStatusBeingModified              PropStatus = "being_modified"
	PropStatusDamagedAwaitingRepair      PropStatus = "damaged_awaiting_repair"
	PropStatusDamagedAwaitingReplacement PropStatus = "damaged_awaiting_replacement"
	PropStatusOutForRepair               PropStatus = "out_for_repair"
	PropStatusRepairedBackInShow         PropStatus = "repaired_back_in_show"
	PropStatusUnderMaintenance           PropStatus = "under_maintenance"
	PropStatusMissing                    PropStatus = "missing"
	PropStatusCheckedOut                 PropStatus = "checked_out"
	PropStatusAvailableInStorage         PropStatus = "available_in_storage"
	PropStatusInTransit                  PropStatus = "in_transit"
	PropStatusLoanedOut                  PropStatus = "loaned_out"
	PropStatusOnHold                     PropStatus = "on_hold"
	PropStatusTemporarilyRetired         PropStatus = "temporarily_retired"
	PropStatusReadyForDisposal           PropStatus = "ready_for_disposal"
)

// StatusPriority ranks how urgently a status needs human attention.
// Used for follow-up task priority and for sorting status views.
type StatusPriority string

const (
	StatusPriorityLow    StatusPriority = "low"
	StatusPriorityMedium StatusPriority = "medium"
	StatusPriorityHigh   StatusPriority = "high"
)

type statusInfo struct {
	Label    string
	Priority StatusPriority
}

var statusCatalog = map[PropStatus]statusInfo{
	PropStatusConfirmed:                  {"Confirmed", StatusPriorityLow},
	PropStatusCut:                        {"Cut", StatusPriorityLow},
	PropStatusOnOrder:                    {"On Order", StatusPriorityMedium},
	PropStatusToBuy:                      {"To Buy", StatusPriorityMedium},
	PropStatusAwaitingDelivery:           {"Awaiting Delivery", StatusPriorityMedium},
	PropStatusUnderReview:                {"Under Review", StatusPriorityMedium},
	PropStatusBeingModified:              {"Being Modified", StatusPriorityMedium},
	PropStatusDamagedAwaitingRepair:      {"Damaged - Awaiting Repair", StatusPriorityHigh},
	PropStatusDamagedAwaitingReplacement: {"Damaged - Awaiting Replacement", StatusPriorityHigh},
	PropStatusOutForRepair:               {"Out for Repair", StatusPriorityMedium},
	PropStatusRepairedBackInShow:         {"Repaired - Back in Show", StatusPriorityLow},
	PropStatusUnderMaintenance:           {"Under Maintenance", StatusPriorityMedium},
	PropStatusMissing:                    {"Missing", StatusPriorityHigh},
	PropStatusCheckedOut:                 {"Checked Out", StatusPriorityMedium},
	PropStatusAvailableInStorage:         {"Available in Storage", StatusPriorityLow},
	PropStatusInTransit:                  {"In Transit", StatusPriorityMedium},
	PropStatusLoanedOut:                  {"Loaned Out", StatusPriorityMedium},
	PropStatusOnHold:                     {"On Hold", StatusPriorityLow},
	PropStatusTemporarilyRetired:         {"Temporarily Retired", StatusPriorityLow},
	PropStatusReadyForDisposal:           {"Ready for Disposal", StatusPriorityLow},
}

// AllPropStatuses returns every status in the catalog. Order is unspecified.
func AllPropStatuses() []PropStatus {
	out := make([]PropStatus, 0, len(statusCatalog))
	for s := range statusCatalog {
		out = append(out, s)
	}
	return out
}

func (s PropStatus) IsValid() bool {
	_, ok := statusCatalog[s]
	return ok
}

// Label returns the human-readable name shown in UIs and notification text.
// Unknown values fall back to the raw string so logs stay readable.
func (s PropStatus) Label() string {
	if info, ok := statusCatalog[s]; ok {
		return info.Label
	}
	return string(s)
}

func (s PropStatus) Priority() StatusPriority {
	if info, ok := statusCatalog[s]; ok {
		return info.Priority
	}
	return StatusPriorityLow
}

// IsRepairFamily reports whether the status belongs to the repair/maintenance
// family that triggers supervisor alerts and auto-created follow-up tasks.
func (s PropStatus) IsRepairFamily() bool {
	switch s {
	case PropStatusDamagedAwaitingRepair,
		PropStatusDamagedAwaitingReplacement,
		PropStatusOutForRepair,
		PropStatusUnderMaintenance:
		return true
	}
	return false
}
