package workflow

import "github.com/mmdatafocus/props_backend/models"

// statusTransitionTable is the fixed directed graph of legal status changes.
// Every catalog status must appear as a key, even with an empty value list;
// TestStatusTransitionTable_Totality enforces this. Cycles are intentional:
// cut props can be reinstated (cut -> confirmed -> ... -> cut).
var statusTransitionTable = map[models.PropStatus][]models.PropStatus{
	models.PropStatusConfirmed: {
		models.PropStatusCheckedOut,
		models.PropStatusMissing,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusDamagedAwaitingReplacement,
		models.PropStatusOutForRepair,
		models.PropStatusUnderMaintenance,
		models.PropStatusBeingModified,
		models.PropStatusUnderReview,
		models.PropStatusInTransit,
		models.PropStatusLoanedOut,
		models.PropStatusOnHold,
		models.PropStatusAvailableInStorage,
		models.PropStatusCut,
		models.PropStatusTemporarilyRetired,
		models.PropStatusReadyForDisposal,
	},
	models.PropStatusCut: {
		models.PropStatusConfirmed,
		models.PropStatusTemporarilyRetired,
	},
	models.PropStatusOnOrder: {
		models.PropStatusAwaitingDelivery,
		models.PropStatusConfirmed,
		models.PropStatusUnderReview,
		models.PropStatusCut,
	},
	models.PropStatusToBuy: {
		models.PropStatusOnOrder,
		models.PropStatusUnderReview,
		models.PropStatusCut,
	},
	models.PropStatusAwaitingDelivery: {
		models.PropStatusAvailableInStorage,
		models.PropStatusConfirmed,
		models.PropStatusUnderReview,
		models.PropStatusMissing,
	},
	models.PropStatusUnderReview: {
		models.PropStatusConfirmed,
		models.PropStatusCut,
		models.PropStatusToBuy,
		models.PropStatusOnOrder,
		models.PropStatusBeingModified,
		models.PropStatusTemporarilyRetired,
	},
	models.PropStatusBeingModified: {
		models.PropStatusConfirmed,
		models.PropStatusUnderReview,
		models.PropStatusAvailableInStorage,
		models.PropStatusDamagedAwaitingRepair,
	},
	models.PropStatusDamagedAwaitingRepair: {
		models.PropStatusOutForRepair,
		models.PropStatusUnderMaintenance,
		models.PropStatusDamagedAwaitingReplacement,
		models.PropStatusRepairedBackInShow,
		models.PropStatusCut,
		models.PropStatusReadyForDisposal,
	},
	models.PropStatusDamagedAwaitingReplacement: {
		models.PropStatusOnOrder,
		models.PropStatusToBuy,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusCut,
		models.PropStatusReadyForDisposal,
	},
	models.PropStatusOutForRepair: {
		models.PropStatusRepairedBackInShow,
		models.PropStatusDamagedAwaitingRepair,
	},
	models.PropStatusRepairedBackInShow: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusCheckedOut,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusUnderMaintenance,
	},
	models.PropStatusUnderMaintenance: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusOutForRepair,
		models.PropStatusRepairedBackInShow,
	},
	models.PropStatusMissing: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusCut,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusReadyForDisposal,
	},
	models.PropStatusCheckedOut: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusMissing,
		models.PropStatusDamagedAwaitingRepair,
		models.PropStatusDamagedAwaitingReplacement,
		models.PropStatusInTransit,
	},
	models.PropStatusAvailableInStorage: {
		models.PropStatusCheckedOut,
		models.PropStatusConfirmed,
		models.PropStatusInTransit,
		models.PropStatusLoanedOut,
		models.PropStatusOnHold,
		models.PropStatusUnderMaintenance,
		models.PropStatusMissing,
		models.PropStatusTemporarilyRetired,
		models.PropStatusReadyForDisposal,
		models.PropStatusCut,
	},
	models.PropStatusInTransit: {
		models.PropStatusAvailableInStorage,
		models.PropStatusConfirmed,
		models.PropStatusCheckedOut,
		models.PropStatusMissing,
	},
	models.PropStatusLoanedOut: {
		models.PropStatusAvailableInStorage,
		models.PropStatusConfirmed,
		models.PropStatusMissing,
		models.PropStatusDamagedAwaitingRepair,
	},
	models.PropStatusOnHold: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusCut,
		models.PropStatusTemporarilyRetired,
	},
	models.PropStatusTemporarilyRetired: {
		models.PropStatusConfirmed,
		models.PropStatusAvailableInStorage,
		models.PropStatusCut,
		models.PropStatusReadyForDisposal,
	},
	models.PropStatusReadyForDisposal: {
		models.PropStatusCut,
		models.PropStatusTemporarilyRetired,
		models.PropStatusAvailableInStorage,
	},
}

// AllowedTransitions returns the statuses reachable from `from` in table
// order. The returned slice is a copy.
func AllowedTransitions(from models.PropStatus) []models.PropStatus {
	allowed := statusTransitionTable[from]
	out := make([]models.PropStatus, len(allowed))
	copy(out, allowed)
	return out
}

// ValidateStatusTransition checks whether next is reachable from previous.
// Same-status updates are always valid (idempotent no-op), and
// allowOverride bypasses the table for privileged/admin paths. On rejection
// the returned *InvalidTransitionError carries the full allowed set.
func ValidateStatusTransition(previous, next models.PropStatus, allowOverride bool) error {
	if previous == next {
		return nil
	}
	if allowOverride {
		return nil
	}
	for _, s := range statusTransitionTable[previous] {
		if s == next {
			return nil
		}
	}
	return &InvalidTransitionError{
		From:    previous,
		To:      next,
		Allowed: AllowedTransitions(previous),
	}
}
