package models

import (
	"server/db"

	"github.com/sirupsen/logrus"
)

// ReconcileResult carries the per-invite outcome of one RSVP submission
type ReconcileResult struct {
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

// ResolveInviteFromGuest maps any guest id to its owning invite
func ResolveInviteFromGuest(guestID uint64) (uint64, error) {
	var guest Guest
	if err := db.Instance.First(&guest, guestID).Error; err != nil {
		return 0, ErrInviteNotFound
	}
	return guest.InviteID, nil
}

// ReconcileRSVP applies one attendance submission over the complete guest
// roster of an invite. Every guest ends either Confirmed or Cancelled:
// membership in the attending set is the only input, so resubmitting the
// same set is idempotent and an empty set cancels the whole roster.
// Guests in the set get the supplied message attached; guests outside it
// get their message cleared unless keepCancelMessage is set (the
// per-guest-decision submission shape keeps it).
func ReconcileRSVP(inviteID uint64, attending map[uint64]bool, message string, keepCancelMessage bool) (ReconcileResult, error) {
	if _, err := InviteByID(inviteID); err != nil {
		return ReconcileResult{}, err
	}
	roster, err := GuestsOfInvite(inviteID)
	if err != nil {
		return ReconcileResult{}, err
	}
	result := ReconcileResult{}
	for _, guest := range roster {
		updates := map[string]interface{}{}
		if attending[guest.ID] {
			updates["status"] = StatusConfirmed
			updates["confirmed"] = true
			updates["message"] = message
			result.Confirmed++
		} else {
			updates["status"] = StatusCancelled
			updates["confirmed"] = false
			if keepCancelMessage {
				updates["message"] = message
			} else {
				updates["message"] = ""
			}
			result.Cancelled++
		}
		// Best effort per row, no rollback of already written guests
		if err := db.Instance.Model(&Guest{}).Where("id = ?", guest.ID).Updates(updates).Error; err != nil {
			logrus.WithError(err).Warnf("RSVP update failed for guest %d", guest.ID)
		}
	}
	return result, nil
}
