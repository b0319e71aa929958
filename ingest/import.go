package ingest

import (
	"server/db"
	"server/models"

	"github.com/sirupsen/logrus"
)

// Result is what the dashboard shows after an upload
type Result struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Import runs the normalizer over the uploaded rows and upserts every
// invite group. A failing group is skipped and the batch continues;
// already written groups are not rolled back.
func Import(rows []Row) (Result, error) {
	groups, err := Normalize(rows)
	if err != nil {
		return Result{}, err
	}
	result := Result{}
	for _, group := range groups {
		if err := importGroup(group, &result); err != nil {
			logrus.WithError(err).Warnf("Import of invite %q failed", group.Name)
		}
	}
	return result, nil
}

// importGroup matches the group to an existing invite by exact name,
// updates or inserts it, then replaces its guest roster wholesale
func importGroup(group InviteGroup, result *Result) error {
	var invite models.Invite
	found := db.Instance.First(&invite, "name_on_invite = ?", group.Name).Error == nil
	if found {
		updates := map[string]interface{}{}
		if group.Phone != "" {
			updates["phone"] = group.Phone
		}
		if group.DDI != "" {
			updates["ddi"] = group.DDI
		}
		if group.GroupLabel != "" {
			updates["group_label"] = group.GroupLabel
		}
		if group.Observation != "" {
			updates["observation"] = group.Observation
		}
		if err := db.Instance.Model(&invite).Updates(updates).Error; err != nil {
			return err
		}
		result.Updated++
	} else {
		invite = models.Invite{
			NameOnInvite: group.Name,
			DDI:          group.DDI,
			Phone:        group.Phone,
			GroupLabel:   group.GroupLabel,
			Observation:  group.Observation,
		}
		if err := db.Instance.Create(&invite).Error; err != nil {
			return err
		}
		result.Added++
	}
	if err := db.Instance.Where("invite_id = ?", invite.ID).Delete(&models.Guest{}).Error; err != nil {
		return err
	}
	for _, entry := range group.Guests {
		guest := models.Guest{
			InviteID:    invite.ID,
			FullName:    entry.FullName,
			Gender:      entry.Gender,
			AgeGroup:    entry.AgeGroup,
			CostPayment: entry.CostPayment,
			TableNumber: entry.TableNumber,
			// Confirmation only ever happens through an RSVP submission,
			// whatever the sheet's status column claims
			Status:    models.StatusPending,
			Confirmed: false,
		}
		if err := db.Instance.Create(&guest).Error; err != nil {
			return err
		}
	}
	return nil
}
