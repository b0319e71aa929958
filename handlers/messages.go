package handlers

import (
	"net/http"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
)

type MessageInfo struct {
	ID           uint64 `json:"id"`
	InviteID     uint64 `json:"inviteId"`
	NameOnInvite string `json:"nameOnInvite"`
	Phone        string `json:"phone,omitempty"`
	Group        string `json:"group,omitempty"`
	GuestName    string `json:"guestName,omitempty"`
	Status       string `json:"status"`
	Message      string `json:"message"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// MessageList returns everything guests wrote to the hosts: per-guest RSVP
// messages plus invite-level observations, newest first
func MessageList(c *gin.Context, user *models.User) {
	guestMessages, err := loadGuestMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	inviteMessages, err := loadInviteMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"guestMessages":  guestMessages,
		"inviteMessages": inviteMessages,
	})
}

func loadGuestMessages() ([]MessageInfo, error) {
	rows, err := db.Instance.Table("guests").
		Select("guests.id, guests.invite_id, invites.name_on_invite, invites.phone, invites.group_label, guests.full_name, guests.status, guests.message, guests.updated_at").
		Joins("join invites on guests.invite_id = invites.id").
		Where("guests.message IS NOT NULL AND trim(guests.message) != ''").
		Order("guests.updated_at DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []MessageInfo{}
	for rows.Next() {
		info := MessageInfo{}
		if err = rows.Scan(&info.ID, &info.InviteID, &info.NameOnInvite, &info.Phone, &info.Group,
			&info.GuestName, &info.Status, &info.Message, &info.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

func loadInviteMessages() ([]MessageInfo, error) {
	rows, err := db.Instance.Table("invites").
		Select("id, name_on_invite, phone, group_label, observation, updated_at").
		Where("observation IS NOT NULL AND trim(observation) != ''").
		Order("updated_at DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []MessageInfo{}
	for rows.Next() {
		info := MessageInfo{Status: "Geral"}
		if err = rows.Scan(&info.ID, &info.NameOnInvite, &info.Phone, &info.Group,
			&info.Message, &info.UpdatedAt); err != nil {
			return nil, err
		}
		info.InviteID = info.ID
		result = append(result, info)
	}
	return result, nil
}
