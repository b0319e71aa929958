package models

import (
	"errors"

	"server/db"

	"github.com/google/uuid"
)

var ErrInviteNotFound = errors.New("invite not found")

// Invite is one named invitation unit, possibly covering multiple guests.
// NameOnInvite is the match key used by the spreadsheet import.
type Invite struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	UpdatedAt    int64
	NameOnInvite string  `gorm:"type:varchar(300);not null;index"`
	DDI          string  `gorm:"type:varchar(10)"`
	Phone        string  `gorm:"type:varchar(40)"`
	GroupLabel   string  `gorm:"type:varchar(100);column:group_label"`
	Observation  string  `gorm:"type:text"`
	Code         string  `gorm:"type:varchar(100)"`
	Token        *string `gorm:"type:varchar(120);index:uniq_invite_token,unique"`
	Guests       []Guest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func InviteByID(id uint64) (invite Invite, err error) {
	result := db.Instance.First(&invite, id)
	if result.Error != nil {
		return Invite{}, ErrInviteNotFound
	}
	return invite, nil
}

func InviteByToken(token string) (invite Invite, err error) {
	result := db.Instance.Preload("Guests").First(&invite, "token = ?", token)
	if result.Error != nil {
		return Invite{}, ErrInviteNotFound
	}
	return invite, nil
}

// InviteSearch finds invites whose name or phone contains the given term,
// case-insensitively, capped at limit results
func InviteSearch(term string, limit int) (invites []Invite, err error) {
	pattern := "%" + term + "%"
	err = db.Instance.Preload("Guests").
		Where("lower(name_on_invite) LIKE lower(?) OR phone LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&invites).Error
	return
}

// GenerateToken assigns a fresh unique access token to the invite.
// Collisions are practically impossible, but re-roll just in case.
func (invite *Invite) GenerateToken() error {
	for {
		token := uuid.NewString()
		var count int64
		if err := db.Instance.Model(&Invite{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		invite.Token = &token
		return db.Instance.Model(invite).Update("token", token).Error
	}
}
