package models

import "server/db"

// GuestStatus is the single source of truth for a guest's attendance state.
type GuestStatus string

const (
	StatusPending   GuestStatus = "Pendente"
	StatusConfirmed GuestStatus = "Confirmado"
	StatusCancelled GuestStatus = "Cancelado"
)

// Guest is one named person under an Invite with an individual attendance
// decision. The Confirmed column is a legacy flag kept in sync for exports
// and old API consumers; it is derived from Status and never read back.
type Guest struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	InviteID    uint64      `gorm:"not null;index"`
	FullName    string      `gorm:"type:varchar(300);not null"`
	Gender      string      `gorm:"type:varchar(20)"`
	AgeGroup    string      `gorm:"type:varchar(50)"`
	CostPayment string      `gorm:"type:varchar(50)"`
	Status      GuestStatus `gorm:"type:varchar(30)"`
	TableNumber int
	Confirmed   bool   `gorm:"not null;default:false"`
	Message     string `gorm:"type:text"`
}

func (g *Guest) IsConfirmed() bool {
	return g.Status == StatusConfirmed
}

func GuestByID(id uint64) (guest Guest, err error) {
	err = db.Instance.First(&guest, id).Error
	return
}

// GuestsOfInvite returns the complete roster for one invite
func GuestsOfInvite(inviteID uint64) (guests []Guest, err error) {
	err = db.Instance.Where("invite_id = ?", inviteID).Find(&guests).Error
	return
}
