package handlers

import "server/models"

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
	NotFoundResponse = Response{"not found"}
)

type GuestInfo struct {
	ID          uint64 `json:"id"`
	InviteID    uint64 `json:"inviteId"`
	FullName    string `json:"fullName"`
	Gender      string `json:"gender,omitempty"`
	AgeGroup    string `json:"ageGroup,omitempty"`
	CostPayment string `json:"costPayment,omitempty"`
	Status      string `json:"status"`
	TableNumber int    `json:"tableNumber,omitempty"`
	Confirmed   bool   `json:"confirmed"`
	Message     string `json:"message,omitempty"`
}

type InviteInfo struct {
	ID             uint64      `json:"id"`
	NameOnInvite   string      `json:"nameOnInvite"`
	DDI            string      `json:"ddi,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Group          string      `json:"group,omitempty"`
	Observation    string      `json:"observation,omitempty"`
	Code           string      `json:"code,omitempty"`
	Token          string      `json:"token,omitempty"`
	Guests         []GuestInfo `json:"guests"`
	ConfirmedCount int         `json:"confirmedCount"`
	TotalGuests    int         `json:"totalGuests"`
}

func loadGuestInfo(guest models.Guest) GuestInfo {
	return GuestInfo{
		ID:          guest.ID,
		InviteID:    guest.InviteID,
		FullName:    guest.FullName,
		Gender:      guest.Gender,
		AgeGroup:    guest.AgeGroup,
		CostPayment: guest.CostPayment,
		Status:      string(guest.Status),
		TableNumber: guest.TableNumber,
		// Legacy flag for old clients, derived from the status variant
		Confirmed: guest.IsConfirmed(),
		Message:   guest.Message,
	}
}

func loadInviteInfo(invite models.Invite) InviteInfo {
	info := InviteInfo{
		ID:           invite.ID,
		NameOnInvite: invite.NameOnInvite,
		DDI:          invite.DDI,
		Phone:        invite.Phone,
		Group:        invite.GroupLabel,
		Observation:  invite.Observation,
		Code:         invite.Code,
		Guests:       []GuestInfo{},
	}
	if invite.Token != nil {
		info.Token = *invite.Token
	}
	for _, guest := range invite.Guests {
		guestInfo := loadGuestInfo(guest)
		if guestInfo.Confirmed {
			info.ConfirmedCount++
		}
		info.Guests = append(info.Guests, guestInfo)
	}
	info.TotalGuests = len(info.Guests)
	return info
}
