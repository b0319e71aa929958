package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"server/db"
	"server/models"
	"server/utils"

	"github.com/gin-gonic/gin"
)

type GuestRequest struct {
	FullName    string `json:"fullName"`
	Gender      string `json:"gender"`
	AgeGroup    string `json:"ageGroup"`
	CostPayment string `json:"costPayment"`
	TableNumber int    `json:"tableNumber"`
}

type InviteSaveRequest struct {
	NameOnInvite string         `json:"nameOnInvite"`
	DDI          string         `json:"ddi"`
	Phone        string         `json:"phone"`
	Group        string         `json:"group"`
	Observation  string         `json:"observation"`
	Code         string         `json:"code"`
	Guests       []GuestRequest `json:"guests"`
}

type InviteStats struct {
	TotalInvites     int     `json:"totalInvites"`
	TotalGuests      int     `json:"totalGuests"`
	ConfirmedGuests  int     `json:"confirmedGuests"`
	ConfirmationRate float64 `json:"confirmationRate"`
}

// InviteList returns every invite with its guests, the distinct group
// labels for filtering, and the aggregate confirmation stats
func InviteList(c *gin.Context, user *models.User) {
	var invites []models.Invite
	if err := db.Instance.Preload("Guests").Order("name_on_invite").Find(&invites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []InviteInfo{}
	groups := map[string]bool{}
	stats := InviteStats{}
	for _, invite := range invites {
		info := loadInviteInfo(invite)
		result = append(result, info)
		if invite.GroupLabel != "" {
			groups[invite.GroupLabel] = true
		}
		stats.TotalInvites++
		stats.TotalGuests += info.TotalGuests
		stats.ConfirmedGuests += info.ConfirmedCount
	}
	if stats.TotalGuests > 0 {
		stats.ConfirmationRate = float64(stats.ConfirmedGuests) / float64(stats.TotalGuests) * 100
	}
	availableGroups := []string{}
	for group := range groups {
		availableGroups = append(availableGroups, group)
	}
	sort.Strings(availableGroups)
	c.JSON(http.StatusOK, gin.H{
		"invites":         result,
		"availableGroups": availableGroups,
		"stats":           stats,
	})
}

func validateInviteSaveRequest(postReq *InviteSaveRequest) string {
	if strings.TrimSpace(postReq.NameOnInvite) == "" {
		return "nome do convite é obrigatório"
	}
	if len(postReq.Guests) == 0 {
		return "pelo menos um convidado deve ser adicionado"
	}
	for _, guest := range postReq.Guests {
		if strings.TrimSpace(guest.FullName) == "" {
			return "nome completo é obrigatório para todos os convidados"
		}
	}
	return ""
}

func codeTaken(code string, exceptInviteID uint64) bool {
	var count int64
	db.Instance.Model(&models.Invite{}).
		Where("code = ? AND id != ?", code, exceptInviteID).
		Count(&count)
	return count > 0
}

func InviteCreate(c *gin.Context, user *models.User) {
	postReq := InviteSaveRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateInviteSaveRequest(&postReq); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	code := strings.TrimSpace(postReq.Code)
	if code != "" && codeTaken(code, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "já existe um convite com este código"})
		return
	}
	invite := models.Invite{
		NameOnInvite: strings.TrimSpace(postReq.NameOnInvite),
		DDI:          strings.TrimSpace(postReq.DDI),
		Phone:        utils.NormalizePhone(postReq.Phone),
		GroupLabel:   strings.TrimSpace(postReq.Group),
		Observation:  strings.TrimSpace(postReq.Observation),
		Code:         code,
	}
	if err := db.Instance.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err := insertGuests(invite.ID, postReq.Guests); err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	db.Instance.Preload("Guests").First(&invite, invite.ID)
	c.JSON(http.StatusCreated, gin.H{"error": "", "invite": loadInviteInfo(invite)})
}

// InviteSave updates an invite's own fields and replaces its guest list
// wholesale, same as a re-import would
func InviteSave(c *gin.Context, user *models.User) {
	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	invite, err := models.InviteByID(inviteID)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	postReq := InviteSaveRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateInviteSaveRequest(&postReq); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	code := strings.TrimSpace(postReq.Code)
	if code != "" && codeTaken(code, invite.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "já existe um convite com este código"})
		return
	}
	updates := map[string]interface{}{
		"name_on_invite": strings.TrimSpace(postReq.NameOnInvite),
		"ddi":            strings.TrimSpace(postReq.DDI),
		"phone":          utils.NormalizePhone(postReq.Phone),
		"group_label":    strings.TrimSpace(postReq.Group),
		"observation":    strings.TrimSpace(postReq.Observation),
		"code":           code,
	}
	if err := db.Instance.Model(&invite).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err := db.Instance.Where("invite_id = ?", invite.ID).Delete(&models.Guest{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	if err := insertGuests(invite.ID, postReq.Guests); err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	db.Instance.Preload("Guests").First(&invite, invite.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "invite": loadInviteInfo(invite)})
}

func insertGuests(inviteID uint64, guests []GuestRequest) error {
	for _, guestReq := range guests {
		guest := models.Guest{
			InviteID:    inviteID,
			FullName:    strings.TrimSpace(guestReq.FullName),
			Gender:      strings.TrimSpace(guestReq.Gender),
			AgeGroup:    strings.TrimSpace(guestReq.AgeGroup),
			CostPayment: strings.TrimSpace(guestReq.CostPayment),
			TableNumber: guestReq.TableNumber,
			Status:      models.StatusPending,
		}
		if err := db.Instance.Create(&guest).Error; err != nil {
			return err
		}
	}
	return nil
}

func InviteDelete(c *gin.Context, user *models.User) {
	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	invite, err := models.InviteByID(inviteID)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err := db.Instance.Where("invite_id = ?", invite.ID).Delete(&models.Guest{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err := db.Instance.Delete(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

type GenerateTokenRequest struct {
	InviteID uint64 `json:"inviteId" binding:"required"`
}

func InviteGenerateToken(c *gin.Context, user *models.User) {
	postReq := GenerateTokenRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invite, err := models.InviteByID(postReq.InviteID)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if err := invite.GenerateToken(); err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "token": *invite.Token})
}

type SendListEntry struct {
	ID           uint64 `json:"id"`
	NameOnInvite string `json:"nameOnInvite"`
	DDI          string `json:"ddi,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Token        string `json:"token,omitempty"`
	GuestCount   int64  `json:"guestCount"`
}

// InviteSendList returns the data the dashboard builds WhatsApp invite
// links from; nothing is sent server-side
func InviteSendList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.Table("invites").
		Select("invites.id, invites.name_on_invite, invites.ddi, invites.phone, invites.token, count(guests.id)").
		Joins("left join guests on guests.invite_id = invites.id").
		Group("invites.id, invites.name_on_invite, invites.ddi, invites.phone, invites.token").
		Order("invites.name_on_invite").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []SendListEntry{}
	for rows.Next() {
		entry := SendListEntry{}
		var token *string
		if err = rows.Scan(&entry.ID, &entry.NameOnInvite, &entry.DDI, &entry.Phone, &token, &entry.GuestCount); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		if token != nil {
			entry.Token = *token
		}
		result = append(result, entry)
	}
	c.JSON(http.StatusOK, gin.H{"invites": result})
}
