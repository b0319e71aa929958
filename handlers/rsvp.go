package handlers

import (
	"errors"
	"net/http"
	"strings"

	"server/models"

	"github.com/gin-gonic/gin"
)

const defaultThankYouMessage = "Obrigado pela confirmação! Sua presença é muito importante para nós. 💕"

type SearchInviteRequest struct {
	SearchTerm string `json:"searchTerm" binding:"required"`
}

// SearchInvite is the public invite lookup by name or phone fragment
func SearchInvite(c *gin.Context) {
	postReq := SearchInviteRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "termo de busca é obrigatório"})
		return
	}
	term := strings.TrimSpace(postReq.SearchTerm)
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "termo de busca é obrigatório"})
		return
	}
	invites, err := models.InviteSearch(term, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if len(invites) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "convite não encontrado"})
		return
	}
	result := []InviteInfo{}
	for _, invite := range invites {
		result = append(result, loadInviteInfo(invite))
	}
	c.JSON(http.StatusOK, gin.H{"invites": result})
}

// InviteByToken resolves an invite from its unique access token, the
// passwordless credential printed on the invitation link
func InviteByToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token é obrigatório"})
		return
	}
	invite, err := models.InviteByToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "convite não encontrado ou token inválido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite": loadInviteInfo(invite)})
}

type GuestDecision struct {
	ID        uint64 `json:"id" binding:"required"`
	Confirmed bool   `json:"confirmed"`
}

// ConfirmGuestsRequest accepts both submission shapes: the original
// attending-id list and the newer per-guest decision list
type ConfirmGuestsRequest struct {
	GuestIDs []uint64        `json:"guestIds"`
	Guests   []GuestDecision `json:"guests"`
	Message  string          `json:"message"`
	InviteID uint64          `json:"inviteId"`
}

// ConfirmGuests applies an RSVP submission over the invite's whole roster
func ConfirmGuests(c *gin.Context) {
	postReq := ConfirmGuestsRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attending := map[uint64]bool{}
	perGuest := len(postReq.Guests) > 0
	var firstGuestID uint64
	if perGuest {
		firstGuestID = postReq.Guests[0].ID
		for _, decision := range postReq.Guests {
			if decision.Confirmed {
				attending[decision.ID] = true
			}
		}
	} else {
		if len(postReq.GuestIDs) > 0 {
			firstGuestID = postReq.GuestIDs[0]
		}
		for _, id := range postReq.GuestIDs {
			attending[id] = true
		}
	}

	inviteID := postReq.InviteID
	if inviteID == 0 {
		if firstGuestID == 0 {
			// Empty submissions are valid (they cancel the whole roster)
			// but then the invite has to be named explicitly
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids dos convidados são obrigatórios"})
			return
		}
		var err error
		inviteID, err = models.ResolveInviteFromGuest(firstGuestID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "convite não encontrado"})
			return
		}
	}

	result, err := models.ReconcileRSVP(inviteID, attending, strings.TrimSpace(postReq.Message), perGuest)
	if err != nil {
		if errors.Is(err, models.ErrInviteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "convite não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	thankYou, ok := models.SettingGet(models.SettingThankYouMessage)
	if !ok || thankYou == "" {
		thankYou = defaultThankYouMessage
	}
	c.JSON(http.StatusOK, gin.H{
		"error":     "",
		"confirmed": result.Confirmed,
		"cancelled": result.Cancelled,
		"message":   thankYou,
	})
}
