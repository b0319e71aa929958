package handlers

import (
	"fmt"
	"net/http"

	"server/models"

	"github.com/gin-gonic/gin"
)

func SettingsGet(c *gin.Context, user *models.User) {
	settings, err := models.SettingsMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type SettingSaveRequest struct {
	Key   string      `json:"key" binding:"required"`
	Value interface{} `json:"value"`
}

func SettingsSave(c *gin.Context, user *models.User) {
	postReq := SettingSaveRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil || postReq.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chave e valor são obrigatórios"})
		return
	}
	if err := models.SettingSet(postReq.Key, fmt.Sprint(postReq.Value)); err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PublicSettings exposes the settings the RSVP page needs without a session
func PublicSettings(c *gin.Context) {
	deadline, ok := models.SettingGet(models.SettingConfirmationDeadline)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"confirmationDeadline": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmationDeadline": deadline})
}
