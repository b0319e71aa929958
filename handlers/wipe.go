package handlers

import (
	"net/http"

	"server/config"
	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DeleteAllDataRequest struct {
	ConfirmText string `json:"confirmText"`
}

// DeleteAllData wipes every invite, guest and setting. Guarded by a
// literal confirmation phrase so a stray click cannot trigger it. Admin
// accounts survive the wipe.
func DeleteAllData(c *gin.Context, user *models.User) {
	postReq := DeleteAllDataRequest{}
	// An empty body counts as a missing confirmation, not a bad request
	_ = c.ShouldBindJSON(&postReq)
	if postReq.ConfirmText != config.WIPE_CONFIRM_TEXT {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texto de confirmação incorreto"})
		return
	}
	if err := db.Instance.Exec("DELETE FROM guests").Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err := db.Instance.Exec("DELETE FROM invites").Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err := db.Instance.Exec("DELETE FROM settings").Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	logrus.Warnf("All invite data wiped by %s", user.Email)
	c.JSON(http.StatusOK, OKResponse)
}
