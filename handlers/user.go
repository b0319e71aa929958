package handlers

import (
	"net/http"
	"server/auth"
	"server/models"

	"github.com/gin-gonic/gin"
)

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, success := models.UserLogin(postReq.Email, postReq.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(user.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "email": user.Email})
}

func UserLogout(c *gin.Context) {
	session := auth.LoadSession(c)
	session.LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserStatus(c *gin.Context) {
	session := auth.LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "email": user.Email})
}

// UserCreate registers an admin account. The very first account can be
// created without a session (bootstrap); after that a valid session is
// required.
func UserCreate(c *gin.Context) {
	if models.UserCount() > 0 {
		session := auth.LoadSession(c)
		if session.User().ID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}
	}
	postReq := UserCreateRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if models.UserExists(postReq.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}
	user, err := models.UserCreate(postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"error": "", "id": user.ID, "email": user.Email})
}
