package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	instance, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	db.Instance = instance
	models.Init()
}

func publicRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/search-invite", SearchInvite)
	router.GET("/api/invite-by-token", InviteByToken)
	router.POST("/api/confirm-guests", ConfirmGuests)
	router.GET("/api/public-settings", PublicSettings)
	return router
}

func seedInvite(t *testing.T, name, phone string, guestNames ...string) (models.Invite, []models.Guest) {
	t.Helper()
	invite := models.Invite{NameOnInvite: name, Phone: phone}
	require.NoError(t, db.Instance.Create(&invite).Error)
	guests := make([]models.Guest, 0, len(guestNames))
	for _, guestName := range guestNames {
		guest := models.Guest{InviteID: invite.ID, FullName: guestName, Status: models.StatusPending}
		require.NoError(t, db.Instance.Create(&guest).Error)
		guests = append(guests, guest)
	}
	return invite, guests
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSearchInvite(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	seedInvite(t, "Família Silva", "11998765432", "Ana")
	seedInvite(t, "Amigos do Trabalho", "", "Bruno")

	recorder := postJSON(router, "/api/search-invite", gin.H{"searchTerm": "silva"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Invites []InviteInfo `json:"invites"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Invites, 1)
	require.Equal(t, "Família Silva", response.Invites[0].NameOnInvite)
	require.Len(t, response.Invites[0].Guests, 1)

	// Phone fragment also matches
	recorder = postJSON(router, "/api/search-invite", gin.H{"searchTerm": "99876"})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = postJSON(router, "/api/search-invite", gin.H{"searchTerm": "ninguém"})
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = postJSON(router, "/api/search-invite", gin.H{"searchTerm": "  "})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestInviteByToken(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	invite, _ := seedInvite(t, "Família Silva", "", "Ana", "Beto")
	require.NoError(t, invite.GenerateToken())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/invite-by-token?token="+*invite.Token, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Invite InviteInfo `json:"invite"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Equal(t, invite.ID, response.Invite.ID)
	require.Len(t, response.Invite.Guests, 2)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/invite-by-token?token=wrong", nil))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/invite-by-token", nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestConfirmGuests_LegacyShape(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	invite, guests := seedInvite(t, "Família Silva", "", "Ana", "Beto", "Caio")

	recorder := postJSON(router, "/api/confirm-guests", gin.H{
		"guestIds": []uint64{guests[1].ID},
		"message":  "chegamos cedo",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Confirmed int    `json:"confirmed"`
		Cancelled int    `json:"cancelled"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Equal(t, 1, response.Confirmed)
	require.Equal(t, 2, response.Cancelled)
	require.NotEmpty(t, response.Message)

	roster, err := models.GuestsOfInvite(invite.ID)
	require.NoError(t, err)
	for _, guest := range roster {
		if guest.ID == guests[1].ID {
			require.Equal(t, models.StatusConfirmed, guest.Status)
		} else {
			require.Equal(t, models.StatusCancelled, guest.Status)
		}
	}
}

func TestConfirmGuests_PerGuestShape(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	invite, guests := seedInvite(t, "Família Silva", "", "Ana", "Beto")

	recorder := postJSON(router, "/api/confirm-guests", gin.H{
		"inviteId": invite.ID,
		"message":  "só um de nós vai",
		"guests": []gin.H{
			{"id": guests[0].ID, "confirmed": true},
			{"id": guests[1].ID, "confirmed": false},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	declined, err := models.GuestByID(guests[1].ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, declined.Status)
	require.Equal(t, "só um de nós vai", declined.Message, "per-guest shape keeps the message on cancel")
}

func TestConfirmGuests_EmptySet(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	invite, _ := seedInvite(t, "Família Silva", "", "Ana", "Beto")

	// Without an invite id there is nothing to resolve the roster from
	recorder := postJSON(router, "/api/confirm-guests", gin.H{"guestIds": []uint64{}})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	// Naming the invite explicitly cancels the whole roster
	recorder = postJSON(router, "/api/confirm-guests", gin.H{"guestIds": []uint64{}, "inviteId": invite.ID})
	require.Equal(t, http.StatusOK, recorder.Code)
	roster, err := models.GuestsOfInvite(invite.ID)
	require.NoError(t, err)
	for _, guest := range roster {
		require.Equal(t, models.StatusCancelled, guest.Status)
	}
}

func TestConfirmGuests_UnknownGuest(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()

	recorder := postJSON(router, "/api/confirm-guests", gin.H{"guestIds": []uint64{424242}})
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestConfirmGuests_ThankYouFromSettings(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()
	_, guests := seedInvite(t, "Família Silva", "", "Ana")
	require.NoError(t, models.SettingSet(models.SettingThankYouMessage, "até breve!"))

	recorder := postJSON(router, "/api/confirm-guests", gin.H{"guestIds": []uint64{guests[0].ID}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "até breve!")
}

func TestPublicSettings(t *testing.T) {
	setupTestDB(t)
	router := publicRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/public-settings", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "null")

	require.NoError(t, models.SettingSet(models.SettingConfirmationDeadline, "2026-10-01"))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/public-settings", nil))
	require.Contains(t, recorder.Body.String(), "2026-10-01")
}
