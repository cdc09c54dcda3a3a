package notification

import (
	"CampusConnect-backend/internal/auth"
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/middleware"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/testutil"
	"CampusConnect-backend/internal/utilities"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func notificationRouter() *gin.Engine {
	nc := NewNotificationController(testDB)
	r := gin.Default()
	r.GET("/notifications", middleware.RequireAuth(testDB), nc.GetMyNotifications)
	return r
}

func fetchNotifications(t *testing.T, token string) []interface{} {
	t.Helper()
	r := notificationRouter()
	req, _ := http.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []interface{}
	assert.NoError(t, testutil.DecodeJSON(rec, &resp))
	return resp
}

func TestGetMyNotifications(t *testing.T) {
	seeded := []model.Notification{
		{
			UserID:  database.TestFinder1.ID,
			Type:    model.NotificationJobApproved,
			Content: "Your job \"Backend Engineer for Campus App\" has been approved and is now visible to seekers!",
		},
		{
			UserID:  database.TestFinder1.ID,
			Type:    model.NotificationNewApplication,
			Content: "Dana Seeker applied to your job \"Backend Engineer for Campus App\".",
		},
	}
	assert.NoError(t, testDB.Create(&seeded).Error)

	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	resp := fetchNotifications(t, finderToken)
	assert.GreaterOrEqual(t, len(resp), 2)

	types := []string{}
	for _, raw := range resp {
		n := raw.(map[string]interface{})
		types = append(types, n["type"].(string))
	}
	assert.Contains(t, types, model.NotificationJobApproved)
	assert.Contains(t, types, model.NotificationNewApplication)
}

func TestGetMyNotifications_OnlyOwn(t *testing.T) {
	marker := model.Notification{
		UserID:  database.TestFinder2.ID,
		Type:    model.NotificationJobRejected,
		Content: "Your job \"Startup Co-founder Search\" was not approved. Please review and resubmit.",
	}
	assert.NoError(t, testDB.Create(&marker).Error)

	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	resp := fetchNotifications(t, seekerToken)
	for _, raw := range resp {
		n := raw.(map[string]interface{})
		assert.Equal(t, database.TestSeeker1.ID.String(), n["user_id"])
	}
}

func TestGetMyNotifications_Empty(t *testing.T) {
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	resp := fetchNotifications(t, seekerToken)
	assert.Empty(t, resp)
}

func TestGetMyNotifications_NoProfile(t *testing.T) {
	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	assert.NoError(t, err)
	user := model.User{Username: "no_profile_reader", Password: hashed}
	assert.NoError(t, testDB.Create(&user).Error)

	token, err := auth.GetAccessToken(t, testDB, user.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := notificationRouter()
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/notifications", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyNotifications_Unauthenticated(t *testing.T) {
	r := notificationRouter()
	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/notifications", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
