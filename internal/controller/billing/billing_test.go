package billing

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

func billingRouter() *gin.Engine {
	bc := NewBillingController(testDB)
	r := gin.Default()
	r.POST("/stripe/create-portal-session", middleware.RequireAuth(testDB), bc.CreatePortalSession)
	return r
}

func TestCreatePortalSession_NoCustomer(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := billingRouter()
	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/stripe/create-portal-session", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No Stripe customer found", resp["error"])
}

func TestCreatePortalSession_NoProfile(t *testing.T) {
	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	assert.NoError(t, err)
	user := model.User{Username: "billing_no_profile", Password: hashed}
	assert.NoError(t, testDB.Create(&user).Error)

	token, err := auth.GetAccessToken(t, testDB, user.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := billingRouter()
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/stripe/create-portal-session", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePortalSession_Unauthenticated(t *testing.T) {
	r := billingRouter()
	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/stripe/create-portal-session", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
