package job

import (
	"CampusConnect-backend/internal/auth"
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/middleware"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/testutil"
	"context"
	"net/http"
	"os"
	"strconv"
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

func jobRouter() *gin.Engine {
	jc := NewJobController(testDB)
	r := gin.Default()
	jobRoute := r.Group("/jobs")
	jobRoute.Use(middleware.RequireAuth(testDB))
	jobRoute.POST("", jc.CreateJobHandler)
	jobRoute.GET("", jc.GetJobs)
	jobRoute.GET("/mine", jc.GetMyJobs)
	jobRoute.GET("/:id", jc.GetJobByID)
	jobRoute.PATCH("/:id", jc.EditJob)
	return r
}

func jobTitles(resp []interface{}) []string {
	titles := []string{}
	for _, raw := range resp {
		job := raw.(map[string]interface{})
		titles = append(titles, job["title"].(string))
	}
	return titles
}

func TestCreateJob_AsFinder(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":       "TA for Intro to Databases",
		"type":        model.JobTypePartTime,
		"description": "Grade assignments and hold office hours",
		"tags":        []string{"teaching", "databases"},
	}, finderToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.JobStatusPending, resp["status"])
	assert.Equal(t, true, resp["is_published"])
	assert.Equal(t, "TA for Intro to Databases", resp["title"])
}

func TestCreateJob_Draft(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":    "Draft posting",
		"type":     model.JobTypeStartupCollaboration,
		"is_draft": true,
	}, finderToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, false, resp["is_published"])
}

func TestCreateJob_AsSeeker(t *testing.T) {
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title": "Should not work",
		"type":  model.JobTypePartTime,
	}, seekerToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateJob_InvalidType(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title": "Bad type",
		"type":  "FULL_TIME",
	}, finderToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJob_MissingTitle(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"type": model.JobTypePartTime,
	}, finderToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJob_UnknownField(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title":  "Strict body",
		"type":   model.JobTypePartTime,
		"salary": 100000,
	}, finderToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJob_Unauthenticated(t *testing.T) {
	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Nope"}, "", r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func makeListRequest(t *testing.T, endpoint string) []interface{} {
	t.Helper()
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	req, _ := http.NewRequest(http.MethodGet, endpoint, nil)
	req.Header.Set("Authorization", "Bearer "+seekerToken)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []interface{}
	assert.NoError(t, testutil.DecodeJSON(rec, &resp))
	return resp
}

func TestGetJobs_OnlyVisible(t *testing.T) {
	resp := makeListRequest(t, "/jobs")
	titles := jobTitles(resp)

	assert.Contains(t, titles, database.TestJobApproved.Title)
	assert.NotContains(t, titles, database.TestJobPending.Title)
	assert.NotContains(t, titles, database.TestJobFilled.Title)
	assert.NotContains(t, titles, database.TestJobDraft.Title)
}

func TestGetJobs_SearchFilter(t *testing.T) {
	resp := makeListRequest(t, "/jobs?search=campus")
	titles := jobTitles(resp)
	assert.Contains(t, titles, database.TestJobApproved.Title)

	resp = makeListRequest(t, "/jobs?search=zzz-no-such-job")
	assert.Empty(t, resp)
}

func TestGetJobs_TypeFilter(t *testing.T) {
	resp := makeListRequest(t, "/jobs?type="+model.JobTypeCompetitionHackathon)
	for _, raw := range resp {
		job := raw.(map[string]interface{})
		assert.Equal(t, model.JobTypeCompetitionHackathon, job["type"])
	}
}

func TestGetJobs_TagFilter(t *testing.T) {
	resp := makeListRequest(t, "/jobs?tag=BACKEND")
	titles := jobTitles(resp)
	assert.Contains(t, titles, database.TestJobApproved.Title)
}

func TestGetJobs_CreatorSummaryAttached(t *testing.T) {
	resp := makeListRequest(t, "/jobs?search=campus")
	if assert.NotEmpty(t, resp) {
		job := resp[0].(map[string]interface{})
		createdBy, ok := job["created_by"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, database.TestFinder1.FullName, createdBy["full_name"])
	}
}

func TestGetJobByID_Visible(t *testing.T) {
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(nil, seekerToken, r,
		"/jobs/"+strconv.Itoa(int(database.TestJobApproved.ID)), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestJobApproved.Title, resp["title"])
}

func TestGetJobByID_PendingHiddenFromOthers(t *testing.T) {
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(nil, seekerToken, r,
		"/jobs/"+strconv.Itoa(int(database.TestJobPending.ID)), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobByID_PendingVisibleToOwner(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(nil, finderToken, r,
		"/jobs/"+strconv.Itoa(int(database.TestJobPending.ID)), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestJobPending.Title, resp["title"])
}

func TestGetJobByID_NotFound(t *testing.T) {
	seekerToken, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(nil, seekerToken, r, "/jobs/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyJobs(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	req, _ := http.NewRequest(http.MethodGet, "/jobs/mine", nil)
	req.Header.Set("Authorization", "Bearer "+finderToken)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []interface{}
	assert.NoError(t, testutil.DecodeJSON(rec, &resp))
	titles := jobTitles(resp)
	// Own jobs come back regardless of status or publish state.
	assert.Contains(t, titles, database.TestJobFilled.Title)
	assert.Contains(t, titles, database.TestJobDraft.Title)
	assert.NotContains(t, titles, database.TestJobApproved.Title)
}

func TestEditJob_Owner(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder2.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"description":  "Now with a proper pitch deck.",
		"is_published": true,
	}, finderToken, r, "/jobs/"+strconv.Itoa(int(database.TestJobDraft.ID)), http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Now with a proper pitch deck.", resp["description"])
	assert.Equal(t, true, resp["is_published"])
	// Untouched fields survive the partial update.
	assert.Equal(t, database.TestJobDraft.Title, resp["title"])
}

func TestEditJob_MarkFilled(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"is_filled": true,
	}, finderToken, r, "/jobs/"+strconv.Itoa(int(database.TestJobPending.ID)), http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["is_filled"])

	rec2, resp2 := testutil.MakeJSONRequest(gin.H{
		"is_filled": false,
	}, finderToken, r, "/jobs/"+strconv.Itoa(int(database.TestJobPending.ID)), http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, false, resp2["is_filled"])
}

func TestEditJob_NotOwner(t *testing.T) {
	finderToken, err := auth.GetAccessToken(t, testDB, database.TestUserFinder1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title": "Hijacked",
	}, finderToken, r, "/jobs/"+strconv.Itoa(int(database.TestJobDraft.ID)), http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
