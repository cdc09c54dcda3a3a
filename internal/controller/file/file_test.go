package file

import (
	"CampusConnect-backend/internal/auth"
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/middleware"
	"CampusConnect-backend/internal/testutil"
	"bytes"
	"context"
	"mime/multipart"
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

func fileRouter(maxSize int64) *gin.Engine {
	fc := NewFileController(testDB)
	r := gin.Default()
	fileRoute := r.Group("/file")
	fileRoute.Use(middleware.RequireAuth(testDB))
	fileRoute.POST("/resume", middleware.SizeLimit(maxSize), fc.UploadResume)
	fileRoute.GET("/:id", fc.GetFile)
	return r
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadFile(t *testing.T, r *gin.Engine, token, filename string, content []byte) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content)
	req, _ := http.NewRequest(http.MethodPost, "/file/resume", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := testutil.ServeRaw(r, req)
	var resp map[string]interface{}
	_ = testutil.DecodeJSON(rec, &resp)
	return rec.Result(), resp
}

func TestUploadResume(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := fileRouter(5 << 20)
	content := []byte("%PDF-1.4 fake resume body")
	res, resp := uploadFile(t, r, token, "resume.pdf", content)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	id := int(resp["id"].(float64))
	assert.Greater(t, id, 0)

	// Round trip: the stored bytes come back with the pdf content type.
	req, _ := http.NewRequest(http.MethodGet, "/file/"+strconv.Itoa(id), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestUploadResume_WrongExtension(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := fileRouter(5 << 20)
	res, _ := uploadFile(t, r, token, "resume.docx", []byte("not a pdf"))
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}

func TestUploadResume_TooLarge(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	// A 1 KiB cap makes the limiter trip without a 5 MB fixture.
	r := fileRouter(1 << 10)
	res, _ := uploadFile(t, r, token, "resume.pdf", bytes.Repeat([]byte("a"), 1<<11))
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestGetFile_NotFound(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := fileRouter(5 << 20)
	req, _ := http.NewRequest(http.MethodGet, "/file/999999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFile_InvalidID(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserSeeker1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	r := fileRouter(5 << 20)
	req, _ := http.NewRequest(http.MethodGet, "/file/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := testutil.ServeRaw(r, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
