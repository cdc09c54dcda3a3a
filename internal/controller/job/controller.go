// Package job provides HTTP handlers for job posting related operations.
package job

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

type createJobInfo struct {
	model.EditableJobInfo
	IsDraft bool `json:"is_draft"`
}

// findProfile loads the caller's profile, writing the error response itself.
func (jc *JobController) findProfile(c *gin.Context, userID uuid.UUID) (model.Profile, bool) {
	var profile model.Profile
	err := jc.DB.Where("user_id = ?", userID.String()).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
		return profile, false

	case err == nil:
		return profile, true

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return profile, false
	}
}

// CreateJobHandler handles the creation of a new job by a finder profile.
// @Summary Create job based on given json structure
// @Description Only profiles with the FINDER role can post jobs. New jobs start PENDING review.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body createJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct or unknown job type"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a finder profile"
// @Failure 404 {object} utilities.ErrorResponse "No profile"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {

	// Get user
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	profile, ok := jc.findProfile(c, user.ID)
	if !ok {
		return
	}
	if profile.Role != model.RoleFinder {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only finder profiles can create jobs",
		})
		return
	}

	// construct job from request
	var info createJobInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Title is required"})
		return
	}

	job := model.Job{
		CreatedByID:     profile.ID,
		EditableJobInfo: info.EditableJobInfo,
		Status:          model.JobStatusPending,
		IsPublished:     !info.IsDraft,
	}
	if err := job.ValidateType(); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// save job
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	// response
	c.JSON(http.StatusCreated, job)
}

// GetJobs fetches approved, published and unfilled jobs matching the query.
// @Summary Get open jobs based on query
// @Description Filtering happens server side; results are newest first
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Substring match on title or description, case insensitive"
// @Param type query string false "Exact job type"
// @Param tag query string false "Tags field contains tag, case insensitive"
// @Param limit query integer false "Page size, default 20, max 100"
// @Param offset query integer false "Page offset"
// @Success 200 {array} model.JobResponse "Return open job(s)"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {

	rawSearch := c.Query("search")
	rawType := c.Query("type")
	rawTag := c.Query("tag")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var rawJobs []model.Job

	result := jc.DB.Preload("CreatedBy").
		Where("status = ?", model.JobStatusApproved).
		Where("is_published = ?", true).
		Where("is_filled = ?", false)

	if rawSearch != "" {
		result = result.Where("title ILIKE ? OR description ILIKE ?", "%"+rawSearch+"%", "%"+rawSearch+"%")
	}

	if rawType != "" {
		result = result.Where("type = ?", rawType)
	}

	if rawTag != "" {
		result = result.Where("? ILIKE ANY(tags)", rawTag)
	}

	result = result.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rawJobs)

	if err := result.Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch jobs: ", err.Error()),
		})
		return
	}

	jobs := []model.JobResponse{}
	for i := range rawJobs {
		jobs = append(jobs, rawJobs[i].ToResponse())
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a job by its ID from the database.
// Unapproved or unpublished jobs are only visible to their owner.
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.JobResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	var job model.Job
	err = jc.DB.Preload("CreatedBy").Where("id = ?", id).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	visible := job.Status == model.JobStatusApproved && job.IsPublished
	if !visible && job.CreatedBy.UserID != user.ID {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job.ToResponse())
}

// GetMyJobs fetches every job created by the caller regardless of status.
// @Summary Get the caller's jobs
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/mine [get]
func (jc *JobController) GetMyJobs(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	profile, ok := jc.findProfile(c, user.ID)
	if !ok {
		return
	}

	var jobs []model.Job
	if err := jc.DB.Where("created_by_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

type editJobInfo struct {
	model.EditableJobInfo
	IsPublished *bool `json:"is_published"`
	IsFilled    *bool `json:"is_filled"`
}

// EditJob applies a partial update to a job owned by the caller.
// @Summary Edit a job owned by the caller
// @Description Only non-empty editable fields are applied; publish and filled flags are set explicitly
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of job to edit"
// @Param Job body editJobInfo true "Fields to update"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job ID or body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) EditJob(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	profile, ok := jc.findProfile(c, user.ID)
	if !ok {
		return
	}

	var job model.Job
	err = jc.DB.Where("id = ?", id).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if job.CreatedByID != profile.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only edit your own jobs",
		})
		return
	}

	var info editJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&job.EditableJobInfo, &info.EditableJobInfo)
	if err := job.ValidateType(); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	if info.IsPublished != nil {
		job.IsPublished = *info.IsPublished
	}
	if info.IsFilled != nil {
		job.IsFilled = *info.IsFilled
	}

	if err := jc.DB.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}
