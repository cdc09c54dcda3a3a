// Package admin provides HTTP handlers for the admin dashboard endpoints.
// Every route in here sits behind the admin allow-list middleware.
package admin

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController handles admin dashboard endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// StatusFilterAll is the wildcard value for the admin job listing filter
var StatusFilterAll = "ALL"

// GetJobs returns every job matching the status filter, joined with its
// creator summary, plus a per-status count breakdown.
// @Summary Get jobs for the admin dashboard
// @Description Only admin can access this endpoint. Filter ALL returns every job.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "One of ALL, PENDING, APPROVED, REJECTED, POSTED (ALL by default)"
// @Success 200 {object} map[string]interface{} "jobs, counts and current_filter"
// @Failure 400 {object} utilities.ErrorResponse "Unknown status filter"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not on the admin allow-list"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/jobs [get]
func (ac *AdminController) GetJobs(c *gin.Context) {
	statusFilter := strings.ToUpper(c.DefaultQuery("status", StatusFilterAll))

	if statusFilter != StatusFilterAll && !utilities.Contains(model.JobStatuses, statusFilter) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status: %s", statusFilter),
		})
		return
	}

	result := ac.DB.Preload("CreatedBy").Order("created_at DESC")
	if statusFilter != StatusFilterAll {
		result = result.Where("status = ?", statusFilter)
	}

	var rawJobs []model.Job
	if err := result.Find(&rawJobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	jobs := []model.JobResponse{}
	for i := range rawJobs {
		jobs = append(jobs, rawJobs[i].ToResponse())
	}

	counts := map[string]int64{StatusFilterAll: 0}
	for _, status := range model.JobStatuses {
		counts[status] = 0
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statusCounts []statusCount
	if err := ac.DB.Model(&model.Job{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}
	for _, sc := range statusCounts {
		counts[sc.Status] = sc.Count
		counts[StatusFilterAll] += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":           jobs,
		"counts":         counts,
		"current_filter": statusFilter,
	})
}

type decideJobInfo struct {
	Action          string `json:"action"`
	RejectionReason string `json:"rejection_reason"`
}

// DecideJob approves or rejects a job and notifies its creator in the same
// transaction. Re-deciding an already decided job is accepted, last write
// wins.
// @Summary Approve or reject a job
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Job ID"
// @Param Decision body decideJobInfo true "action must be approve or reject; rejection_reason is optional"
// @Success 200 {object} map[string]interface{} "success flag, updated job and message"
// @Failure 400 {object} utilities.ErrorResponse "Invalid action"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/jobs/{id}/approve [post]
func (ac *AdminController) DecideJob(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	var info decideJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Action != "approve" && info.Action != "reject" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: `Invalid action. Must be "approve" or "reject"`,
		})
		return
	}

	// The approver reference is the admin's profile when one exists,
	// otherwise the raw user id.
	approverID := user.ID
	var adminProfile model.Profile
	if err := ac.DB.Where("user_id = ?", user.ID).First(&adminProfile).Error; err == nil {
		approverID = adminProfile.ID
	}

	var job model.Job
	err = ac.DB.Where("id = ?", jobID).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "Job not found",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	var notification model.Notification
	if info.Action == "approve" {
		job.Approve(approverID)
		notification = model.Notification{
			UserID:  job.CreatedByID,
			Type:    model.NotificationJobApproved,
			Content: fmt.Sprintf("Your job \"%s\" has been approved and is now visible to seekers!", job.Title),
		}
	} else {
		job.Reject(info.RejectionReason)
		reason := info.RejectionReason
		if reason == "" {
			reason = "Please review and resubmit."
		}
		notification = model.Notification{
			UserID:  job.CreatedByID,
			Type:    model.NotificationJobRejected,
			Content: fmt.Sprintf("Your job \"%s\" was not approved. %s", job.Title, reason),
		}
	}

	// Decision and notification commit or roll back together.
	txErr := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&job).Error; err != nil {
			return err
		}
		return tx.Create(&notification).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job status: %s", txErr.Error()),
		})
		return
	}

	message := "Job approved successfully"
	if info.Action == "reject" {
		message = "Job rejected successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job":     job,
		"message": message,
	})
}

// userWithStats is the admin users listing row
type userWithStats struct {
	model.Profile
	Stats struct {
		TotalJobs          int64 `json:"total_jobs"`
		TotalApplications  int64 `json:"total_applications"`
		TotalNotifications int64 `json:"total_notifications"`
	} `json:"stats"`
}

// GetUsers returns every profile with its aggregated activity counts.
// @Summary Get users for the admin dashboard
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{} "users with per-profile stats"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not on the admin allow-list"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	var profiles []model.Profile
	if err := ac.DB.Order("created_at DESC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	users := make([]userWithStats, 0, len(profiles))
	for _, p := range profiles {
		row := userWithStats{Profile: p}

		if err := ac.DB.Model(&model.Job{}).
			Where("created_by_id = ?", p.ID).
			Count(&row.Stats.TotalJobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Database error: %s", err.Error()),
			})
			return
		}
		if err := ac.DB.Model(&model.Application{}).
			Where("applicant_id = ?", p.ID).
			Count(&row.Stats.TotalApplications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Database error: %s", err.Error()),
			})
			return
		}
		if err := ac.DB.Model(&model.Notification{}).
			Where("user_id = ?", p.ID).
			Count(&row.Stats.TotalNotifications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Database error: %s", err.Error()),
			})
			return
		}

		users = append(users, row)
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
