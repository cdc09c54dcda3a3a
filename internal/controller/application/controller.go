// Package application provides HTTP handlers for job application operations.
package application

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ApplicationController handles job application endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type applyInfo struct {
	Message      string `json:"message"`
	ResumeURL    string `json:"resume_url"`
	ResumeFileID *int   `json:"resume_file_id"`
}

// errHandled marks transaction errors whose response was already written.
var errHandled = errors.New("handled")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ApplyHandler creates an application for the given job.
// The precondition checks, the insert, the counter increment and the owner
// notification run in a single transaction; the composite unique index on
// (job_id, applicant_id) stays the final guard against a double submit.
// @Summary Apply to a job
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of job to apply to"
// @Param Application body applyInfo true "Application message and resume reference"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Own job, unpublished, filled, or already applied"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile or job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	var info applyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var application model.Application

	txErr := ac.DB.Transaction(func(tx *gorm.DB) error {
		var profile model.Profile
		if err := tx.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
				return errHandled
			}
			return err
		}

		var job model.Job
		if err := tx.Where("id = ?", jobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
				return errHandled
			}
			return err
		}

		if job.CreatedByID == profile.ID {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You cannot apply to your own job posting",
			})
			return errHandled
		}

		if !job.IsPublished {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "This job is not published yet",
			})
			return errHandled
		}

		if job.IsFilled {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "This position has been filled",
			})
			return errHandled
		}

		var existing model.Application
		err := tx.Where("job_id = ? AND applicant_id = ?", job.ID, profile.ID).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already applied to this job",
			})
			return errHandled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		application = model.Application{
			JobID:        job.ID,
			ApplicantID:  profile.ID,
			Status:       model.ApplicationStatusPending,
			Message:      info.Message,
			ResumeURL:    info.ResumeURL,
			ResumeFileID: info.ResumeFileID,
		}
		if err := tx.Create(&application).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Job{}).Where("id = ?", job.ID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error; err != nil {
			return err
		}

		notification := model.Notification{
			UserID:  job.CreatedByID,
			Type:    model.NotificationNewApplication,
			Content: fmt.Sprintf("%s applied to your job \"%s\".", profile.FullName, job.Title),
		}
		return tx.Create(&notification).Error
	})

	switch {
	case txErr == nil:
		c.JSON(http.StatusCreated, application)

	case errors.Is(txErr, errHandled):
		// Response already written

	case isUniqueViolation(txErr):
		// Lost the race against a concurrent submit; the unique index is the
		// source of truth for duplicate detection.
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this job",
		})

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", txErr.Error()),
		})
	}
}

// CheckApplicationHandler reports whether the caller already applied to the job.
// @Summary Check if the caller has applied to a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "Job ID"
// @Success 200 {object} map[string]interface{} "has_applied flag with the application when present"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/apply [get]
func (ac *ApplicationController) CheckApplicationHandler(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	var profile model.Profile
	err = ac.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"has_applied": false, "application": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	var application model.Application
	err = ac.DB.Where("job_id = ? AND applicant_id = ?", jobID, profile.ID).
		First(&application).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusOK, gin.H{"has_applied": false, "application": nil})

	case err == nil:
		c.JSON(http.StatusOK, gin.H{"has_applied": true, "application": application})

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
	}
}
