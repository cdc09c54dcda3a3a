// Package profile provides HTTP handlers for profile related operations.
package profile

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileController handles profile related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

type createProfileInfo struct {
	model.EditableProfileInfo
	Role string `json:"role"`
}

// CreateProfile handles onboarding: it creates the caller's profile.
// @Summary Create the caller's profile
// @Description A user can have at most one profile. Full name, at least one skill and one interest are required.
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body createProfileInfo true "Profile information"
// @Success 201 {object} model.Profile "Successfully created profile"
// @Failure 400 {object} utilities.ErrorResponse "Missing required field or invalid role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 409 {object} utilities.ErrorResponse "Profile already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile [post]
func (pc *ProfileController) CreateProfile(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	var info createProfileInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.FullName == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Full name is required"})
		return
	}
	if len(info.Skills) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Please add at least one skill"})
		return
	}
	if len(info.Interests) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Please add at least one interest"})
		return
	}

	role := info.Role
	if role == "" {
		role = model.RoleSeeker
	}
	if role != model.RoleSeeker && role != model.RoleFinder {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Role '%s' not allowed", info.Role),
		})
		return
	}

	var existing model.Profile
	err := pc.DB.Where("user_id = ?", user.ID).First(&existing).Error
	switch {
	case err == nil:
		c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "Profile already exists"})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	profile := model.Profile{
		UserID:              user.ID,
		Email:               email,
		Role:                role,
		EditableProfileInfo: info.EditableProfileInfo,
	}

	if err := pc.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create profile: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetMyProfile returns the caller's own profile.
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Profile
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	var profile model.Profile
	err := pc.DB.Where("user_id = ?", user.ID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// EditProfile applies a partial update to the caller's profile.
// @Summary Edit the caller's profile
// @Description Only non-empty fields of the request body are applied
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableProfileInfo true "Fields to update"
// @Success 200 {object} model.Profile
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile [patch]
func (pc *ProfileController) EditProfile(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	var info model.EditableProfileInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var profile model.Profile
	err := pc.DB.Where("user_id = ?", user.ID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&profile.EditableProfileInfo, &info)

	if err := pc.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfileByID returns the public card of any profile.
// @Summary Get a profile by ID
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Profile ID"
// @Success 200 {object} model.ProfileSummary
// @Failure 400 {object} utilities.ErrorResponse "Invalid profile ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/{id} [get]
func (pc *ProfileController) GetProfileByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid profile ID"})
		return
	}

	var profile model.Profile
	err = pc.DB.Where("id = ?", id).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile.Summary())
}
