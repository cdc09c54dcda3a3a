// Package billing provides HTTP handlers for the payment provider surface.
// Only the billing portal session is exposed; webhooks and checkout are out
// of scope.
package billing

import (
	"CampusConnect-backend/internal/database"
	"CampusConnect-backend/internal/model"
	"CampusConnect-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	// Load env
	_ "github.com/joho/godotenv/autoload"
	"github.com/stripe/stripe-go/v78"
	portalsession "github.com/stripe/stripe-go/v78/billingportal/session"
	"gorm.io/gorm"
)

func init() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

// BillingController handles billing endpoints
type BillingController struct {
	DB *database.DBinstanceStruct
}

// NewBillingController creates a new instance of BillingController
func NewBillingController(db *database.DBinstanceStruct) *BillingController {
	return &BillingController{
		DB: db,
	}
}

// CreatePortalSession creates a Stripe billing portal session for the caller.
// @Summary Create a billing portal session
// @Description Requires an existing billing customer reference on the caller's profile
// @Tags Billing
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]string "Portal session URL"
// @Failure 400 {object} utilities.ErrorResponse "No billing customer on the profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile"
// @Failure 500 {object} utilities.ErrorResponse "Stripe or database error"
// @Router /stripe/create-portal-session [post]
func (bc *BillingController) CreatePortalSession(c *gin.Context) {
	user := utilities.ExtractUser(c)
	if c.IsAborted() {
		return
	}

	var profile model.Profile
	err := bc.DB.Where("user_id = ?", user.ID).First(&profile).Error
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

	if profile.StripeCustomerID == nil || *profile.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "No Stripe customer found",
		})
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*profile.StripeCustomerID),
		ReturnURL: stripe.String(origin + "/billing"),
	}

	session, err := portalsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create portal session: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
