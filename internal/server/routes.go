package server

import (
	"CampusConnect-backend/internal/auth"
	"CampusConnect-backend/internal/controller/admin"
	"CampusConnect-backend/internal/controller/application"
	"CampusConnect-backend/internal/controller/billing"
	"CampusConnect-backend/internal/controller/file"
	"CampusConnect-backend/internal/controller/job"
	"CampusConnect-backend/internal/controller/notification"
	"CampusConnect-backend/internal/controller/profile"
	"CampusConnect-backend/internal/middleware"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)

	adminAllowList := middleware.AdminAllowListFromEnv()

	profileController := profile.NewProfileController(s.DB)
	jobController := job.NewJobController(s.DB)
	applicationController := application.NewApplicationController(s.DB)
	adminController := admin.NewAdminController(s.DB)
	notificationController := notification.NewNotificationController(s.DB)
	billingController := billing.NewBillingController(s.DB)
	fileController := file.NewFileController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			profileRoute := needAuth.Group("/profile")
			{
				profileRoute.POST("", profileController.CreateProfile)
				profileRoute.GET("me", profileController.GetMyProfile)
				profileRoute.PATCH("", profileController.EditProfile)
				profileRoute.GET(":id", profileController.GetProfileByID)
			}

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.POST("", jobController.CreateJobHandler)
				jobRoute.GET("", jobController.GetJobs)
				jobRoute.GET("mine", jobController.GetMyJobs)
				jobRoute.GET(":id", jobController.GetJobByID)
				jobRoute.PATCH(":id", jobController.EditJob)

				jobRoute.POST(":id/apply", applicationController.ApplyHandler)
				jobRoute.GET(":id/apply", applicationController.CheckApplicationHandler)
			}

			needAuth.GET("/notifications", notificationController.GetMyNotifications)

			fileRoute := needAuth.Group("/file")
			{
				fileRoute.POST("resume", middleware.SizeLimit(5<<20), fileController.UploadResume)
				fileRoute.GET(":id", fileController.GetFile)
			}

			needAuth.POST("/stripe/create-portal-session", billingController.CreatePortalSession)

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckAdmin(adminAllowList))
				needAdmin.GET("jobs", adminController.GetJobs)
				needAdmin.POST("jobs/:id/approve", adminController.DecideJob)
				needAdmin.GET("users", adminController.GetUsers)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	if s.Email.Enabled() {
		stats["email"] = "configured"
	} else {
		stats["email"] = "disabled"
	}
	c.JSON(http.StatusOK, stats)
}
