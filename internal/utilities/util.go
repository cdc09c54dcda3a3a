// Package utilities contain utility code that use across the package
package utilities

import (
	"CampusConnect-backend/internal/model"
	"log"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse type for error JSON bodies
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for message JSON bodies
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser will extract user model from gin context and abort with error message
func ExtractUser(c *gin.Context) model.User {
	u, _ := c.Get("user")
	if u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: "User information not provided",
		})
		return model.User{}
	}

	user, ok := u.(model.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to assert type",
		})
		return model.User{}
	}
	return user
}

// CreateAdmin creates an admin user with the given password, username and
// email in the provided database.
func CreateAdmin(password string, username string, email string, db *gorm.DB) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.User{
		Username: username,
		Email:    &email,
		Password: hashedPassword,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
