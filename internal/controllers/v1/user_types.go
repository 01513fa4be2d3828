package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocketplan/backend/internal/models"
)

type UserEditable struct {
	Name     string `json:"name" example:"Morre"`                           // Name of the user
	Timezone string `json:"timezone" example:"Europe/Berlin" default:""` // IANA timezone the monthly boundaries are evaluated in
}

// model returns the database resource for the API representation of the editable fields
func (editable UserEditable) model() models.User {
	return models.User{
		Name:     editable.Name,
		Timezone: editable.Timezone,
	}
}

type UserLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/users/d3c4eccb-cbfd-4ea6-979b-b4e92bd130d6"` // The user itself
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`                                 // The budget collection endpoint
	Goals        string `json:"goals" example:"https://example.com/api/v1/goals"`                                     // The goal collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`                       // The transaction collection endpoint
}

// User is the API representation of a User.
type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

// newUser returns the API representation of the resource
func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:     model.Name,
			Timezone: model.Timezone,
		},
		Links: UserLinks{
			Self:         fmt.Sprintf("%s/v1/users/%s", url, model.ID),
			Budgets:      fmt.Sprintf("%s/v1/budgets", url),
			Goals:        fmt.Sprintf("%s/v1/goals", url),
			Transactions: fmt.Sprintf("%s/v1/transactions", url),
		},
	}
}

type UserListResponse struct {
	Data  []User  `json:"data"`                                                          // List of users
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []UserResponse `json:"data"`                                                          // List of created users
}

func (t *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	if status(err) > currentStatus {
		currentStatus = status(err)
	}

	return currentStatus
}

type UserResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this user
	Data  *User   `json:"data"`                                                          // The user data, if creation was successful
}
