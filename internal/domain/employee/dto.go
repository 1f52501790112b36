package employee

import (
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/civiltime"
	"github.com/cmlabs-hris/dtr-payroll-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	MiddleName string  `json:"middle_name"`
	LastName   string  `json:"last_name"`
	Birthday   string  `json:"birthday"`   // YYYY-MM-DD
	HiredDate  *string `json:"hired_date"` // YYYY-MM-DD
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Branch     string  `json:"branch"`
	Position   string  `json:"position"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.ID) {
		errs.Add("id", "id must be 1-32 characters of letters, digits, '_' or '-'")
	}
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	}
	if !validator.IsValidDate(r.Birthday) {
		errs.Add("birthday", "birthday must be in YYYY-MM-DD format")
	}
	if r.HiredDate != nil && *r.HiredDate != "" && !validator.IsValidDate(*r.HiredDate) {
		errs.Add("hired_date", "hired_date must be in YYYY-MM-DD format")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email is invalid")
	}
	if validator.IsEmpty(r.Branch) {
		errs.Add("branch", "branch is required")
	}
	if validator.IsEmpty(r.Position) {
		errs.Add("position", "position is required")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Birthday   *string `json:"birthday,omitempty"`
	HiredDate  *string `json:"hired_date,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Branch     *string `json:"branch,omitempty"`
	Position   *string `json:"position,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name cannot be empty")
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs.Add("last_name", "last_name cannot be empty")
	}
	if r.Birthday != nil && !validator.IsValidDate(*r.Birthday) {
		errs.Add("birthday", "birthday must be in YYYY-MM-DD format")
	}
	if r.HiredDate != nil && !validator.IsValidDate(*r.HiredDate) {
		errs.Add("hired_date", "hired_date must be in YYYY-MM-DD format")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email is invalid")
	}
	if r.Branch != nil && validator.IsEmpty(*r.Branch) {
		errs.Add("branch", "branch cannot be empty")
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs.Add("position", "position cannot be empty")
	}

	return errs.Err()
}

type SetActiveRequest struct {
	ID       string `json:"-"`
	IsActive *bool  `json:"is_active"`
}

func (r *SetActiveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.IsActive == nil {
		errs.Add("is_active", "is_active is required")
	}
	return errs.Err()
}

type EmployeeFilter struct {
	Branch     *string
	ActiveOnly bool
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	MiddleName string  `json:"middle_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Birthday   string  `json:"birthday"`
	Age        int     `json:"age"`
	HiredDate  *string `json:"hired_date,omitempty"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Branch     string  `json:"branch"`
	Position   string  `json:"position"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	IsActive   bool    `json:"is_active"`
}

// ToResponse renders an employee with the age reached on the civil date asOf.
func ToResponse(e Employee, asOf time.Time) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		MiddleName: e.MiddleName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Birthday:   civiltime.FormatDate(e.Birthday),
		Age:        e.AgeOn(asOf),
		Phone:      e.Phone,
		Email:      e.Email,
		Branch:     e.Branch,
		Position:   e.Position,
		AvatarURL:  e.AvatarURL,
		IsActive:   e.IsActive,
	}
	if e.HiredDate != nil {
		hired := civiltime.FormatDate(*e.HiredDate)
		resp.HiredDate = &hired
	}
	return resp
}
