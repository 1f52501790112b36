package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID         string
	FirstName  string
	MiddleName string
	LastName   string
	Birthday   time.Time // civil date, midnight UTC
	HiredDate  *time.Time
	Phone      string
	Email      string
	Branch     string
	Position   string
	AvatarURL  *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// AgeOn returns completed years of age on the civil date asOf.
func (e Employee) AgeOn(asOf time.Time) int {
	age := asOf.Year() - e.Birthday.Year()
	if asOf.Month() < e.Birthday.Month() ||
		(asOf.Month() == e.Birthday.Month() && asOf.Day() < e.Birthday.Day()) {
		age--
	}
	return age
}
