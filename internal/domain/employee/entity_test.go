package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeOn(t *testing.T) {
	e := Employee{Birthday: civil(1990, time.June, 20)}

	assert.Equal(t, 33, e.AgeOn(civil(2024, time.June, 19)))
	assert.Equal(t, 34, e.AgeOn(civil(2024, time.June, 20)))
	assert.Equal(t, 34, e.AgeOn(civil(2024, time.December, 1)))
	assert.Equal(t, 33, e.AgeOn(civil(2024, time.January, 31)))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Juan Dela Cruz", Employee{FirstName: "Juan", MiddleName: "P.", LastName: "Dela Cruz"}.FullName())
	assert.Equal(t, "Juan", Employee{FirstName: "Juan"}.FullName())
}

func TestToResponse(t *testing.T) {
	hired := civil(2020, time.January, 6)
	e := Employee{
		ID:        "EMP-7",
		FirstName: "Ana",
		LastName:  "Reyes",
		Birthday:  civil(2000, time.March, 1),
		HiredDate: &hired,
		Branch:    "Solano",
		Position:  "Regular Staff",
		IsActive:  true,
	}
	resp := ToResponse(e, civil(2024, time.March, 1))

	assert.Equal(t, "Ana Reyes", resp.FullName)
	assert.Equal(t, "2000-03-01", resp.Birthday)
	assert.Equal(t, 24, resp.Age)
	if assert.NotNil(t, resp.HiredDate) {
		assert.Equal(t, "2020-01-06", *resp.HiredDate)
	}
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{
		ID:        "EMP-001",
		FirstName: "Ana",
		LastName:  "Reyes",
		Birthday:  "2000-03-01",
		Email:     "ana@example.com",
		Branch:    "Solano",
		Position:  "Regular Staff",
	}
	assert.NoError(t, req.Validate())

	req.ID = "EMP 001"
	req.Birthday = "03/01/2000"
	err := req.Validate()
	assert.ErrorContains(t, err, "id:")
	assert.ErrorContains(t, err, "birthday:")
}
