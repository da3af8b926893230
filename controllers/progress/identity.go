package controllers

import (
	"strconv"

	"lms/database"
	"lms/models"
)

// LearnerIdentity classifies a ledger learner id against the two identity
// spaces it can belong to. The ledger stores a bare string; certificates may
// only be issued to students, the purchase mirror only synced for customers.
type LearnerIdentity struct {
	Raw        string
	IsStudent  bool
	StudentID  uint
	IsCustomer bool
	CustomerID uint
}

// ResolveLearner looks a learner id up in both identity spaces. A numeric id
// can legitimately exist in both tables; callers pick the space they need.
// Non-numeric or unknown ids resolve to neither.
func ResolveLearner(learnerID string) LearnerIdentity {
	identity := LearnerIdentity{Raw: learnerID}

	id, err := strconv.ParseUint(learnerID, 10, 64)
	if err != nil || id == 0 {
		return identity
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", uint(id), false).First(&user).Error; err == nil {
		identity.IsStudent = true
		identity.StudentID = user.ID
	}

	var customer models.Customer
	if err := db.Where("id = ? AND is_deleted = ?", uint(id), false).First(&customer).Error; err == nil {
		identity.IsCustomer = true
		identity.CustomerID = customer.ID
	}

	return identity
}

// LearnerIDForStudent returns the ledger learner id for a student user id
func LearnerIDForStudent(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// LearnerIDForCustomer returns the ledger learner id for a customer id
func LearnerIDForCustomer(customerID uint) string {
	return strconv.FormatUint(uint64(customerID), 10)
}
