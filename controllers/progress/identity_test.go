package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLearnerStudent(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "student@example.com")

	identity := ResolveLearner(LearnerIDForStudent(student.ID))
	assert.True(t, identity.IsStudent)
	assert.Equal(t, student.ID, identity.StudentID)
	assert.False(t, identity.IsCustomer)
}

func TestResolveLearnerCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "customer@example.com")

	identity := ResolveLearner(LearnerIDForCustomer(customer.ID))
	assert.True(t, identity.IsCustomer)
	assert.Equal(t, customer.ID, identity.CustomerID)
	assert.False(t, identity.IsStudent)
}

func TestResolveLearnerBothSpaces(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "dual@example.com")
	customer := seedCustomer(t, db, "dual-customer@example.com")

	// With one row in each table the ids collide; both spaces resolve
	if student.ID == customer.ID {
		identity := ResolveLearner(LearnerIDForStudent(student.ID))
		assert.True(t, identity.IsStudent)
		assert.True(t, identity.IsCustomer)
	}
}

func TestResolveLearnerUnknown(t *testing.T) {
	setupTestDB(t)

	for _, raw := range []string{"", "abc", "0", "9999"} {
		identity := ResolveLearner(raw)
		assert.False(t, identity.IsStudent, "id %q", raw)
		assert.False(t, identity.IsCustomer, "id %q", raw)
		assert.Equal(t, raw, identity.Raw)
	}
}
