package controllers

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePurchaseMirrors(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100)
	customer := seedCustomer(t, db, "buyer@example.com")
	learnerID := LearnerIDForCustomer(customer.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	// Simulate a mirror write that was lost: purchase shows no progress even
	// though the enrollment sits at 50%
	purchase := models.CustomerPurchase{
		CustomerID:  customer.ID,
		OrderRef:    "order-1",
		ProductType: models.ProductTypeCourse,
		ProductID:   course.ID,
	}
	require.NoError(t, db.Create(&purchase).Error)

	ReconcilePurchaseMirrors()

	require.NoError(t, db.First(&purchase, purchase.ID).Error)
	assert.Equal(t, 50, purchase.ProgressPercent)
}

func TestReconcileSkipsInSyncMirrors(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 100)
	customer := seedCustomer(t, db, "buyer@example.com")
	learnerID := LearnerIDForCustomer(customer.ID)

	enrollment := seedEnrollment(t, db, course.ID, learnerID)
	enrollment.CompletionPercentage = 0
	require.NoError(t, db.Save(&enrollment).Error)

	purchase := models.CustomerPurchase{
		CustomerID:  customer.ID,
		OrderRef:    "order-1",
		ProductType: models.ProductTypeCourse,
		ProductID:   course.ID,
	}
	require.NoError(t, db.Create(&purchase).Error)

	// Already in sync: the sweep must leave both sides untouched
	ReconcilePurchaseMirrors()

	require.NoError(t, db.First(&purchase, purchase.ID).Error)
	assert.Equal(t, 0, purchase.ProgressPercent)
}
