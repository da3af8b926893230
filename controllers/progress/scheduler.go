package controllers

import (
	"log"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitProgressReconciler starts the nightly sweep that re-syncs drifted
// purchase progress mirrors. The mirror write is best effort at recompute
// time, so a failed sync leaves the purchase stale until this runs. The
// engine's own recomputation stays synchronous; the sweep only re-runs it
// for pairs whose mirror disagrees with the aggregate.
func InitProgressReconciler() {
	log.Println("[PROGRESS-RECONCILER] Initializing progress reconciler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-RECONCILER] Running daily mirror reconciliation...")
		ReconcilePurchaseMirrors()
	})

	c.Start()
	log.Println("[PROGRESS-RECONCILER] Progress reconciler started - runs daily at 3 AM")
}

// ReconcilePurchaseMirrors recomputes progress for every course purchase
// whose mirrored percentage disagrees with the enrollment aggregate.
func ReconcilePurchaseMirrors() {
	db := database.Database.Db

	var purchases []models.CustomerPurchase
	if err := db.Where("product_type = ? AND is_deleted = ?", models.ProductTypeCourse, false).
		Find(&purchases).Error; err != nil {
		log.Printf("[PROGRESS-RECONCILER] Error fetching purchases: %v", err)
		return
	}

	reconciled := 0
	for _, purchase := range purchases {
		learnerID := LearnerIDForCustomer(purchase.CustomerID)

		var enrollment courseModels.Enrollment
		if err := db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?",
			purchase.ProductID, learnerID, false).First(&enrollment).Error; err != nil {
			continue
		}

		if enrollment.CompletionPercentage == purchase.ProgressPercent {
			continue
		}

		RecomputeProgress(purchase.ProductID, learnerID)
		reconciled++
	}

	log.Printf("[PROGRESS-RECONCILER] Reconciled %d drifted purchase mirrors", reconciled)
}
