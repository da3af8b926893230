package models

import (
	"time"

	"gorm.io/gorm"
)

// Product types a purchase can reference
const (
	ProductTypeCourse   = "course"
	ProductTypeResource = "resource"
)

// CustomerPurchase grants a customer lifetime access to a product.
// For course purchases, ProgressPercent mirrors the learner's enrollment
// progress for customer-facing purchase views.
type CustomerPurchase struct {
	gorm.Model
	CustomerID      uint       `json:"customer_id" gorm:"index;not null"`
	OrderRef        string     `json:"order_ref" gorm:"index"` // external order reference
	ProductType     string     `json:"product_type" gorm:"index;default:'course'"`
	ProductID       uint       `json:"product_id" gorm:"index;not null"`
	ProgressPercent int        `json:"progress_percent" gorm:"default:0"`
	DownloadCount   int        `json:"download_count" gorm:"default:0"`
	CompletedAt     *time.Time `json:"completed_at"`
	CertificateID   *uint      `json:"certificate_id"`
	IsDeleted       bool       `gorm:"default:false"`
	Customer        Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}
