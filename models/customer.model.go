package models

import "gorm.io/gorm"

// Customer is a commerce-side identity created by the checkout workflow.
// It is independent of the student identity space used for learning.
type Customer struct {
	gorm.Model
	FullName  string `json:"full_name"`
	Email     string `json:"email" gorm:"index"`
	Phone     string `json:"phone"`
	Account   string `json:"account"`
	Active    bool   `json:"active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`
}
