package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Slug         string `json:"slug" gorm:"index"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	PricingType  string `json:"pricing_type" gorm:"default:'free'"` // free, paid
	PriceAmount  int64  `json:"price_amount" gorm:"default:0"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
