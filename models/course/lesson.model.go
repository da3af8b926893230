package course

import "gorm.io/gorm"

// Lesson represents a video lesson within a chapter
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	ChapterID       uint   `json:"chapter_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	IsPreview       bool   `json:"is_preview" gorm:"default:false"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // Order within chapter
	IsDeleted       bool   `gorm:"default:false"`
}
