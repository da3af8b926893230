package main

import (
	"log"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Skip if the sample course already exists
	var existing courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", "getting-started-with-video-editing", false).First(&existing).Error; err == nil {
		log.Printf("Sample course already exists (id=%d), nothing to do", existing.ID)
		return
	}

	course := courseModels.Course{
		Slug:        "getting-started-with-video-editing",
		Title:       "Getting Started with Video Editing",
		Subtitle:    "From raw footage to a finished cut",
		Description: "A beginner course covering the full editing workflow: importing footage, cutting, color, sound and export.",
		Author:      "Dohy Academy",
		PricingType: "free",
		IsPublished: true,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("Failed to create sample course: %v", err)
	}

	chapters := []struct {
		Title   string
		Lessons []struct {
			Title    string
			Duration int
		}
	}{
		{
			Title: "Introduction",
			Lessons: []struct {
				Title    string
				Duration int
			}{
				{"Welcome to the course", 120},
				{"Choosing your editing software", 300},
			},
		},
		{
			Title: "The Editing Workflow",
			Lessons: []struct {
				Title    string
				Duration int
			}{
				{"Importing and organizing footage", 480},
				{"Making your first cut", 600},
				{"Working with audio", 540},
			},
		},
		{
			Title: "Finishing",
			Lessons: []struct {
				Title    string
				Duration int
			}{
				{"Color correction basics", 420},
				{"Exporting your project", 360},
			},
		},
	}

	lessonCount := 0
	for ci, ch := range chapters {
		chapter := courseModels.Chapter{
			CourseID:   course.ID,
			Title:      ch.Title,
			OrderIndex: ci,
		}
		if err := db.Create(&chapter).Error; err != nil {
			log.Fatalf("Failed to create chapter %q: %v", ch.Title, err)
		}

		for li, l := range ch.Lessons {
			lesson := courseModels.Lesson{
				CourseID:        course.ID,
				ChapterID:       chapter.ID,
				Title:           l.Title,
				DurationSeconds: l.Duration,
				IsPreview:       ci == 0 && li == 0,
				OrderIndex:      li,
			}
			if err := db.Create(&lesson).Error; err != nil {
				log.Fatalf("Failed to create lesson %q: %v", l.Title, err)
			}
			lessonCount++
		}
	}

	log.Printf("Seeded course %q with %d chapters and %d lessons", course.Title, len(chapters), lessonCount)
}
