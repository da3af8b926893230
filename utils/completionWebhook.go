package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyCourseCompleted posts a course-completed event to the configured
// webhook. Best effort: callers log the error and move on, the primary
// progress write has already committed.
func NotifyCourseCompleted(webhookURL string, learnerID string, courseID uint) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":        "course.completed",
			"learner_id":   learnerID,
			"course_id":    courseID,
			"completed_at": time.Now().Unix(),
		}).
		Post(webhookURL)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	return nil
}
