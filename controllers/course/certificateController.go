package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetUserCertificates lists certificates earned by the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate resolves a certificate by its public code. No auth,
// this backs the shareable verification page.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate code is required!", nil)
	}

	var certificate courseModels.Certificate
	if err := database.Database.Db.Where("certificate_code = ? AND is_deleted = ?", code, false).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Where("id = ?", certificate.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"certificate_code": certificate.CertificateCode,
		"course_title":     course.Title,
		"issued_at":        certificate.IssuedAt,
		"expires_at":       certificate.ExpiresAt,
	})
}
