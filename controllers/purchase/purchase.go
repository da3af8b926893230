package purchaseController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	progress "lms/controllers/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminCreateCustomer registers a commerce-side customer identity
func AdminCreateCustomer(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedCustomer").(*struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Account  string `json:"account"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check if customer email already exists
	var existing models.Customer
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Customer with this email already exists!", nil)
	}

	customer := models.Customer{
		FullName: reqData.FullName,
		Email:    reqData.Email,
		Phone:    reqData.Phone,
		Account:  reqData.Account,
		Active:   true,
	}

	if err := database.Database.Db.Create(&customer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create customer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Customer created successfully!", customer)
}

// AdminGrantPurchase grants a customer access to a product. For course
// purchases this seeds the progress mirror at zero.
func AdminGrantPurchase(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*struct {
		CustomerID  uint   `json:"customer_id"`
		ProductType string `json:"product_type"`
		ProductID   uint   `json:"product_id"`
		OrderRef    string `json:"order_ref"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var customer models.Customer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CustomerID, false).First(&customer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	productType := reqData.ProductType
	if productType == "" {
		productType = models.ProductTypeCourse
	}

	if productType == models.ProductTypeCourse {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.ProductID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
	}

	// One purchase per (customer, product)
	var existing models.CustomerPurchase
	if err := database.Database.Db.Where("customer_id = ? AND product_type = ? AND product_id = ? AND is_deleted = ?",
		reqData.CustomerID, productType, reqData.ProductID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Customer already owns this product!", nil)
	}

	orderRef := reqData.OrderRef
	if orderRef == "" {
		orderRef = uuid.NewString()
	}

	purchase := models.CustomerPurchase{
		CustomerID:  reqData.CustomerID,
		OrderRef:    orderRef,
		ProductType: productType,
		ProductID:   reqData.ProductID,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&purchase).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grant purchase!", nil)
	}

	// Course purchases enroll the customer identity so progress can accrue
	if productType == models.ProductTypeCourse {
		learnerID := progress.LearnerIDForCustomer(reqData.CustomerID)

		var enrollment courseModels.Enrollment
		if err := tx.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", reqData.ProductID, learnerID, false).First(&enrollment).Error; err != nil {
			enrollment = courseModels.Enrollment{
				CourseID:   reqData.ProductID,
				LearnerID:  learnerID,
				Status:     courseModels.EnrollmentActive,
				EnrolledAt: time.Now(),
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll customer!", nil)
			}
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Purchase granted successfully!", purchase)
}

// GetCustomerLibrary lists a customer's purchases with progress mirrors
func GetCustomerLibrary(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	customerID := c.Locals("customerID").(uint)

	var customer models.Customer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", customerID, false).First(&customer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	var purchases []models.CustomerPurchase
	if err := database.Database.Db.Where("customer_id = ? AND is_deleted = ?", customerID, false).Order("created_at desc").Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	type PurchaseWithProduct struct {
		models.CustomerPurchase
		ProductTitle string `json:"product_title"`
	}

	result := make([]PurchaseWithProduct, len(purchases))
	for i, p := range purchases {
		item := PurchaseWithProduct{CustomerPurchase: p}
		if p.ProductType == models.ProductTypeCourse {
			var course courseModels.Course
			if err := database.Database.Db.Where("id = ?", p.ProductID).First(&course).Error; err == nil {
				item.ProductTitle = course.Title
			}
		}
		result[i] = item
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer library fetched successfully!", fiber.Map{
		"customer":  customer,
		"purchases": result,
		"total":     len(result),
	})
}

// RecordDownload bumps the download counter on a resource purchase
func RecordDownload(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	purchaseID := c.Locals("purchaseID").(uint)

	var purchase models.CustomerPurchase
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", purchaseID, false).First(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found!", nil)
	}

	purchase.DownloadCount++
	if err := database.Database.Db.Save(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record download!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Download recorded successfully!", purchase)
}
