package purchaseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// PurchaseIDParam parses and validates the purchaseId path parameter
func PurchaseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("purchaseId"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid purchase ID!", nil)
		}
		c.Locals("purchaseID", uint(id))
		return c.Next()
	}
}

// CreateCustomer validates the customer creation request
func CreateCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName string `json:"full_name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Account  string `json:"account"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.FullName) == "" {
			errors["full_name"] = "Full name is required!"
		}
		if strings.TrimSpace(reqData.Email) == "" {
			errors["email"] = "Email is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCustomer", reqData)
		return c.Next()
	}
}

// GrantPurchase validates the purchase grant request
func GrantPurchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CustomerID  uint   `json:"customer_id"`
			ProductType string `json:"product_type"`
			ProductID   uint   `json:"product_id"`
			OrderRef    string `json:"order_ref"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CustomerID == 0 {
			errors["customer_id"] = "Customer ID is required!"
		}
		if reqData.ProductID == 0 {
			errors["product_id"] = "Product ID is required!"
		}
		if reqData.ProductType != "" && reqData.ProductType != models.ProductTypeCourse && reqData.ProductType != models.ProductTypeResource {
			errors["product_type"] = "Product type must be course or resource!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}
