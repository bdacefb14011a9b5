package clients

import (
	"strings"

	"stonecrm-backend/internal/activity"
	"stonecrm-backend/internal/auth"
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Notes      string `json:"notes"`
	SalesRepID *uint  `json:"sales_rep_id"`
}

func toClientResponse(cl models.Client) ClientResponse {
	return ClientResponse{
		ID:         cl.ID,
		Name:       cl.Name,
		Email:      cl.Email,
		Phone:      cl.Phone,
		Company:    cl.Company,
		Address:    cl.Address,
		City:       cl.City,
		State:      cl.State,
		ZipCode:    cl.ZipCode,
		Notes:      cl.Notes,
		SalesRepID: cl.SalesRepID,
	}
}

type CreateClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Notes      string `json:"notes"`
	SalesRepID *uint  `json:"sales_rep_id"`
}

type UpdateClientRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Company    *string `json:"company"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	ZipCode    *string `json:"zip_code"`
	Notes      *string `json:"notes"`
	SalesRepID *uint   `json:"sales_rep_id"`
}

// GET /api/clients?search=smith&sales_rep_id=3
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Client{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			dbq = dbq.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", like, like, like)
		}
		if repStr := c.Query("sales_rep_id"); repStr != "" {
			dbq = dbq.Where("sales_rep_id = ?", repStr)
		}

		var list []models.Client
		if err := dbq.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list clients")
		}

		res := make([]ClientResponse, 0, len(list))
		for _, cl := range list {
			res = append(res, toClientResponse(cl))
		}
		return c.JSON(res)
	}
}

// GET /api/clients/:id
func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}

		return c.JSON(toClientResponse(cl))
	}
}

// GET /api/clients/:id/quotes
func ListClientQuotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}

		var quotes []models.Quote
		if err := database.DB.Where("client_id = ?", cl.ID).
			Order("created_at desc").Find(&quotes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list quotes")
		}

		return c.JSON(quotes)
	}
}

// POST /api/clients
func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		cl := models.Client{
			Name:       body.Name,
			Email:      body.Email,
			Phone:      body.Phone,
			Company:    body.Company,
			Address:    body.Address,
			City:       body.City,
			State:      body.State,
			ZipCode:    body.ZipCode,
			Notes:      body.Notes,
			SalesRepID: body.SalesRepID,
		}

		if err := database.DB.Create(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create client")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "client",
			EntityID:    cl.ID,
			Action:      models.ActivityActionCreate,
			Description: "client created: " + cl.Name,
			After:       cl,
		})

		return c.Status(fiber.StatusCreated).JSON(toClientResponse(cl))
	}
}

// PUT /api/clients/:id
func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		before := cl

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			cl.Name = name
		}
		if body.Email != nil {
			cl.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			cl.Phone = *body.Phone
		}
		if body.Company != nil {
			cl.Company = *body.Company
		}
		if body.Address != nil {
			cl.Address = *body.Address
		}
		if body.City != nil {
			cl.City = *body.City
		}
		if body.State != nil {
			cl.State = *body.State
		}
		if body.ZipCode != nil {
			cl.ZipCode = *body.ZipCode
		}
		if body.Notes != nil {
			cl.Notes = *body.Notes
		}
		if body.SalesRepID != nil {
			cl.SalesRepID = body.SalesRepID
		}

		if err := database.DB.Save(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update client")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "client",
			EntityID:    cl.ID,
			Action:      models.ActivityActionUpdate,
			Description: "client updated: " + cl.Name,
			Before:      before,
			After:       cl,
		})

		return c.JSON(toClientResponse(cl))
	}
}

// DELETE /api/clients/:id (admin)
func DeleteClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}

		var quoteCount int64
		database.DB.Model(&models.Quote{}).Where("client_id = ?", cl.ID).Count(&quoteCount)
		if quoteCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "client has quotes and cannot be deleted")
		}

		if err := database.DB.Delete(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete client")
		}

		userID, _ := auth.CurrentUserID(c)
		activity.Record(activity.LogOptions{
			UserID:      userID,
			UserName:    auth.CurrentUsername(c),
			EntityType:  "client",
			EntityID:    cl.ID,
			Action:      models.ActivityActionDelete,
			Description: "client deleted: " + cl.Name,
			Before:      cl,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
