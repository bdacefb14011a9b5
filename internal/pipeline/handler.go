package pipeline

import (
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PipelineItemResponse struct {
	ID         uint                `json:"id"`
	CartID     uint                `json:"cart_id"`
	ClientID   uint                `json:"client_id"`
	ClientName string              `json:"client_name"`
	Stage      models.ProjectStage `json:"stage"`
	Priority   models.Priority     `json:"priority"`
	AssignedTo *uint               `json:"assigned_to"`
	Notes      string              `json:"notes"`
}

func toResponse(item models.PipelineItem) PipelineItemResponse {
	return PipelineItemResponse{
		ID:         item.ID,
		CartID:     item.CartID,
		ClientID:   item.ClientID,
		ClientName: item.Client.Name,
		Stage:      item.Stage,
		Priority:   item.Priority,
		AssignedTo: item.AssignedTo,
		Notes:      item.Notes,
	}
}

type CreatePipelineItemRequest struct {
	CartID     uint                `json:"cart_id"`
	ClientID   uint                `json:"client_id"`
	Stage      models.ProjectStage `json:"stage"`
	Priority   models.Priority     `json:"priority"`
	AssignedTo *uint               `json:"assigned_to"`
	Notes      string              `json:"notes"`
}

type UpdatePipelineItemRequest struct {
	Stage      *models.ProjectStage `json:"stage"`
	Priority   *models.Priority     `json:"priority"`
	AssignedTo *uint                `json:"assigned_to"`
	Notes      *string              `json:"notes"`
}

// GET /api/pipeline?stage=production&priority=urgent&assigned_to=2
func ListPipelineItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PipelineItem{}).Preload("Client")

		if stage := c.Query("stage"); stage != "" {
			dbq = dbq.Where("stage = ?", stage)
		}
		if priority := c.Query("priority"); priority != "" {
			dbq = dbq.Where("priority = ?", priority)
		}
		if assigned := c.Query("assigned_to"); assigned != "" {
			dbq = dbq.Where("assigned_to = ?", assigned)
		}

		var items []models.PipelineItem
		if err := dbq.Order("updated_at desc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list pipeline items")
		}

		res := make([]PipelineItemResponse, 0, len(items))
		for _, item := range items {
			res = append(res, toResponse(item))
		}
		return c.JSON(res)
	}
}

// POST /api/pipeline
func CreatePipelineItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePipelineItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.CartID == 0 || body.ClientID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cart_id and client_id are required")
		}

		var cart models.Cart
		if err := database.DB.First(&cart, body.CartID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cart not found")
		}
		var client models.Client
		if err := database.DB.First(&client, body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "client not found")
		}

		stage := body.Stage
		if stage == "" {
			stage = models.ProjectStageQuote
		}
		if !models.ValidProjectStage(stage) {
			return fiber.NewError(fiber.StatusBadRequest, "stage is invalid")
		}

		priority := body.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		if !models.ValidPriority(priority) {
			return fiber.NewError(fiber.StatusBadRequest, "priority is invalid")
		}

		item := models.PipelineItem{
			CartID:     body.CartID,
			ClientID:   body.ClientID,
			Stage:      stage,
			Priority:   priority,
			AssignedTo: body.AssignedTo,
			Notes:      body.Notes,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create pipeline item")
		}

		item.Client = client
		return c.Status(fiber.StatusCreated).JSON(toResponse(item))
	}
}

// PUT /api/pipeline/:id
// Stage moves are not ordered; any stage may follow any other.
func UpdatePipelineItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.PipelineItem
		if err := database.DB.Preload("Client").First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "pipeline item not found")
		}

		var body UpdatePipelineItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Stage != nil {
			if !models.ValidProjectStage(*body.Stage) {
				return fiber.NewError(fiber.StatusBadRequest, "stage is invalid")
			}
			item.Stage = *body.Stage
		}
		if body.Priority != nil {
			if !models.ValidPriority(*body.Priority) {
				return fiber.NewError(fiber.StatusBadRequest, "priority is invalid")
			}
			item.Priority = *body.Priority
		}
		if body.AssignedTo != nil {
			item.AssignedTo = body.AssignedTo
		}
		if body.Notes != nil {
			item.Notes = *body.Notes
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update pipeline item")
		}

		return c.JSON(toResponse(item))
	}
}

// DELETE /api/pipeline/:id
func DeletePipelineItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.PipelineItem{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete pipeline item")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
