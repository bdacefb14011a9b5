package activity

import (
	"fmt"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/activities?entity_type=quote&entity_id=1&user_id=2&limit=50
func ListActivitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityIDStr := c.Query("entity_id")
		userIDStr := c.Query("user_id")

		dbq := database.DB.Model(&models.Activity{})

		if entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}
		if userIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(userIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}

		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			var l int
			if _, err := fmt.Sscan(limitStr, &l); err == nil && l > 0 && l <= 500 {
				limit = l
			}
		}

		var entries []models.Activity
		if err := dbq.Order("created_at desc").Limit(limit).Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list activities")
		}

		return c.JSON(entries)
	}
}
