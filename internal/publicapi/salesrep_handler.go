package publicapi

import (
	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PublicSalesRepResponse struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	YearsExperience int    `json:"years_experience"`
	Specialties     string `json:"specialties"`
	AvatarURL       string `json:"avatar_url"`
}

func toPublicSalesRep(p models.SalesRepProfile) PublicSalesRepResponse {
	return PublicSalesRepResponse{
		Slug:            p.Slug,
		Name:            p.User.FirstName + " " + p.User.LastName,
		Title:           p.Title,
		Bio:             p.Bio,
		Phone:           p.PublicPhone,
		Email:           p.PublicEmail,
		YearsExperience: p.YearsExperience,
		Specialties:     p.Specialties,
		AvatarURL:       p.AvatarURL,
	}
}

// GET /api/public/sales-reps
func ListPublicSalesRepsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profiles []models.SalesRepProfile
		err := database.DB.Preload("User").
			Where("is_public = ?", true).
			Order("slug asc").Find(&profiles).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list sales reps")
		}

		res := make([]PublicSalesRepResponse, 0, len(profiles))
		for _, p := range profiles {
			res = append(res, toPublicSalesRep(p))
		}
		return c.JSON(res)
	}
}

// GET /api/public/sales-reps/:slug
func GetPublicSalesRepHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		var p models.SalesRepProfile
		err := database.DB.Preload("User").
			Where("slug = ? AND is_public = ?", slug, true).
			First(&p).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "sales rep not found")
		}

		return c.JSON(toPublicSalesRep(p))
	}
}
