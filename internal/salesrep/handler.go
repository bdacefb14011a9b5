package salesrep

import (
	"strings"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProfileResponse struct {
	ID              uint   `json:"id"`
	UserID          uint   `json:"user_id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	PublicPhone     string `json:"public_phone"`
	PublicEmail     string `json:"public_email"`
	YearsExperience int    `json:"years_experience"`
	Specialties     string `json:"specialties"`
	AvatarURL       string `json:"avatar_url"`
	IsPublic        bool   `json:"is_public"`
}

func toProfileResponse(p models.SalesRepProfile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Slug:            p.Slug,
		Title:           p.Title,
		Bio:             p.Bio,
		PublicPhone:     p.PublicPhone,
		PublicEmail:     p.PublicEmail,
		YearsExperience: p.YearsExperience,
		Specialties:     p.Specialties,
		AvatarURL:       p.AvatarURL,
		IsPublic:        p.IsPublic,
	}
}

type UpsertProfileRequest struct {
	UserID          uint   `json:"user_id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	PublicPhone     string `json:"public_phone"`
	PublicEmail     string `json:"public_email"`
	YearsExperience int    `json:"years_experience"`
	Specialties     string `json:"specialties"`
	AvatarURL       string `json:"avatar_url"`
	IsPublic        bool   `json:"is_public"`
}

// slugify keeps lowercase letters, digits and dashes.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GET /api/sales-rep-profiles
func ListProfilesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profiles []models.SalesRepProfile
		if err := database.DB.Order("slug asc").Find(&profiles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list profiles")
		}

		res := make([]ProfileResponse, 0, len(profiles))
		for _, p := range profiles {
			res = append(res, toProfileResponse(p))
		}
		return c.JSON(res)
	}
}

// PUT /api/sales-rep-profiles
// Creates or replaces the profile for a user.
func UpsertProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.UserID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
		}

		var user models.User
		if err := database.DB.First(&user, body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "user not found")
		}

		slug := slugify(body.Slug)
		if slug == "" {
			slug = slugify(user.FirstName + " " + user.LastName)
		}
		if slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "slug could not be derived; provide one")
		}

		var conflict models.SalesRepProfile
		if err := database.DB.Where("slug = ? AND user_id <> ?", slug, body.UserID).
			First(&conflict).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "slug is already in use")
		}

		var profile models.SalesRepProfile
		err := database.DB.Where("user_id = ?", body.UserID).First(&profile).Error

		profile.UserID = body.UserID
		profile.Slug = slug
		profile.Title = body.Title
		profile.Bio = body.Bio
		profile.PublicPhone = body.PublicPhone
		profile.PublicEmail = body.PublicEmail
		profile.YearsExperience = body.YearsExperience
		profile.Specialties = body.Specialties
		profile.AvatarURL = body.AvatarURL
		profile.IsPublic = body.IsPublic

		if err != nil {
			err = database.DB.Create(&profile).Error
		} else {
			err = database.DB.Save(&profile).Error
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save profile")
		}

		return c.JSON(toProfileResponse(profile))
	}
}

// DELETE /api/sales-rep-profiles/:id (admin)
func DeleteProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.SalesRepProfile{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete profile")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
