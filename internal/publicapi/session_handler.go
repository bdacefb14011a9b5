package publicapi

import (
	"strings"
	"time"

	"stonecrm-backend/internal/database"
	"stonecrm-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionResponse struct {
	Token           string `json:"token"`
	RememberedEmail string `json:"remembered_email"`
	RecentlyViewed  []uint `json:"recently_viewed"`
	Favorites       []uint `json:"favorites"`
}

func toSessionResponse(s models.StorefrontSession) SessionResponse {
	return SessionResponse{
		Token:           s.Token,
		RememberedEmail: s.RememberedEmail,
		RecentlyViewed:  decodeIDList(s.RecentlyViewed),
		Favorites:       decodeIDList(s.Favorites),
	}
}

func loadSession(c *fiber.Ctx) (*models.StorefrontSession, error) {
	token := c.Params("token")
	if _, err := uuid.Parse(token); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "session token is invalid")
	}

	var s models.StorefrontSession
	if err := database.DB.Where("token = ?", token).First(&s).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	database.DB.Model(&s).Update("last_seen_at", time.Now())
	return &s, nil
}

// POST /api/public/sessions
// Created on a visitor's first request; the token is the visitor's handle
// for everything previously kept in browser storage.
func CreateSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := models.StorefrontSession{
			Token:          uuid.NewString(),
			RecentlyViewed: "[]",
			Favorites:      "[]",
			LastSeenAt:     time.Now(),
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create session")
		}

		return c.Status(fiber.StatusCreated).JSON(toSessionResponse(s))
	}
}

// GET /api/public/sessions/:token
func GetSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadSession(c)
		if err != nil {
			return err
		}
		return c.JSON(toSessionResponse(*s))
	}
}

// DELETE /api/public/sessions/:token
// Explicit sign-out clears everything.
func DeleteSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")
		if err := database.DB.Where("token = ?", token).
			Delete(&models.StorefrontSession{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete session")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type RememberEmailRequest struct {
	Email string `json:"email"`
}

// PUT /api/public/sessions/:token/email
func RememberEmailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadSession(c)
		if err != nil {
			return err
		}

		var body RememberEmailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		s.RememberedEmail = strings.TrimSpace(strings.ToLower(body.Email))
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update session")
		}

		return c.JSON(toSessionResponse(*s))
	}
}

type ProductRefRequest struct {
	ProductID uint `json:"product_id"`
}

func productExists(id uint) bool {
	var count int64
	database.DB.Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND display_online = ?", id, true, true).
		Count(&count)
	return count > 0
}

// POST /api/public/sessions/:token/recently-viewed
func PushRecentlyViewedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadSession(c)
		if err != nil {
			return err
		}

		var body ProductRefRequest
		if err := c.BodyParser(&body); err != nil || body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}
		if !productExists(body.ProductID) {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}

		list := PushRecentlyViewed(decodeIDList(s.RecentlyViewed), body.ProductID, RecentlyViewedCap)
		s.RecentlyViewed = encodeIDList(list)

		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update session")
		}
		return c.JSON(toSessionResponse(*s))
	}
}

// POST /api/public/sessions/:token/favorites
func AddFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadSession(c)
		if err != nil {
			return err
		}

		var body ProductRefRequest
		if err := c.BodyParser(&body); err != nil || body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}
		if !productExists(body.ProductID) {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}

		s.Favorites = encodeIDList(AddFavorite(decodeIDList(s.Favorites), body.ProductID))
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update session")
		}
		return c.JSON(toSessionResponse(*s))
	}
}

// DELETE /api/public/sessions/:token/favorites/:productID
func RemoveFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := loadSession(c)
		if err != nil {
			return err
		}

		var productID uint
		if err := fiberParamUint(c, "productID", &productID); err != nil {
			return err
		}

		s.Favorites = encodeIDList(RemoveFavorite(decodeIDList(s.Favorites), productID))
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update session")
		}
		return c.JSON(toSessionResponse(*s))
	}
}

func fiberParamUint(c *fiber.Ctx, name string, out *uint) error {
	v, err := c.ParamsInt(name)
	if err != nil || v <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	*out = uint(v)
	return nil
}
