package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/cache"
	"github.com/beridzemate00/nieghbornews/model"
)

const statsCacheKey = "neighbornews:stats"

type AdminController struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewAdminController(db *gorm.DB, cch *cache.Cache) *AdminController {
	return &AdminController{DB: db, Cache: cch}
}

// GET /api/admin/pending
func (ac *AdminController) Pending(c *fiber.Ctx) error {
	var posts []model.NewsPost
	err := ac.DB.Preload("Author").
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch pending posts"})
	}
	return c.JSON(fiber.Map{"news": model.ToResponseList(posts)})
}

// POST /api/admin/verify/:id
func (ac *AdminController) Verify(c *fiber.Ctx) error {
	return ac.setStatus(c, model.StatusVerified, "Post verified")
}

// POST /api/admin/reject/:id
func (ac *AdminController) Reject(c *fiber.Ctx) error {
	return ac.setStatus(c, model.StatusRejected, "Post rejected")
}

// setStatus re-sets the status unconditionally; repeating a transition on
// an already-moderated post is not an error.
func (ac *AdminController) setStatus(c *fiber.Ctx, status, message string) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	var post model.NewsPost
	if err := ac.DB.Preload("Author").First(&post, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	post.Status = status
	if err := ac.DB.Save(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update status"})
	}

	ac.Cache.Delete(c.Context(), statsCacheKey)

	return c.JSON(fiber.Map{
		"message": message,
		"news":    post.ToResponse(),
	})
}

type statsPayload struct {
	TotalPosts    int64 `json:"total_posts"`
	PendingPosts  int64 `json:"pending_posts"`
	VerifiedPosts int64 `json:"verified_posts"`
	RejectedPosts int64 `json:"rejected_posts"`
	TotalUsers    int64 `json:"total_users"`
}

// GET /api/admin/stats
func (ac *AdminController) Stats(c *fiber.Ctx) error {
	var stats statsPayload
	if ac.Cache.Get(c.Context(), statsCacheKey, &stats) {
		return c.JSON(fiber.Map{"stats": stats})
	}

	counts := []struct {
		status string
		dest   *int64
	}{
		{model.StatusPending, &stats.PendingPosts},
		{model.StatusVerified, &stats.VerifiedPosts},
		{model.StatusRejected, &stats.RejectedPosts},
	}
	if err := ac.DB.Model(&model.NewsPost{}).Count(&stats.TotalPosts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch stats"})
	}
	for _, cnt := range counts {
		err := ac.DB.Model(&model.NewsPost{}).
			Where("status = ?", cnt.status).
			Count(cnt.dest).Error
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch stats"})
		}
	}
	if err := ac.DB.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch stats"})
	}

	ac.Cache.Set(c.Context(), statsCacheKey, stats, time.Minute)

	return c.JSON(fiber.Map{"stats": stats})
}
