package controller

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/cache"
	"github.com/beridzemate00/nieghbornews/middleware"
	"github.com/beridzemate00/nieghbornews/model"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type NewsController struct {
	DB        *gorm.DB
	UploadDir string
	Cache     *cache.Cache
}

func NewNewsController(db *gorm.DB, uploadDir string, cch *cache.Cache) *NewsController {
	return &NewsController{DB: db, UploadDir: uploadDir, Cache: cch}
}

// GET /api/news
//
// Public listing. Status defaults to "verified" but any explicitly passed
// status value is honored regardless of caller identity.
func (nc *NewsController) List(c *fiber.Ctx) error {
	query := nc.DB.Model(&model.NewsPost{})

	if district := c.Query("district"); district != "" {
		query = query.Where("district = ?", district)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status", model.StatusVerified); status != "" {
		query = query.Where("status = ?", status)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch news"})
	}

	var posts []model.NewsPost
	err := query.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch news"})
	}

	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}

	return c.JSON(fiber.Map{
		"news":         model.ToResponseList(posts),
		"total":        total,
		"pages":        pages,
		"current_page": page,
	})
}

// GET /api/news/:id
func (nc *NewsController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	var post model.NewsPost
	if err := nc.DB.Preload("Author").First(&post, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	// Plain read-then-write: concurrent fetches may lose an increment,
	// which is acceptable for a view counter.
	post.ViewCount++
	if err := nc.DB.Save(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update view count"})
	}

	return c.JSON(fiber.Map{"news": post.ToResponse()})
}

type newsRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Category string `json:"category" form:"category"`
	District string `json:"district" form:"district"`
}

// POST /api/news
func (nc *NewsController) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req newsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title is required"})
	}
	if req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "content is required"})
	}
	if req.Category == "" {
		return c.Status(400).JSON(fiber.Map{"error": "category is required"})
	}
	if req.District == "" {
		return c.Status(400).JSON(fiber.Map{"error": "district is required"})
	}
	if !model.ValidCategory(req.Category) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category. Must be one of: " + strings.Join(model.Categories, ", ")})
	}

	imageURL, err := nc.saveImage(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	post := model.NewsPost{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		District: req.District,
		AuthorID: user.ID,
		ImageURL: imageURL,
		Status:   model.StatusPending,
	}
	if err := nc.DB.Create(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to create news post"})
	}
	post.Author = user

	nc.Cache.Delete(c.Context(), districtsCacheKey, statsCacheKey)

	return c.Status(201).JSON(fiber.Map{
		"message": "News post created successfully",
		"news":    post.ToResponse(),
	})
}

// PUT /api/news/:id
func (nc *NewsController) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	var post model.NewsPost
	if err := nc.DB.Preload("Author").First(&post, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}
	if post.AuthorID != user.ID && user.Role != model.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	// Partial update; status and ownership are never touched here.
	if title, ok := fields["title"].(string); ok {
		post.Title = title
	}
	if content, ok := fields["content"].(string); ok {
		post.Content = content
	}
	if category, ok := fields["category"].(string); ok {
		if !model.ValidCategory(category) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category"})
		}
		post.Category = category
	}
	if district, ok := fields["district"].(string); ok {
		post.District = district
	}

	if err := nc.DB.Save(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update news post"})
	}

	nc.Cache.Delete(c.Context(), districtsCacheKey)

	return c.JSON(fiber.Map{
		"message": "News post updated",
		"news":    post.ToResponse(),
	})
}

// DELETE /api/news/:id
func (nc *NewsController) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}

	var post model.NewsPost
	if err := nc.DB.First(&post, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "News post not found"})
	}
	if post.AuthorID != user.ID && user.Role != model.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := nc.DB.Delete(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete news post"})
	}

	nc.Cache.Delete(c.Context(), districtsCacheKey, statsCacheKey)

	return c.JSON(fiber.Map{"message": "News post deleted"})
}

// saveImage stores an optional multipart "image" file under the upload
// directory and returns its public URL. Missing file is not an error.
func (nc *NewsController) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fiber.NewError(400, "unsupported image type")
	}

	name := time.Now().Format("20060102_150405") + "_" + uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(nc.UploadDir, name)); err != nil {
		return "", fiber.NewError(400, "failed to store image")
	}
	return "/static/uploads/" + name, nil
}
