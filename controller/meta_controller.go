package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/cache"
	"github.com/beridzemate00/nieghbornews/model"
)

const districtsCacheKey = "neighbornews:districts"

// MetaController serves the enumeration helpers used by filter UIs.
type MetaController struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewMetaController(db *gorm.DB, cch *cache.Cache) *MetaController {
	return &MetaController{DB: db, Cache: cch}
}

// GET /api/districts
func (mc *MetaController) Districts(c *fiber.Ctx) error {
	var districts []string
	if mc.Cache.Get(c.Context(), districtsCacheKey, &districts) {
		return c.JSON(fiber.Map{"districts": districts})
	}

	err := mc.DB.Model(&model.NewsPost{}).
		Distinct("district").
		Order("district").
		Pluck("district", &districts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch districts"})
	}

	mc.Cache.Set(c.Context(), districtsCacheKey, districts, 5*time.Minute)

	return c.JSON(fiber.Map{"districts": districts})
}

// GET /api/categories
func (mc *MetaController) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": model.Categories})
}
