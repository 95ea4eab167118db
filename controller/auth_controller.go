package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/auth"
	"github.com/beridzemate00/nieghbornews/middleware"
	"github.com/beridzemate00/nieghbornews/model"
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *auth.TokenService
}

func NewAuthController(db *gorm.DB, tokens *auth.TokenService) *AuthController {
	return &AuthController{DB: db, Tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email is required"})
	}
	if req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "password is required"})
	}

	var existing model.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Email already registered"})
	}

	// Role is never taken from the request.
	user := model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash password"})
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Email already registered"})
	}

	token, err := ac.Tokens.Generate(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to issue token"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password required"})
	}

	var user model.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if !user.CheckPassword(req.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := ac.Tokens.Generate(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to issue token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{"user": user})
}
