package model

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Categories is the fixed set of allowed news categories.
var Categories = []string{"Outdoors", "Transport", "Events", "Danger", "Announcements"}

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

type NewsPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"size:50;not null" json:"category"`
	District  string    `gorm:"size:100;not null" json:"district"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Status    string    `gorm:"size:20;default:pending" json:"status"` // pending, verified, rejected
	ImageURL  string    `gorm:"size:255" json:"image_url"`
	ViewCount int       `gorm:"default:0" json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NewsPost) TableName() string {
	return "news_posts"
}

// ToResponse shapes the post for API responses, exposing only the
// author's id and name rather than the full user record.
func (n *NewsPost) ToResponse() fiber.Map {
	return fiber.Map{
		"id":         n.ID,
		"title":      n.Title,
		"content":    n.Content,
		"category":   n.Category,
		"district":   n.District,
		"status":     n.Status,
		"image_url":  n.ImageURL,
		"view_count": n.ViewCount,
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
		"author": fiber.Map{
			"id":   n.Author.ID,
			"name": n.Author.Name,
		},
	}
}

// ToResponseList shapes a slice of posts for API responses.
func ToResponseList(posts []NewsPost) []fiber.Map {
	out := make([]fiber.Map, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].ToResponse())
	}
	return out
}
