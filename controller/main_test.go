package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/auth"
	"github.com/beridzemate00/nieghbornews/model"
	"github.com/beridzemate00/nieghbornews/routes"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *auth.TokenService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.NewsPost{}))

	tokens := auth.NewTokenService("test-secret", time.Hour)

	app := fiber.New()
	routes.Register(app, db, tokens, nil, t.TempDir())
	return app, db, tokens
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) model.User {
	t.Helper()

	user := model.User{Name: name, Email: email, Role: role}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, author model.User, title, category, district, status string) model.NewsPost {
	t.Helper()

	post := model.NewsPost{
		Title:    title,
		Content:  "content of " + title,
		Category: category,
		District: district,
		AuthorID: author.ID,
		Status:   status,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
