package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/mikepea/blogly/pkg/blogly/web"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func setupTestRouter(t *testing.T, s *store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := web.Install(r); err != nil {
		t.Fatalf("Failed to install templates: %v", err)
	}
	handler := NewHandler(s, zerolog.Nop())
	handler.RegisterRoutes(r)
	return r
}

func createTestUser(t *testing.T, s *store.Store, first, last string) *models.User {
	user, err := s.CreateUser(context.Background(), store.UserInput{FirstName: first, LastName: last})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	router := setupTestRouter(t, s)
	createTestUser(t, s, "Ada", "Lovelace")
	createTestUser(t, s, "Grace", "Hopper")

	resp := get(router, "/users")

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		if !strings.Contains(resp.Body.String(), name) {
			t.Errorf("Expected listing to contain %q", name)
		}
	}
}

func TestNewUserForm(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	resp := get(router, "/users/new_user")

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `name="first_name"`) {
		t.Error("Expected form to contain first_name field")
	}
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	resp := postForm(router, "/users/new_user", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"image_url":  {""},
	})

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/users" {
		t.Errorf("Expected redirect to /users, got %s", loc)
	}

	var user models.User
	if err := db.Where("first_name = ?", "Ada").First(&user).Error; err != nil {
		t.Fatalf("Expected user to be created: %v", err)
	}
	if user.ImageURL != models.DefaultImageURL {
		t.Errorf("Expected default image, got %q", user.ImageURL)
	}
}

func TestCreateUserMissingField(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	resp := postForm(router, "/users/new_user", url.Values{"first_name": {"Ada"}})

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no users, got %d", count)
	}
}

func TestShowUser(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	router := setupTestRouter(t, s)
	user := createTestUser(t, s, "Ada", "Lovelace")
	s.CreatePost(context.Background(), user.ID, store.PostInput{Title: "Notes on the Engine", Content: "..."})

	resp := get(router, "/users/1")

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Ada Lovelace") || !strings.Contains(body, "Notes on the Engine") {
		t.Errorf("Expected user page to show name and posts, got %s", body)
	}
	if !strings.Contains(body, models.DefaultImageURL) {
		t.Error("Expected user page to show the image")
	}
}

func TestShowUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	for _, path := range []string{"/users/99", "/users/abc", "/users/99/edit"} {
		resp := get(router, path)
		if resp.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 for %s, got %d", path, resp.Code)
		}
	}
}

func TestEditUserForm(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	router := setupTestRouter(t, s)
	createTestUser(t, s, "Ada", "Lovelace")

	resp := get(router, "/users/1/edit")

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `value="Lovelace"`) {
		t.Error("Expected form to be filled with the current values")
	}
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	router := setupTestRouter(t, s)
	user := createTestUser(t, s, "Ada", "Lovelace")

	resp := postForm(router, "/users/1/edit", url.Values{
		"first_name": {"Augusta"},
		"last_name":  {"King"},
		"image_url":  {"https://example.com/ada.png"},
	})

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/users" {
		t.Errorf("Expected redirect to /users, got %s", loc)
	}

	var updated models.User
	db.First(&updated, user.ID)
	if updated.FullName() != "Augusta King" || updated.ImageURL != "https://example.com/ada.png" {
		t.Errorf("Unexpected user after update: %+v", updated)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	resp := postForm(router, "/users/5/edit", url.Values{"first_name": {"a"}, "last_name": {"b"}})

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)
	router := setupTestRouter(t, s)
	user := createTestUser(t, s, "Ada", "Lovelace")
	for _, title := range []string{"one", "two"} {
		s.CreatePost(context.Background(), user.ID, store.PostInput{Title: title, Content: "..."})
	}

	resp := postForm(router, "/users/1/delete", url.Values{})

	if resp.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/users" {
		t.Errorf("Expected redirect to /users, got %s", loc)
	}

	var users, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	if users != 0 || posts != 0 {
		t.Errorf("Expected user and posts to be deleted, got %d users and %d posts", users, posts)
	}
}

func TestMissingUserWithBlankForm(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, store.New(db))

	resp := postForm(router, "/users/999/edit", url.Values{"first_name": {""}})

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
