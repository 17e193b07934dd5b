package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"greenleaf/internal/handlers"
	"greenleaf/internal/middleware"
	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
	"greenleaf/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the whole app against an in-memory SQLite database.
type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp builds a Fiber app with all handlers and services over a fresh
// in-memory database, one per test.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Product{},
		&models.GeneticTemplate{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartLine{},
		&models.StockHistory{},
	)
	assert.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	templateRepo := repositories.NewGORMTemplateRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)

	catalogService := services.NewCatalogService(productRepo)
	templateService := services.NewTemplateService(templateRepo, productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil) // no broker in tests
	inventoryService := services.NewInventoryService(inventoryRepo, nil)
	authService := services.NewAuthService(userRepo, jwtSecret)

	app := fiber.New()
	app.Use(middleware.SessionGuard(authService))

	api := app.Group("/api")
	handlers.NewAuthHandler(authService, false).RegisterRoutes(api)
	handlers.NewProductHandler(catalogService).RegisterRoutes(api)
	handlers.NewCartHandler(cartService).RegisterRoutes(api)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api)

	admin := api.Group("/admin", middleware.AdminRequired())
	handlers.NewAdminHandler(catalogService, templateService, inventoryService, orderService).RegisterRoutes(admin)

	seedCatalogForTest(t, productRepo)
	seedAdminForTest(t, userRepo)

	return &testEnv{app: app, db: db}
}

func seedCatalogForTest(t *testing.T, repo repositories.ProductRepository) {
	t.Helper()
	products := []models.Product{
		{ID: "prod-flower", Slug: "blue-dream-3-5g", Name: "Blue Dream 3.5g", Description: "Balanced hybrid flower", Price: 35.00, StockQuantity: 10, Category: "flower", StrainType: "hybrid", Status: models.ProductStatusActive, Featured: true},
		{ID: "prod-roll", Slug: "sour-diesel-pre-roll", Name: "Sour Diesel Pre-Roll", Description: "Sativa pre-roll", Price: 12.00, StockQuantity: 4, Category: "pre-rolls", StrainType: "sativa", Status: models.ProductStatusActive},
		{ID: "prod-draft", Slug: "mystery-drop", Name: "Mystery Drop", Description: "Unannounced", Price: 60.00, StockQuantity: 3, Category: "flower", StrainType: "hybrid", Status: models.ProductStatusDraft},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}
}

func seedAdminForTest(t *testing.T, repo repositories.UserRepository) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NoError(t, repo.Create(&models.User{
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: string(hash),
		Admin:    true,
	}))
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, session string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// register creates a customer account and returns its session token.
func register(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return login(t, app, email, password)
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			assert.NotEmpty(t, cookie.Value)
			return cookie.Value
		}
	}
	t.Fatal("login response did not set session cookie")
	return ""
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthFlow(t *testing.T) {
	env := setupApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Jamie Doe", "email": "jamie@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jamie@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// Short passwords are rejected up front.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Shorty", "email": "short@example.com", "password": "12345",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email conflicts and does not alter the users table.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Copycat", "email": "jamie@example.com", "password": "password456",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	var userCount int64
	assert.NoError(t, env.db.Model(&models.User{}).Where("email = ?", "jamie@example.com").Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	// Wrong password and unknown email both answer 401.
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jamie@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	session := login(t, env.app, "jamie@example.com", "password123")
	assert.NotEmpty(t, session)
}

func TestSessionGuard(t *testing.T) {
	env := setupApp(t)

	// API paths without a session answer 401 JSON.
	resp := doJSON(t, env.app, http.MethodGet, "/api/cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])

	// Page-like paths redirect to the login page.
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	raw, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusFound, raw.StatusCode)
	assert.Equal(t, "/login", raw.Header.Get("Location"))
	raw.Body.Close()

	// A garbage token is rejected.
	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Customers are kept out of the admin API.
	session := register(t, env.app, "Jamie Doe", "jamie@example.com", "password123")
	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/stats", nil, session)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalogEndpoints(t *testing.T) {
	env := setupApp(t)

	// Browsing needs no session and only surfaces active products.
	resp := doJSON(t, env.app, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["total"])
	for _, raw := range body["products"].([]interface{}) {
		product := raw.(map[string]interface{})
		assert.Equal(t, models.ProductStatusActive, product["status"])
	}

	// Filters narrow the listing.
	resp = doJSON(t, env.app, http.MethodGet, "/api/products?category=pre-rolls", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])

	resp = doJSON(t, env.app, http.MethodGet, "/api/products?search=hybrid&sort=price_asc", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])

	// Slug lookup works for active products, 404s for drafts and unknowns.
	resp = doJSON(t, env.app, http.MethodGet, "/api/products/blue-dream-3-5g", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "prod-flower", product["id"])

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/mystery-drop", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/products/no-such-slug", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCartAndCheckoutFlow(t *testing.T) {
	env := setupApp(t)
	session := register(t, env.app, "Jamie Doe", "jamie@example.com", "password123")

	// Cart a quantity above stock; it clamps to the available 4.
	resp := doJSON(t, env.app, http.MethodPost, "/api/cart", map[string]interface{}{
		"product_id": "prod-roll", "quantity": 99,
	}, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	line := body["line"].(map[string]interface{})
	assert.Equal(t, float64(4), line["quantity"])

	resp = doJSON(t, env.app, http.MethodPost, "/api/cart", map[string]interface{}{
		"product_id": "prod-flower", "quantity": 2,
	}, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Draft products cannot be carted.
	resp = doJSON(t, env.app, http.MethodPost, "/api/cart", map[string]interface{}{
		"product_id": "prod-draft", "quantity": 1,
	}, session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The cart view derives totals server-side: 4*12 + 2*35.
	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", nil, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	cart := body["cart"].(map[string]interface{})
	assert.Equal(t, float64(6), cart["item_count"])
	assert.InDelta(t, 118.00, cart["total"].(float64), 1e-9)

	// Checkout with a missing required field is a 400.
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders", map[string]string{
		"customer_name": "Jamie Doe", "customer_email": "jamie@example.com",
	}, session)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Full form places the order.
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders", map[string]string{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"address":        "12 High St",
		"city":           "Portland",
		"state":          "OR",
		"zip":            "97201",
	}, session)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	orderID := body["order_id"].(string)
	assert.NotEmpty(t, orderID)

	// Stock was decremented and the cart cleared.
	var flower models.Product
	assert.NoError(t, env.db.First(&flower, "id = ?", "prod-flower").Error)
	assert.Equal(t, 8, flower.StockQuantity)
	var roll models.Product
	assert.NoError(t, env.db.First(&roll, "id = ?", "prod-roll").Error)
	assert.Equal(t, 0, roll.StockQuantity)

	resp = doJSON(t, env.app, http.MethodGet, "/api/cart", nil, session)
	body = decodeBody(t, resp)
	cart = body["cart"].(map[string]interface{})
	assert.Equal(t, float64(0), cart["item_count"])

	// The order is readable by its owner with price snapshots intact.
	resp = doJSON(t, env.app, http.MethodGet, "/api/orders/"+orderID, nil, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, models.OrderStatusPending, order["status"])
	assert.InDelta(t, 118.00, order["total_amount"].(float64), 1e-9)
	assert.Len(t, order["items"].([]interface{}), 2)

	// Another customer cannot read it.
	other := register(t, env.app, "Riley Roe", "riley@example.com", "password123")
	resp = doJSON(t, env.app, http.MethodGet, "/api/orders/"+orderID, nil, other)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A second checkout with an empty cart fails and creates nothing.
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders", map[string]string{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"address":        "12 High St",
		"city":           "Portland",
		"state":          "OR",
		"zip":            "97201",
	}, session)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	var orderCount int64
	assert.NoError(t, env.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestCheckoutOversell(t *testing.T) {
	env := setupApp(t)

	// Shrink the pre-roll stock to one so both carts race for it.
	assert.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", "prod-roll").
		Update("stock_quantity", 1).Error)

	first := register(t, env.app, "Jamie Doe", "jamie@example.com", "password123")
	second := register(t, env.app, "Riley Roe", "riley@example.com", "password123")

	for _, session := range []string{first, second} {
		resp := doJSON(t, env.app, http.MethodPost, "/api/cart", map[string]interface{}{
			"product_id": "prod-roll", "quantity": 1,
		}, session)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	form := map[string]string{
		"customer_name":  "Customer",
		"customer_email": "customer@example.com",
		"address":        "12 High St",
		"city":           "Portland",
		"state":          "OR",
		"zip":            "97201",
	}

	resp := doJSON(t, env.app, http.MethodPost, "/api/orders", form, first)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The conditional decrement rejects the second order instead of driving
	// stock negative.
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders", form, second)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	var roll models.Product
	assert.NoError(t, env.db.First(&roll, "id = ?", "prod-roll").Error)
	assert.Equal(t, 0, roll.StockQuantity)
	var orderCount int64
	assert.NoError(t, env.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestAdminStockAdjustment(t *testing.T) {
	env := setupApp(t)
	session := login(t, env.app, "admin@example.com", "adminpass")

	// 10 -> 7 writes exactly one "remove" audit row.
	resp := doJSON(t, env.app, http.MethodPut, "/api/admin/products/prod-flower", map[string]interface{}{
		"stock": 7, "price": 36.50, "active": true, "reason": "shrinkage count",
	}, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, float64(7), product["stock_quantity"])
	assert.InDelta(t, 36.50, product["price"].(float64), 1e-9)
	history := body["history"].(map[string]interface{})
	assert.Equal(t, models.StockChangeRemove, history["change_type"])
	assert.Equal(t, float64(3), history["quantity_change"])
	assert.Equal(t, float64(10), history["previous_stock"])
	assert.Equal(t, float64(7), history["new_stock"])
	assert.Equal(t, "shrinkage count", history["reason"])

	// Unchanged stock writes no further audit row.
	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/products/prod-flower", map[string]interface{}{
		"stock": 7, "price": 36.50, "active": true,
	}, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Nil(t, body["history"])

	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/products/prod-flower/history", nil, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["history"].([]interface{}), 1)

	// Deactivation hides the product from the storefront.
	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/products/prod-roll", map[string]interface{}{
		"stock": 4, "price": 12.00, "active": false,
	}, session)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodGet, "/api/products/sour-diesel-pre-roll", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Unknown product IDs 404.
	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/products/no-such-id", map[string]interface{}{
		"stock": 1, "price": 1.00, "active": true,
	}, session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminProductEditing(t *testing.T) {
	env := setupApp(t)
	admin := login(t, env.app, "admin@example.com", "adminpass")

	// Catalog fields are replaced and show up on the storefront.
	resp := doJSON(t, env.app, http.MethodPatch, "/api/admin/products/prod-flower", map[string]interface{}{
		"slug":           "blue-dream-3-5g",
		"name":           "Blue Dream Premium 3.5g",
		"description":    "Reworked cut, same genetics",
		"price":          35.00,
		"stock_quantity": 10,
		"category":       "flower",
		"strain_type":    "hybrid",
		"status":         models.ProductStatusActive,
		"featured":       true,
	}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "Blue Dream Premium 3.5g", product["name"])

	resp = doJSON(t, env.app, http.MethodGet, "/api/products/blue-dream-3-5g", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Blue Dream Premium 3.5g", body["product"].(map[string]interface{})["name"])

	// Updating an unknown ID is a 404 and must not insert a phantom row.
	unknownID := "2f3c6d0a-9a3b-4a57-8a67-3f1f4cf2b111"
	resp = doJSON(t, env.app, http.MethodPatch, "/api/admin/products/"+unknownID, map[string]interface{}{
		"slug":           "ghost-product",
		"name":           "Ghost Product",
		"price":          10.00,
		"stock_quantity": 1,
	}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	var productCount int64
	assert.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", unknownID).Count(&productCount).Error)
	assert.Equal(t, int64(0), productCount)

	// Same contract for templates.
	resp = doJSON(t, env.app, http.MethodPut, "/api/admin/templates/"+unknownID, map[string]interface{}{
		"name":        "Ghost Template",
		"strain_type": "indica",
	}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	var templateCount int64
	assert.NoError(t, env.db.Model(&models.GeneticTemplate{}).Where("id = ?", unknownID).Count(&templateCount).Error)
	assert.Equal(t, int64(0), templateCount)
}

func TestDuplicateEmailConstraintMapping(t *testing.T) {
	env := setupApp(t)
	repo := repositories.NewGORMUserRepository(env.db)

	assert.NoError(t, repo.Create(&models.User{
		Name:     "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "irrelevant-hash",
	}))

	// A direct unique-constraint violation, the window the registration
	// pre-check leaves open, must surface as ErrDuplicate so handlers can
	// answer 409 instead of 500.
	err := repo.Create(&models.User{
		Name:     "Copycat",
		Email:    "jamie@example.com",
		Password: "irrelevant-hash",
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestAdminTemplatesAndStats(t *testing.T) {
	env := setupApp(t)
	admin := login(t, env.app, "admin@example.com", "adminpass")

	// Create a genetic template.
	resp := doJSON(t, env.app, http.MethodPost, "/api/admin/templates", map[string]interface{}{
		"name":        "Northern Lights",
		"strain_type": "indica",
		"thc_min":     16.0,
		"thc_max":     21.0,
		"cbd_min":     0.1,
		"cbd_max":     0.5,
		"effects":     "relaxed,sleepy",
		"flavors":     "earthy,pine",
	}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	template := body["template"].(map[string]interface{})
	templateID := template["id"].(string)
	assert.NotEmpty(t, templateID)

	// Derive a product from it; strain metadata is copied and the product
	// starts as a draft.
	resp = doJSON(t, env.app, http.MethodPost, "/api/admin/templates/"+templateID+"/products", map[string]interface{}{
		"slug":           "northern-lights-3-5g",
		"name":           "Northern Lights 3.5g",
		"price":          38.00,
		"stock_quantity": 12,
		"category":       "flower",
	}, admin)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "indica", product["strain_type"])
	assert.Equal(t, models.ProductStatusDraft, product["status"])
	assert.Equal(t, templateID, product["template_id"])

	// Drafts stay invisible until activated.
	resp = doJSON(t, env.app, http.MethodGet, "/api/products/northern-lights-3-5g", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Place an order so the stats have something to aggregate.
	customer := register(t, env.app, "Jamie Doe", "jamie@example.com", "password123")
	resp = doJSON(t, env.app, http.MethodPost, "/api/cart", map[string]interface{}{
		"product_id": "prod-flower", "quantity": 2,
	}, customer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodPost, "/api/orders", map[string]string{
		"customer_name":  "Jamie Doe",
		"customer_email": "jamie@example.com",
		"address":        "12 High St",
		"city":           "Portland",
		"state":          "OR",
		"zip":            "97201",
	}, customer)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	orderID := body["order_id"].(string)

	// Admin can walk the order through statuses; bad values are rejected.
	resp = doJSON(t, env.app, http.MethodPatch, "/api/admin/orders/"+orderID+"/status", map[string]string{
		"status": models.OrderStatusConfirmed,
	}, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, env.app, http.MethodPatch, "/api/admin/orders/"+orderID+"/status", map[string]string{
		"status": "teleported",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/admin/stats", nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.InDelta(t, 70.00, stats["total_revenue"].(float64), 1e-9)
	top := stats["top_products"].([]interface{})
	assert.Len(t, top, 1)
	assert.Equal(t, "prod-flower", top[0].(map[string]interface{})["product_id"])
}
