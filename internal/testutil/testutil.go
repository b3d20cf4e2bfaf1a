package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugh/plantnet/internal/auth"
	"github.com/hugh/plantnet/internal/database/models"
)

const TestSecret = "test-secret-key-for-testing"

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService(TestSecret, 24*time.Hour)
}

// GenerateTestToken generates a valid token for email
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, email string) string {
	t.Helper()

	token, err := jwtService.Issue(email)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request carrying the session cookie
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without a session
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given value
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestSetup holds a seeded store, one user per role and their tokens.
type TestSetup struct {
	Store      *MemStore
	JWTService *auth.JWTService

	Customer models.User
	Seller   models.User
	Admin    models.User

	CustomerToken string
	SellerToken   string
	AdminToken    string
}

// NewTestContext creates a complete test context with a user in every role.
// The admin is stored with a lowercase role the way older records are.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	store := NewMemStore()
	jwtService := CreateTestJWTService()

	customer := store.PutUser(models.User{Email: "customer@plantnet.test", Name: "Casey", Role: models.RoleCustomer})
	seller := store.PutUser(models.User{Email: "seller@plantnet.test", Name: "Sam", Role: models.RoleSeller, Status: models.UserStatusVerified})
	admin := store.PutUser(models.User{Email: "admin@plantnet.test", Name: "Alex", Role: models.Role("admin")})

	return &TestSetup{
		Store:         store,
		JWTService:    jwtService,
		Customer:      customer,
		Seller:        seller,
		Admin:         admin,
		CustomerToken: GenerateTestToken(t, jwtService, customer.Email),
		SellerToken:   GenerateTestToken(t, jwtService, seller.Email),
		AdminToken:    GenerateTestToken(t, jwtService, admin.Email),
	}
}

// SeedPlant stores a plant owned by the setup's seller.
func (ts *TestSetup) SeedPlant(name string, price float64, quantity int64) models.Plant {
	return ts.Store.PutPlant(models.Plant{
		Name:     name,
		Category: "Indoor",
		Image:    "https://img.plantnet.test/" + name + ".jpg",
		Price:    price,
		Quantity: quantity,
		Seller:   models.Seller{Name: ts.Seller.Name, Email: ts.Seller.Email},
	})
}
