package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/handlers"
	"github.com/hugh/plantnet/internal/database/models"
	"github.com/hugh/plantnet/internal/testutil"
)

func setupUserTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	r := chi.NewRouter()
	handler := handlers.NewUserHandler(tc.Store, nil)
	r.Get("/users/role/{email}", handler.GetRole)
	r.Post("/users/{email}", handler.Create)
	r.Patch("/users/{email}", handler.RequestRole)
	r.Patch("/user/role/{email}", handler.ApproveRole)
	r.Get("/all-user/{email}", handler.List)

	return r, tc
}

func TestUserHandler_Create_Idempotent(t *testing.T) {
	r, tc := setupUserTestRouter(t)
	body := dto.CreateUserRequest{Name: "New Person", Image: "https://img.plantnet.test/me.png"}

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/users/new@plantnet.test", body))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var first models.User
	testutil.ParseJSONResponse(t, rr, &first)
	assert.Equal(t, "new@plantnet.test", first.Email)
	assert.Equal(t, models.RoleCustomer, first.Role)
	assert.NotZero(t, first.Timestamp)

	body.Name = "Changed Name"
	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/users/new@plantnet.test", body))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var second models.User
	testutil.ParseJSONResponse(t, rr, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "New Person", second.Name)

	users, _, _ := tc.Store.Counts()
	assert.Equal(t, 4, users)
}

func TestUserHandler_Create_PathEmailWins(t *testing.T) {
	r, tc := setupUserTestRouter(t)

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/users/path@plantnet.test",
		dto.CreateUserRequest{Name: "P", Email: "body@plantnet.test"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	_, ok := tc.Store.User("path@plantnet.test")
	assert.True(t, ok)
	_, ok = tc.Store.User("body@plantnet.test")
	assert.False(t, ok)
}

func TestUserHandler_Create_EncodedEmail(t *testing.T) {
	r, tc := setupUserTestRouter(t)

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/users/enc%40plantnet.test", dto.CreateUserRequest{Name: "E"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	_, ok := tc.Store.User("enc@plantnet.test")
	assert.True(t, ok)
}

func TestUserHandler_GetRole(t *testing.T) {
	r, tc := setupUserTestRouter(t)

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodGet, "/users/role/"+tc.Seller.Email, nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp dto.RoleResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, models.RoleSeller, resp.Role)

	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodGet, "/users/role/ghost@plantnet.test", nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUserHandler_RequestRole(t *testing.T) {
	r, tc := setupUserTestRouter(t)
	path := "/users/" + tc.Customer.Email

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, path, nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var res models.UpdateResult
	testutil.ParseJSONResponse(t, rr, &res)
	assert.Equal(t, int64(1), res.Modified)

	stored, _ := tc.Store.User(tc.Customer.Email)
	assert.Equal(t, models.UserStatusRequested, stored.Status)

	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, path, nil))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	var errResp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &errResp)
	assert.Equal(t, "you have already requested, wait for some time", errResp.Message)

	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, "/users/ghost@plantnet.test", nil))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUserHandler_ApproveRole(t *testing.T) {
	r, tc := setupUserTestRouter(t)
	path := "/user/role/" + tc.Customer.Email

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, path, dto.ApproveRoleRequest{Role: "seller"}))
	testutil.AssertStatus(t, rr, http.StatusOK)

	stored, _ := tc.Store.User(tc.Customer.Email)
	assert.Equal(t, models.RoleSeller, stored.Role)
	assert.Equal(t, models.UserStatusVerified, stored.Status)

	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, path, dto.ApproveRoleRequest{Role: "owner"}))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	var errResp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &errResp)
	assert.Contains(t, errResp.Details, "role")

	rr = serve(r, testutil.UnauthenticatedRequest(t, http.MethodPatch, "/user/role/ghost@plantnet.test", dto.ApproveRoleRequest{Role: "Admin"}))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestUserHandler_StoreFailure(t *testing.T) {
	r, tc := setupUserTestRouter(t)
	tc.Store.Fail = errors.New("connection reset")

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodGet, "/all-user/x@y.io", nil))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)

	var errResp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &errResp)
	require.Equal(t, "internal", errResp.Error)
}

func TestUserHandler_InvalidBody(t *testing.T) {
	r, _ := setupUserTestRouter(t)

	rr := serve(r, testutil.UnauthenticatedRequest(t, http.MethodPost, "/users/a@b.io", nil))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}
