package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/http/handler"
	"github.com/austral-erp/procurement-api/internal/repository"
	"github.com/austral-erp/procurement-api/internal/service"
	"github.com/austral-erp/procurement-api/internal/testutil"
)

// newRequestRouter wires the purchase-request routes over a fresh database,
// with a middleware stub injecting the given role in place of RequireAuth.
func newRequestRouter(t *testing.T, role auth.Role) chi.Router {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sequences := service.NewSequenceService(repository.NewNumeratorRepository(db), zap.NewNop())
	require.NoError(t, sequences.Seed(context.Background()))
	svc := service.NewRequestService(
		repository.NewPurchaseRequestRepository(db),
		repository.NewRFQRepository(db),
		repository.NewContractRepository(db),
		repository.NewSupplierRepository(db),
		repository.NewActivityRepository(db),
		sequences,
		zap.NewNop(),
	)
	h := handler.NewPurchaseRequestHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user := &auth.UserContext{UserID: "u1", DisplayName: "Ana Torres", Roles: []auth.Role{role}}
			next.ServeHTTP(w, req.WithContext(auth.WithUserContext(req.Context(), user)))
		})
	})
	r.Route("/purchase-requests", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/group", h.Group)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/direct-award", h.DirectAward)
	})
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePurchaseRequestEndpoint(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	rec := postJSON(t, router, "/purchase-requests", domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
		Items: []domain.CreatePurchaseRequestItemInput{
			{Description: "Hex bolts M8", Quantity: 100, Unit: "u"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto domain.PurchaseRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "PR-00000001", dto.Number)
	assert.Equal(t, domain.RequestStatusPending, dto.Status)
}

func TestCreatePurchaseRequestValidation(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	rec := postJSON(t, router, "/purchase-requests", domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Message, "items")
}

func TestCreatePurchaseRequestForbiddenForViewer(t *testing.T) {
	router := newRequestRouter(t, auth.RoleViewer)

	rec := postJSON(t, router, "/purchase-requests", domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
		Items:       []domain.CreatePurchaseRequestItemInput{{Description: "bolts", Quantity: 1}},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetPurchaseRequestNotFound(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	req := httptest.NewRequest(http.MethodGet, "/purchase-requests/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPurchaseRequestBadID(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	req := httptest.NewRequest(http.MethodGet, "/purchase-requests/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroupConflictOnProcessedRequest(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	rec := postJSON(t, router, "/purchase-requests", domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
		Items:       []domain.CreatePurchaseRequestItemInput{{Description: "bolts", Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dto domain.PurchaseRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	group := domain.GroupRequestsRequest{RequestIDs: []uuid.UUID{dto.ID}}
	rec = postJSON(t, router, "/purchase-requests/group", group)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/purchase-requests/group", group)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDirectAwardUnprocessableWithoutContract(t *testing.T) {
	router := newRequestRouter(t, auth.RoleBuyer)

	rec := postJSON(t, router, "/purchase-requests", domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
		Items:       []domain.CreatePurchaseRequestItemInput{{Description: "Custom bracket", Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dto domain.PurchaseRequestDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))

	rec = postJSON(t, router, "/purchase-requests/"+dto.ID.String()+"/direct-award", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
