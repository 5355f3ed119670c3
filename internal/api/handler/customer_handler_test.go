package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"credit-engine/internal/api/handler"
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	args := m.Called(ctx, cust)
	if created, ok := args.Get(0).(*customer.Customer); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, upd customer.Update) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, upd)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func storedCustomer() *customer.Customer {
	return &customer.Customer{
		ID:        1,
		FirstName: "Camila",
		LastName:  "Cavalcante",
		CPF:       "28475934625",
		Email:     "camila@email.com",
		Password:  "12345",
		Address: customer.Address{
			ZipCode: "12345",
			Street:  "Rua da Cami",
		},
		Income: 1000.0,
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp
}

const validCustomerPayload = `{
	"firstName": "Camila",
	"lastName": "Cavalcante",
	"cpf": "28475934625",
	"email": "camila@email.com",
	"income": 1000.0,
	"password": "12345",
	"zipCode": "12345",
	"street": "Rua da Cami"
}`

func TestCreateCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.FirstName == "Camila" && c.CPF == "28475934625"
		})).Return(storedCustomer(), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(validCustomerPayload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerView
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Camila", resp.FirstName)
		assert.Equal(t, "Rua da Cami", resp.Street)
		mockService.AssertExpectations(t)
	})

	t.Run("validation failure reports one details entry per field", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		payload := `{"firstName": "", "lastName": "Cavalcante", "cpf": "123", "email": "camila@email.com", "income": 1000.0, "password": "12345", "zipCode": "12345", "street": "Rua da Cami"}`
		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Bad Request", resp.Title)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "ValidationException", resp.Exception)
		assert.Equal(t, "must not be empty", resp.Details["firstName"])
		assert.Equal(t, "invalid CPF", resp.Details["cpf"])
		mockService.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{not json`))
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("duplicate cpf maps to 409 with conflict title", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("CreateCustomer", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: customers_cpf_key", apperrors.ErrAlreadyExists)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(validCustomerPayload))
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Conflict! Consult the documentation", resp.Title)
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "DataIntegrityViolationException", resp.Exception)
		mockService.AssertExpectations(t)
	})
}

func TestGetCustomerHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("GetCustomer", mock.Anything, int64(1)).Return(storedCustomer(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/customers/1", nil)
		req = withURLParam(req, "customerID", "1")
		rec := httptest.NewRecorder()

		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerView
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "28475934625", resp.CPF)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid id in path", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		req := httptest.NewRequest(http.MethodGet, "/api/customers/abc", nil)
		req = withURLParam(req, "customerID", "abc")
		rec := httptest.NewRecorder()

		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "IllegalArgumentException", resp.Exception)
		mockService.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	})

	t.Run("unknown customer maps to 400 BusinessException", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("GetCustomer", mock.Anything, int64(2)).
			Return(nil, fmt.Errorf("%w: Id 2 not found", apperrors.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/customers/2", nil)
		req = withURLParam(req, "customerID", "2")
		rec := httptest.NewRecorder()

		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "Conflict! Consult the documentation", resp.Title)
		assert.Equal(t, "BusinessException", resp.Exception)
		assert.Contains(t, resp.Details["resource not found"], "Id 2 not found")
		mockService.AssertExpectations(t)
	})
}

func TestUpdateCustomerHandler(t *testing.T) {
	t.Run("success with customerId in query", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		updated := storedCustomer()
		updated.FirstName = "CamiUpdated"

		mockService.On("UpdateCustomer", mock.Anything, int64(1), mock.MatchedBy(func(u customer.Update) bool {
			return u.FirstName != nil && *u.FirstName == "CamiUpdated" && u.LastName == nil
		})).Return(updated, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/customers?customerId=1", bytes.NewBufferString(`{"firstName": "CamiUpdated"}`))
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerView
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CamiUpdated", resp.FirstName)
		mockService.AssertExpectations(t)
	})

	t.Run("missing customerId query parameter", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		req := httptest.NewRequest(http.MethodPatch, "/api/customers", bytes.NewBufferString(`{"firstName": "X"}`))
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "UpdateCustomer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown customer maps to 400 BusinessException", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("UpdateCustomer", mock.Anything, int64(5), mock.Anything).
			Return(nil, fmt.Errorf("%w: Id 5 not found", apperrors.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/customers?customerId=5", bytes.NewBufferString(`{"firstName": "X"}`))
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "BusinessException", resp.Exception)
		mockService.AssertExpectations(t)
	})
}

func TestDeleteCustomerHandler(t *testing.T) {
	t.Run("success returns no content", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("DeleteCustomer", mock.Anything, int64(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil)
		req = withURLParam(req, "customerID", "1")
		rec := httptest.NewRecorder()

		h.DeleteCustomer(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
		mockService.AssertExpectations(t)
	})

	t.Run("unknown customer maps to 400", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		mockService.On("DeleteCustomer", mock.Anything, int64(9)).
			Return(fmt.Errorf("%w: Id 9 not found", apperrors.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/9", nil)
		req = withURLParam(req, "customerID", "9")
		rec := httptest.NewRecorder()

		h.DeleteCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "BusinessException", resp.Exception)
		mockService.AssertExpectations(t)
	})
}
