// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/ctxutil"
	"github.com/taibuivan/medora/internal/platform/sec"
)

const (
	shopperID = "0190c8e4-0000-7000-8000-0000000000a1"
	maskID    = "0190c8e4-0000-7000-8000-0000000000b1"
	gloveID   = "0190c8e4-0000-7000-8000-0000000000b2"
	unknownID = "0190c8e4-0000-7000-8000-0000000000b9"
)

// # Fakes

type catalog map[string]ProductSummary

func (c catalog) Exists(_ context.Context, id string) (bool, error) {
	_, ok := c[id]
	return ok, nil
}

type memoryRepository struct {
	mu       sync.Mutex
	catalog  catalog
	order    map[string][]string
	quantity map[string]map[string]int
}

func newMemoryRepository(products catalog) *memoryRepository {
	return &memoryRepository{catalog: products, order: map[string][]string{}, quantity: map[string]map[string]int{}}
}

func (m *memoryRepository) Add(_ context.Context, userID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quantity[userID] == nil {
		m.quantity[userID] = map[string]int{}
	}
	if _, ok := m.quantity[userID][productID]; !ok {
		m.order[userID] = append(m.order[userID], productID)
	}
	m.quantity[userID][productID] += quantity
	return nil
}

func (m *memoryRepository) SetQuantity(_ context.Context, userID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quantity[userID][productID]; !ok {
		return ErrNotInCart
	}
	m.quantity[userID][productID] = quantity
	return nil
}

func (m *memoryRepository) Remove(_ context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quantity[userID], productID)
	kept := m.order[userID][:0]
	for _, id := range m.order[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	m.order[userID] = kept
	return nil
}

func (m *memoryRepository) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quantity, userID)
	delete(m.order, userID)
	return nil
}

func (m *memoryRepository) Lines(_ context.Context, userID string) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]Line, 0)
	for _, id := range m.order[userID] {
		lines = append(lines, Line{Product: m.catalog[id], Quantity: m.quantity[userID][id]})
	}
	return lines, nil
}

func newTestService() *Service {
	products := catalog{
		maskID:  {ID: maskID, Name: "Mask", Price: 0.1},
		gloveID: {ID: gloveID, Name: "Gloves", Price: 0.2},
	}
	return NewService(newMemoryRepository(products), products, zap.NewNop())
}

// # Service

func TestAdd_Accumulates(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Add(ctx, shopperID, AddInput{ProductID: maskID, Quantity: 2})
	require.NoError(t, err)
	_, err = service.Add(ctx, shopperID, AddInput{ProductID: gloveID, Quantity: 1})
	require.NoError(t, err)
	cart, err := service.Add(ctx, shopperID, AddInput{ProductID: maskID, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 0.3, cart.Items[0].Subtotal, 1e-9)
	assert.Equal(t, 0.5, cart.Total)
}

func TestAdd_Rejects(t *testing.T) {
	service := newTestService()

	_, err := service.Add(context.Background(), shopperID, AddInput{ProductID: unknownID, Quantity: 1})
	assert.Equal(t, "Product not found", err.Error())

	_, err = service.Add(context.Background(), shopperID, AddInput{ProductID: maskID})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

func TestGet_Empty(t *testing.T) {
	service := newTestService()

	_, err := service.Get(context.Background(), shopperID)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, "Cart is empty", err.Error())
}

func TestUpdateRemoveClear(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.UpdateQuantity(ctx, shopperID, maskID, UpdateInput{Quantity: 4})
	assert.ErrorIs(t, err, ErrNotInCart)

	_, err = service.Add(ctx, shopperID, AddInput{ProductID: maskID, Quantity: 1})
	require.NoError(t, err)

	cart, err := service.UpdateQuantity(ctx, shopperID, maskID, UpdateInput{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	cart, err = service.Remove(ctx, shopperID, gloveID)
	require.NoError(t, err, "removing an absent product is not an error")
	assert.Len(t, cart.Items, 1)

	require.NoError(t, service.Clear(ctx, shopperID))
	_, err = service.Get(ctx, shopperID)
	assert.ErrorIs(t, err, ErrEmpty)
}

// # Store

func TestPostgresAdd_Upserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryAddLine)).
		WithArgs(shopperID, maskID, 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(querySetQuantity)).
		WithArgs(shopperID, gloveID, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.Add(context.Background(), shopperID, maskID, 2))
	assert.ErrorIs(t, repo.SetQuantity(context.Background(), shopperID, gloveID, 3), ErrNotInCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// # HTTP

func TestHTTP_AddAndGet(t *testing.T) {
	router := chi.NewRouter()
	router.Mount("/cart", NewHandler(newTestService()).Routes())

	claims := &sec.AuthClaims{PrincipalID: shopperID, Role: sec.RoleUser}
	send := func(method, path string, body any) *httptest.ResponseRecorder {
		var payload []byte
		if body != nil {
			payload, _ = json.Marshal(body)
		}
		request := httptest.NewRequest(method, path, bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusNotFound, send(http.MethodGet, "/cart", nil).Code)
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/cart/add", AddInput{ProductID: maskID, Quantity: 2}).Code)

	recorder := send(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var cart Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
	assert.Equal(t, shopperID, cart.UserID)
	assert.InDelta(t, 0.2, cart.Total, 1e-9)

	// Anonymous callers are rejected before the handler.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
