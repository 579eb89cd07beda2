package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/3ddruckrorbas/Druck/internal/fstore"
	"github.com/3ddruckrorbas/Druck/internal/model"
)

const ordersDoc = "orders"

// OrderStore manages the order collection on top of the file store.
type OrderStore struct {
	files *fstore.Store
}

// NewOrderStore creates an order store backed by files.
func NewOrderStore(files *fstore.Store) *OrderStore {
	return &OrderStore{files: files}
}

func (s *OrderStore) loadAll() ([]model.Order, error) {
	var orders []model.Order
	if err := s.files.Load(ordersDoc, &orders, []model.Order{}); err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	return orders, nil
}

// List returns all orders sorted newest-first by creation time. A
// non-empty deviceID restricts the result to that device's orders.
func (s *OrderStore) List(deviceID string) ([]model.Order, error) {
	orders, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	if deviceID != "" {
		filtered := make([]model.Order, 0, len(orders))
		for _, o := range orders {
			if o.DeviceID == deviceID {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Create appends a new order built from the client payload. Defaults are
// applied first and the payload merged over them, so a client-supplied
// status or adminNotes wins; id and createdAt are always assigned by the
// server.
func (s *OrderStore) Create(payload json.RawMessage) (model.Order, error) {
	orders, err := s.loadAll()
	if err != nil {
		return model.Order{}, err
	}

	order := model.Order{
		Status:     model.DefaultStatus,
		AdminNotes: "",
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &order); err != nil {
			return model.Order{}, fmt.Errorf("decoding order payload: %w", err)
		}
	}
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now().UTC()

	orders = append(orders, order)
	if err := s.files.Save(ordersDoc, orders); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Update merges the client payload into the order with the given id and
// returns the full collection. Returns ErrOrderNotFound for unknown ids.
func (s *OrderStore) Update(id string, payload json.RawMessage) ([]model.Order, error) {
	orders, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	found := false
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		keep := orders[i].CreatedAt
		if err := json.Unmarshal(payload, &orders[i]); err != nil {
			return nil, fmt.Errorf("decoding order update: %w", err)
		}
		orders[i].ID = id
		orders[i].CreatedAt = keep
		found = true
		break
	}
	if !found {
		return nil, ErrOrderNotFound
	}

	if err := s.files.Save(ordersDoc, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Delete removes the order with the given id and returns the remaining
// collection. Returns ErrOrderNotFound for unknown ids.
func (s *OrderStore) Delete(id string) ([]model.Order, error) {
	orders, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	remaining := orders[:0:0]
	for _, o := range orders {
		if o.ID != id {
			remaining = append(remaining, o)
		}
	}
	if len(remaining) == len(orders) {
		return nil, ErrOrderNotFound
	}

	if err := s.files.Save(ordersDoc, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}
