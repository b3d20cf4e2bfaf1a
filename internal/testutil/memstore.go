package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory stand-in for the Mongo repositories. It keeps the
// same error contract so handlers behave identically against it.
type MemStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	plants  map[primitive.ObjectID]models.Plant
	orders  map[primitive.ObjectID]models.Order
	lookups int

	// Fail, when set, is returned by every call.
	Fail error
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:  make(map[string]models.User),
		plants: make(map[primitive.ObjectID]models.Plant),
		orders: make(map[primitive.ObjectID]models.Order),
	}
}

// Lookups counts FindUserByEmail calls.
func (s *MemStore) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func (s *MemStore) PutUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.Email] = u
	return u
}

func (s *MemStore) PutPlant(p models.Plant) models.Plant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.plants[p.ID] = p
	return p
}

func (s *MemStore) PutOrder(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = o
	return o
}

func (s *MemStore) User(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u, ok
}

func (s *MemStore) Plant(id primitive.ObjectID) (models.Plant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
	return p, ok
}

func (s *MemStore) Order(id primitive.ObjectID) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *MemStore) Counts() (users, plants, orders int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.plants), len(s.orders)
}

// Users

func (s *MemStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.Fail != nil {
		return nil, s.Fail
	}
	u, ok := s.users[email]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (s *MemStore) CreateUserIfAbsent(_ context.Context, user models.User) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, false, s.Fail
	}
	if u, ok := s.users[user.Email]; ok {
		return &u, false, nil
	}
	user.ID = primitive.NewObjectID()
	user.Role = models.RoleCustomer
	user.Status = models.UserStatusNone
	user.Timestamp = time.Now().UnixMilli()
	s.users[user.Email] = user
	return &user, true, nil
}

func (s *MemStore) ListUsersExcept(_ context.Context, email string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var out []models.User
	for _, u := range s.users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *MemStore) RequestRoleChange(_ context.Context, email string) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.UpdateResult{}, s.Fail
	}
	u, ok := s.users[email]
	if !ok {
		return models.UpdateResult{}, apperr.NotFound("user not found")
	}
	if u.Status == models.UserStatusRequested {
		return models.UpdateResult{}, database.ErrRoleAlreadyRequested
	}
	u.Status = models.UserStatusRequested
	s.users[email] = u
	return models.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (s *MemStore) ApproveRole(_ context.Context, email string, role models.Role) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.UpdateResult{}, s.Fail
	}
	u, ok := s.users[email]
	if !ok {
		return models.UpdateResult{}, apperr.NotFound("user not found")
	}
	u.Role = role
	u.Status = models.UserStatusVerified
	s.users[email] = u
	return models.UpdateResult{Matched: 1, Modified: 1}, nil
}

// Plants

func (s *MemStore) ListPlants(_ context.Context) ([]models.Plant, error) {
	return s.listPlants(func(models.Plant) bool { return true })
}

func (s *MemStore) ListPlantsBySeller(_ context.Context, email string) ([]models.Plant, error) {
	return s.listPlants(func(p models.Plant) bool { return p.Seller.Email == email })
}

func (s *MemStore) listPlants(keep func(models.Plant) bool) ([]models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var out []models.Plant
	for _, p := range s.plants {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemStore) FindPlant(_ context.Context, id primitive.ObjectID) (*models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	p, ok := s.plants[id]
	if !ok {
		return nil, apperr.NotFound("plant not found")
	}
	return &p, nil
}

func (s *MemStore) CreatePlant(_ context.Context, plant models.Plant) (*models.Plant, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	plant.ID = primitive.NilObjectID
	p := s.PutPlant(plant)
	return &p, nil
}

func (s *MemStore) DeletePlant(_ context.Context, id primitive.ObjectID, sellerEmail string) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.DeleteResult{}, s.Fail
	}
	p, ok := s.plants[id]
	if !ok {
		return models.DeleteResult{}, apperr.NotFound("plant not found")
	}
	if p.Seller.Email != sellerEmail {
		return models.DeleteResult{}, apperr.Forbidden("only the owning seller can delete this plant")
	}
	delete(s.plants, id)
	return models.DeleteResult{Deleted: 1}, nil
}

func (s *MemStore) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int64) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.UpdateResult{}, s.Fail
	}
	p, ok := s.plants[id]
	if !ok {
		return models.UpdateResult{}, apperr.NotFound("plant not found")
	}
	if p.Quantity+delta < 0 {
		return models.UpdateResult{}, database.ErrInsufficientStock
	}
	p.Quantity += delta
	s.plants[id] = p
	return models.UpdateResult{Matched: 1, Modified: 1}, nil
}

// Orders

func (s *MemStore) CreateOrder(_ context.Context, order models.Order) (*models.Order, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.ID = primitive.NilObjectID
	o := s.PutOrder(order)
	return &o, nil
}

func (s *MemStore) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.UpdateResult{}, s.Fail
	}
	o, ok := s.orders[id]
	if !ok {
		return models.UpdateResult{}, apperr.NotFound("order not found")
	}
	modified := int64(0)
	if o.Status != status {
		modified = 1
	}
	o.Status = status
	s.orders[id] = o
	return models.UpdateResult{Matched: 1, Modified: modified}, nil
}

func (s *MemStore) DeleteOrder(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return models.DeleteResult{}, s.Fail
	}
	o, ok := s.orders[id]
	if !ok {
		return models.DeleteResult{}, apperr.NotFound("order not found")
	}
	if o.Status.Terminal() {
		return models.DeleteResult{}, database.ErrOrderDelivered
	}
	delete(s.orders, id)
	return models.DeleteResult{Deleted: 1}, nil
}

// Reports

func (s *MemStore) OrdersForCustomer(_ context.Context, email string) ([]models.OrderView, error) {
	return s.orderViews(func(o models.Order) bool { return o.Customer.Email == email })
}

func (s *MemStore) OrdersForSeller(_ context.Context, email string) ([]models.OrderView, error) {
	return s.orderViews(func(o models.Order) bool { return o.Seller == email })
}

// orderViews joins like the aggregation does: an order whose plantId is not
// a valid id, or points at no plant, is dropped.
func (s *MemStore) orderViews(keep func(models.Order) bool) ([]models.OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var out []models.OrderView
	for _, o := range s.sortedOrders() {
		if !keep(o) {
			continue
		}
		pid, err := primitive.ObjectIDFromHex(o.PlantID)
		if err != nil {
			continue
		}
		p, ok := s.plants[pid]
		if !ok {
			continue
		}
		out = append(out, models.OrderView{Order: o, Name: p.Name, Image: p.Image, Category: p.Category})
	}
	return out, nil
}

func (s *MemStore) AdminStats(_ context.Context) (*models.AdminStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}

	stats := &models.AdminStats{
		TotalUser:   int64(len(s.users)),
		TotalPlants: int64(len(s.plants)),
		ChartData:   []models.ChartPoint{},
	}

	byDate := make(map[string]*models.ChartPoint)
	for _, o := range s.sortedOrders() {
		stats.TotalRevenue += o.Price
		stats.TotalOrder++

		date := o.CreatedAt().UTC().Format("2006-01-02")
		pt, ok := byDate[date]
		if !ok {
			pt = &models.ChartPoint{Date: date}
			byDate[date] = pt
		}
		pt.Quantity += o.Quantity
		pt.Price += o.Price
		pt.Order++
	}
	for _, pt := range byDate {
		stats.ChartData = append(stats.ChartData, *pt)
	}
	sort.Slice(stats.ChartData, func(i, j int) bool {
		return strings.Compare(stats.ChartData[i].Date, stats.ChartData[j].Date) < 0
	})
	return stats, nil
}

func (s *MemStore) sortedOrders() []models.Order {
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}
