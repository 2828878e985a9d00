package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
)

// MemoryStore is an in-memory implementation of the relational stores,
// sharing one id space and one lock the way a single database would. It
// backs the test suite and local runs without a MySQL instance, and
// enforces the same unique keys and the product-delete cascade.
type MemoryStore struct {
	mu sync.Mutex

	users        map[int]*entity.User
	rooms        map[int]*entity.Room
	products     map[int]*entity.Product
	userProducts map[int]*entity.UserProduct
	memberships  map[[2]int]bool // (user_id, room_id)

	nextUserID        int
	nextRoomID        int
	nextProductID     int
	nextUserProductID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:             map[int]*entity.User{},
		rooms:             map[int]*entity.Room{},
		products:          map[int]*entity.Product{},
		userProducts:      map[int]*entity.UserProduct{},
		memberships:       map[[2]int]bool{},
		nextUserID:        1,
		nextRoomID:        1,
		nextProductID:     1,
		nextUserProductID: 1,
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, ErrDuplicate
		}
	}

	user.ID = m.nextUserID
	m.nextUserID++
	clone := *user
	m.users[user.ID] = &clone
	return user, nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id int) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateRoom(_ context.Context, room *entity.Room) (*entity.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room.ID = m.nextRoomID
	m.nextRoomID++
	clone := *room
	m.rooms[room.ID] = &clone
	m.memberships[[2]int{room.UserID, room.ID}] = true
	return room, nil
}

func (m *MemoryStore) GetRoomByID(_ context.Context, id int) (*entity.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *room
	return &clone, nil
}

func (m *MemoryStore) UpdateRoomName(_ context.Context, id int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Name = name
	return nil
}

func (m *MemoryStore) AddMember(_ context.Context, userID, roomID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.memberships[[2]int{userID, roomID}] = true
	return nil
}

func (m *MemoryStore) ListRoomsByUser(_ context.Context, userID, limit, offset int, orderBy string) ([]*entity.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms := []*entity.Room{}
	for key := range m.memberships {
		if key[0] != userID {
			continue
		}
		if room, ok := m.rooms[key[1]]; ok {
			clone := *room
			rooms = append(rooms, &clone)
		}
	}

	sort.Slice(rooms, func(i, j int) bool {
		switch orderBy {
		case "name":
			return rooms[i].Name < rooms[j].Name
		case "user_id":
			return rooms[i].UserID < rooms[j].UserID
		default:
			return rooms[i].ID < rooms[j].ID
		}
	})

	return page(rooms, limit, offset), nil
}

func (m *MemoryStore) CountRoomsByUser(_ context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for key := range m.memberships {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.Name == product.Name && p.RoomID == product.RoomID {
			return nil, ErrDuplicate
		}
	}

	product.ID = m.nextProductID
	m.nextProductID++
	clone := *product
	m.products[product.ID] = &clone
	return product, nil
}

func (m *MemoryStore) GetProductByID(_ context.Context, id int) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *MemoryStore) DeleteProduct(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)

	// cascade, mirroring ON DELETE CASCADE on user_products.product_id
	for upID, up := range m.userProducts {
		if up.ProductID == id {
			delete(m.userProducts, upID)
		}
	}
	return nil
}

func (m *MemoryStore) ListProductsByUser(_ context.Context, userID, limit, offset int, orderBy string) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	products := []*entity.Product{}
	for _, up := range m.userProducts {
		if up.UserID != userID {
			continue
		}
		if product, ok := m.products[up.ProductID]; ok {
			clone := *product
			products = append(products, &clone)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		switch orderBy {
		case "name":
			return products[i].Name < products[j].Name
		case "price":
			return products[i].Price < products[j].Price
		case "room_id":
			return products[i].RoomID < products[j].RoomID
		default:
			return products[i].ID < products[j].ID
		}
	})

	return page(products, limit, offset), nil
}

func (m *MemoryStore) CountProductsByUser(_ context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, up := range m.userProducts {
		if up.UserID != userID {
			continue
		}
		if _, ok := m.products[up.ProductID]; ok {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateUserProduct(_ context.Context, up *entity.UserProduct) (*entity.UserProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.userProducts {
		if existing.UserID == up.UserID && existing.ProductID == up.ProductID {
			return nil, ErrDuplicate
		}
	}

	up.ID = m.nextUserProductID
	m.nextUserProductID++
	clone := *up
	m.userProducts[up.ID] = &clone
	return up, nil
}

func (m *MemoryStore) GetUserProductByPair(_ context.Context, userID, productID int) (*entity.UserProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, up := range m.userProducts {
		if up.UserID == userID && up.ProductID == productID {
			clone := *up
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUserProductStatus(_ context.Context, id int, status string) (*entity.UserProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	up, ok := m.userProducts[id]
	if !ok {
		return nil, ErrNotFound
	}
	up.Status = status
	clone := *up
	return &clone, nil
}

func (m *MemoryStore) ListUserProductsByUser(_ context.Context, userID int) ([]*entity.UserProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := []*entity.UserProduct{}
	for _, up := range m.userProducts {
		if up.UserID == userID {
			clone := *up
			items = append(items, &clone)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) AggregateUserProductsByRoom(_ context.Context, roomID int) ([]*entity.RoomUserProducts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byUser := map[int][]int{}
	for _, up := range m.userProducts {
		product, ok := m.products[up.ProductID]
		if !ok || product.RoomID != roomID {
			continue
		}
		byUser[up.UserID] = append(byUser[up.UserID], up.ProductID)
	}

	userIDs := make([]int, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Ints(userIDs)

	groups := []*entity.RoomUserProducts{}
	for _, userID := range userIDs {
		productIDs := byUser[userID]
		sort.Ints(productIDs)
		groups = append(groups, &entity.RoomUserProducts{UserID: userID, ProductIDs: productIDs})
	}
	return groups, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// MemorySessionStore is the in-memory counterpart of RedisSessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
}

type sessionEntry struct {
	userID    int
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]sessionEntry{}}
}

func (s *MemorySessionStore) SaveSession(_ context.Context, token string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = sessionEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) ResolveSession(_ context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return 0, ErrNotFound
	}
	return entry.userID, nil
}
