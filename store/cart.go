package store

import (
	"sync"

	"storefront-order-api/models"
)

// DefaultCartID is used when a request carries no cart identifier.
const DefaultCartID = "default"

// CartStore owns every shopper cart. Mutations are synchronous: the lock is
// held across the in-memory update and the snapshot write, so callers never
// observe a partially applied mutation. Each mutation returns the
// repository's save error instead of swallowing it.
type CartStore struct {
	mu    sync.Mutex
	repo  *SnapshotRepository
	carts map[string]*models.CartState
}

func NewCartStore(repo *SnapshotRepository) *CartStore {
	return &CartStore{
		repo:  repo,
		carts: make(map[string]*models.CartState),
	}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

// cart returns the in-memory cart for cartID, restoring the persisted
// snapshot on first access. Callers must hold mu.
func (s *CartStore) cart(cartID string) (*models.CartState, error) {
	if c, ok := s.carts[cartID]; ok {
		return c, nil
	}
	c := &models.CartState{}
	if _, err := s.repo.Load(cartKey(cartID), c); err != nil {
		return nil, err
	}
	s.carts[cartID] = c
	return c, nil
}

func (s *CartStore) save(cartID string, c *models.CartState) error {
	return s.repo.Save(cartKey(cartID), c)
}

// AddMenu puts a line for the item into the cart with exactly the given
// quantity. Any existing line for the same menu id is removed first: adding
// an already-present item replaces its quantity rather than summing it.
func (s *CartStore) AddMenu(cartID string, item models.MenuItem, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	lines := c.Lines[:0]
	for _, line := range c.Lines {
		if line.MenuItem.ID != item.ID {
			lines = append(lines, line)
		}
	}
	c.Lines = append(lines, models.CartLine{MenuItem: item, Quantity: quantity})
	return s.save(cartID, c)
}

// IncreaseQuantity bumps a line's quantity by one; missing lines are a no-op.
func (s *CartStore) IncreaseQuantity(cartID string, menuID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItem.ID == menuID {
			c.Lines[i].Quantity++
			return s.save(cartID, c)
		}
	}
	return nil
}

// DecreaseQuantity lowers a line's quantity by one, removing the line
// entirely at quantity one. A zero-quantity line never persists.
func (s *CartStore) DecreaseQuantity(cartID string, menuID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItem.ID != menuID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
		} else {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
		return s.save(cartID, c)
	}
	return nil
}

// RemoveMenu drops the line for menuID unconditionally; absent lines are a
// no-op.
func (s *CartStore) RemoveMenu(cartID string, menuID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItem.ID == menuID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return s.save(cartID, c)
		}
	}
	return nil
}

// GetMenuByID returns the cart line for menuID, with ok=false when the item
// is not in the cart.
func (s *CartStore) GetMenuByID(cartID string, menuID uint) (models.CartLine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return models.CartLine{}, false, err
	}
	for _, line := range c.Lines {
		if line.MenuItem.ID == menuID {
			return line, true, nil
		}
	}
	return models.CartLine{}, false, nil
}

// SetTotal overwrites the cached total with a caller-computed value; the
// store itself never recomputes it on mutation.
func (s *CartStore) SetTotal(cartID string, total float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	c.Total = total
	return s.save(cartID, c)
}

// ClearCart resets the cart to its empty initial state.
func (s *CartStore) ClearCart(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return err
	}
	c.Lines = nil
	c.Total = 0
	return s.save(cartID, c)
}

// Snapshot returns a deep copy of the cart state, safe to use after the
// store keeps mutating.
func (s *CartStore) Snapshot(cartID string) (models.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cart(cartID)
	if err != nil {
		return models.CartState{}, err
	}
	out := models.CartState{Total: c.Total}
	out.Lines = append(out.Lines, c.Lines...)
	return out, nil
}
