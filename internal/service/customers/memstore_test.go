package customers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/acme/customer-service/internal/model"
	"github.com/acme/customer-service/internal/repository"
)

// memStore is an in-memory CustomersRepository for tests. It mirrors
// the MySQL implementation's contract, including the unique-email
// backstop on writes.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Customer
}

var _ repository.CustomersRepository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{rows: map[int64]model.Customer{}}
}

func (s *memStore) Insert(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == c.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = *c
	return nil
}

func (s *memStore) Update(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if id != c.ID && row.Email == c.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.rows[c.ID] = *c
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		c := row
		return &c, nil
	}
	return nil, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	return s.find(func(c model.Customer) bool { return c.Email == email })
}

func (s *memStore) GetByPhone(_ context.Context, phone string) (*model.Customer, error) {
	return s.find(func(c model.Customer) bool { return c.Phone == phone })
}

func (s *memStore) find(match func(model.Customer) bool) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if match(row) {
			c := row
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListAll(_ context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(model.Customer) bool { return true }, "id", false), nil
}

func (s *memStore) SearchByName(_ context.Context, term string) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(c model.Customer) bool {
		return strings.Contains(c.FirstName, term) || strings.Contains(c.LastName, term)
	}, "id", false), nil
}

func (s *memStore) ListPage(_ context.Context, term string, pr model.PageRequest) ([]model.Customer, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	matched := s.sorted(func(c model.Customer) bool {
		if needle == "" {
			return true
		}
		for _, field := range []string{c.FirstName, c.LastName, c.Email, c.Phone, c.Address} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}, pr.SortColumn, pr.SortDesc)

	total := int64(len(matched))
	start := pr.Offset()
	if start >= len(matched) {
		return []model.Customer{}, total, nil
	}
	end := start + pr.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memStore) sorted(match func(model.Customer) bool, column string, desc bool) []model.Customer {
	out := []model.Customer{}
	for _, row := range s.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch column {
		case "first_name":
			less = out[i].FirstName < out[j].FirstName
		case "last_name":
			less = out[i].LastName < out[j].LastName
		case "email":
			less = out[i].Email < out[j].Email
		default:
			less = out[i].ID < out[j].ID
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

func (s *memStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok, nil
}

func (s *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	c, err := s.GetByEmail(context.Background(), email)
	return c != nil, err
}

func (s *memStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

func (s *memStore) CountByLastName(_ context.Context, lastName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if row.LastName == lastName {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountByEmailDomain(_ context.Context, domain string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if strings.Contains(row.Email, domain) {
			n++
		}
	}
	return n, nil
}
