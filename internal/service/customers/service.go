package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acme/customer-service/internal/model"
	"github.com/acme/customer-service/internal/repository"
)

// Service sequences validation, duplicate-email checks, and persistence
// for customer records. It holds no state across requests; the store is
// the only seam, kept as an interface for tests.
type Service struct {
	repo repository.CustomersRepository
	log  *zap.Logger

	// clock is swappable in tests
	now func() time.Time
}

func New(repo repository.CustomersRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create validates the payload, enforces email uniqueness, stamps both
// timestamps to the same instant, and persists the record.
func (s *Service) Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Message: "Email already exists: " + req.Email}
	}

	c := model.NewCustomerFromRequest(req)
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Insert(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// lost the pre-check race; the unique index caught it
			return nil, &ConflictError{Message: "Email already exists: " + req.Email}
		}
		return nil, err
	}

	s.log.Info("customer created", zap.Int64("id", c.ID))
	return c, nil
}

// Get looks up one customer by id. Absence is a NotFoundError at this
// boundary.
func (s *Service) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, &NotFoundError{Message: fmt.Sprintf("Customer not found with ID: %d", id)}
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Message: fmt.Sprintf("Customer not found with ID: %d", id)}
	}
	return c, nil
}

// GetByEmail does an exact-match lookup on a trimmed email. Blank input
// is treated as a miss, not an error.
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &NotFoundError{Message: "Customer not found with email: " + email}
	}
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Message: "Customer not found with email: " + email}
	}
	return c, nil
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, &NotFoundError{Message: "Customer not found with phone: " + phone}
	}
	c, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &NotFoundError{Message: "Customer not found with phone: " + phone}
	}
	return c, nil
}

// Update loads the existing record, validates the payload, re-runs the
// duplicate-email check when the email changes (a customer may keep its
// own email), copies the mutable fields, and bumps updatedAt. id and
// createdAt are preserved.
func (s *Service) Update(ctx context.Context, id int64, req *model.CustomerRequest) (*model.Customer, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	if existing.Email != req.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Message: "Email already exists: " + req.Email}
		}
	}

	existing.ApplyRequest(req)
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &ConflictError{Message: "Email already exists: " + req.Email}
		}
		return nil, err
	}

	s.log.Info("customer updated", zap.Int64("id", existing.ID))
	return existing, nil
}

// Delete removes a customer permanently. Deleting an unknown id is a
// NotFoundError, so callers can tell "deleted" from "never existed".
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Message: fmt.Sprintf("Customer not found with ID: %d", id)}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("customer deleted", zap.Int64("id", id))
	return nil
}

func (s *Service) List(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListAll(ctx)
}

// Search is the legacy unbounded path: blank terms return everything,
// otherwise first/last name contains the term (case-sensitive).
func (s *Service) Search(ctx context.Context, term string) ([]model.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.ListAll(ctx)
	}
	return s.repo.SearchByName(ctx, term)
}

// Page returns one page of customers plus the total match count. A
// blank term yields an unfiltered page; otherwise the term is matched
// case-insensitively across first name, last name, email, phone and
// address.
func (s *Service) Page(ctx context.Context, term string, pr model.PageRequest) ([]model.Customer, int64, error) {
	return s.repo.ListPage(ctx, strings.TrimSpace(term), pr)
}

// ExistsByEmail reports whether any customer owns the email. Blank
// input is false, never an error.
func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	return s.repo.ExistsByEmail(ctx, email)
}

func (s *Service) CountByLastName(ctx context.Context, lastName string) (int64, error) {
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return 0, nil
	}
	return s.repo.CountByLastName(ctx, lastName)
}

// gmailDomain is the fixed substring behind the gmailUsers statistic.
const gmailDomain = "gmail.com"

// Stats recomputes the summary on every call; there is no caching or
// staleness window.
func (s *Service) Stats(ctx context.Context) (*model.CustomerStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	gmail, err := s.repo.CountByEmailDomain(ctx, gmailDomain)
	if err != nil {
		return nil, err
	}
	return &model.CustomerStats{TotalCustomers: total, GmailUsers: gmail}, nil
}
