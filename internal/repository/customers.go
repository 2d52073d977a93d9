package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/acme/customer-service/internal/model"
)

// ErrDuplicateEmail is returned when the UNIQUE KEY on email rejects a
// write. It backstops the service-level pre-check: two concurrent
// creates can both pass ExistsByEmail before either commits.
var ErrDuplicateEmail = errors.New("duplicate email")

const customerColumns = `id, first_name, last_name, email, phone, address, created_at, updated_at`

type CustomersRepository interface {
	Insert(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	SearchByName(ctx context.Context, term string) ([]model.Customer, error)
	ListPage(ctx context.Context, term string, pr model.PageRequest) ([]model.Customer, int64, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByLastName(ctx context.Context, lastName string) (int64, error)
	CountByEmailDomain(ctx context.Context, domain string) (int64, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

func (r *CustomersRepositoryImpl) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// translateWriteErr maps MySQL duplicate-key errors (1062) on the email
// unique index to ErrDuplicateEmail.
func translateWriteErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicateEmail
	}
	return err
}

// Insert persists a new customer in a single transaction and assigns
// the generated id to c.
func (r *CustomersRepositoryImpl) Insert(ctx context.Context, c *model.Customer) error {
	const q = `
		INSERT INTO customers
		    (first_name, last_name, email, phone, address, created_at, updated_at)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?)
	`
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return translateWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
}

// Update rewrites the mutable columns of an existing row. id and
// created_at are never part of the SET list.
func (r *CustomersRepositoryImpl) Update(ctx context.Context, c *model.Customer) error {
	const q = `
		UPDATE customers
		   SET first_name = ?, last_name = ?, email = ?, phone = ?, address = ?, updated_at = ?
		 WHERE id = ?
	`
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.UpdatedAt, c.ID,
		)
		return translateWriteErr(err)
	})
}

func (r *CustomersRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
		return err
	})
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *CustomersRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.getOne(ctx, `WHERE email = ?`, email)
}

func (r *CustomersRepositoryImpl) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	return r.getOne(ctx, `WHERE phone = ?`, phone)
}

func (r *CustomersRepositoryImpl) getOne(ctx context.Context, where string, arg any) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c,
		`SELECT `+customerColumns+` FROM customers `+where+` LIMIT 1`, arg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomersRepositoryImpl) ListAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.db.SelectContext(ctx, &customers,
		`SELECT `+customerColumns+` FROM customers ORDER BY id`)
	return customers, err
}

// SearchByName is the legacy unbounded search: first or last name
// contains the term, case-sensitive.
func (r *CustomersRepositoryImpl) SearchByName(ctx context.Context, term string) ([]model.Customer, error) {
	customers := []model.Customer{}
	pat := "%" + escapeLike(term) + "%"
	err := r.db.SelectContext(ctx, &customers, `
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE first_name LIKE BINARY ? OR last_name LIKE BINARY ?
		 ORDER BY id
	`, pat, pat)
	return customers, err
}

// ListPage returns one sorted page plus the total match count. A blank
// term yields an unfiltered page; otherwise the term is matched
// case-insensitively against first name, last name, email, phone and
// address.
func (r *CustomersRepositoryImpl) ListPage(ctx context.Context, term string, pr model.PageRequest) ([]model.Customer, int64, error) {
	where := ""
	args := []any{}
	if term != "" {
		where = `
		 WHERE LOWER(first_name) LIKE ?
		    OR LOWER(last_name)  LIKE ?
		    OR LOWER(email)      LIKE ?
		    OR LOWER(phone)      LIKE ?
		    OR LOWER(address)    LIKE ?`
		pat := "%" + strings.ToLower(escapeLike(term)) + "%"
		args = append(args, pat, pat, pat, pat, pat)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM customers`+where, args...); err != nil {
		return nil, 0, err
	}

	customers := []model.Customer{}
	// pr.OrderBy() only emits whitelisted column names
	listQ := `SELECT ` + customerColumns + ` FROM customers` + where +
		` ORDER BY ` + pr.OrderBy() + ` LIMIT ? OFFSET ?`
	listArgs := append(args, pr.Size, pr.Offset())
	if err := r.db.SelectContext(ctx, &customers, listQ, listArgs...); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *CustomersRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = ?)`, id)
	return exists, err
}

func (r *CustomersRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE email = ?)`, email)
	return exists, err
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`)
	return n, err
}

func (r *CustomersRepositoryImpl) CountByLastName(ctx context.Context, lastName string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM customers WHERE last_name = ?`, lastName)
	return n, err
}

func (r *CustomersRepositoryImpl) CountByEmailDomain(ctx context.Context, domain string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM customers WHERE email LIKE ?`, "%"+escapeLike(domain)+"%")
	return n, err
}

// escapeLike neutralizes LIKE wildcards in caller-supplied terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
