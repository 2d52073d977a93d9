package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/acme/customer-service/internal/config"
	"github.com/acme/customer-service/internal/db"
	"github.com/acme/customer-service/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo customers...")

		if err := seedCustomers(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedCustomers inserts 5 deterministic demo customers (idempotent).
func seedCustomers(dbx *sqlx.DB) error {
	demo := []model.Customer{
		{FirstName: "Jack", LastName: "Bauer", Email: "jack.bauer@ctu.gov", Phone: "555-0101", Address: "1 Counter Terrorist Way, Los Angeles"},
		{FirstName: "Chloe", LastName: "O'Brian", Email: "chloe.obrian@gmail.com", Phone: "555-0102"},
		{FirstName: "Kim", LastName: "Bauer", Email: "kim.bauer@gmail.com"},
		{FirstName: "David", LastName: "Palmer", Email: "david.palmer@whitehouse.gov", Phone: "555-0104", Address: "1600 Pennsylvania Ave, Washington DC"},
		{FirstName: "Michelle", LastName: "Dessler", Email: "michelle.dessler@ctu.gov"},
	}

	// idempotent upsert based on email (UNIQUE)
	const q = `
INSERT INTO customers
    (first_name, last_name, email, phone, address, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    first_name = VALUES(first_name),
    last_name  = VALUES(last_name),
    phone      = VALUES(phone),
    address    = VALUES(address),
    updated_at = VALUES(updated_at)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, c := range demo {
		if _, err := tx.Exec(q, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, now, now); err != nil {
			return fmt.Errorf("insert customer %q: %w", c.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}
