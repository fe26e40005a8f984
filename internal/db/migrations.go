package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Deliveries carry no foreign key to couriers: removing a courier leaves its
// deliveries in place.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS couriers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		courier_id UUID NOT NULL,
		date DATE NOT NULL,
		package_count INTEGER NOT NULL CHECK (package_count >= 0),
		additional_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_value NUMERIC(18,2) NOT NULL,
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'deliveries' AND column_name = 'paid') THEN
			ALTER TABLE deliveries ADD COLUMN paid BOOLEAN NOT NULL DEFAULT FALSE;
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_courier_id ON deliveries (courier_id);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_date ON deliveries (date);`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_paid ON deliveries (paid);`,
	`CREATE TABLE IF NOT EXISTS payroll_closings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		courier_id UUID NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		delivery_count INTEGER NOT NULL,
		total_packages INTEGER NOT NULL,
		total_value NUMERIC(18,2) NOT NULL,
		total_additional NUMERIC(18,2) NOT NULL,
		paid_value NUMERIC(18,2) NOT NULL,
		unpaid_value NUMERIC(18,2) NOT NULL,
		closed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_payroll_closings_period ON payroll_closings (courier_id, period_start, period_end);`,
}

func RunMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
