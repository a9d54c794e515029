package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/lib/pq" // For pq.Error
)

// SaleJournal durably records completed sales together with the stock movements they caused.
// RecordSale must either persist everything or nothing.
type SaleJournal interface {
	RecordSale(sale *models.Sale, movements []models.InventoryMovement) error
	RecordMovement(movement *models.InventoryMovement) error
}

type postgresSaleJournal struct {
	db *sql.DB
}

// NewPostgresSaleJournal creates a SaleJournal backed by PostgreSQL.
func NewPostgresSaleJournal(db *sql.DB) SaleJournal {
	return &postgresSaleJournal{db: db}
}

func (j *postgresSaleJournal) RecordSale(sale *models.Sale, movements []models.InventoryMovement) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting journal transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	orderJSON, err := json.Marshal(sale.Order)
	if err != nil {
		return fmt.Errorf("marshalling order %s: %w", sale.Order.ID, err)
	}

	var tableID sql.NullString
	if sale.Order.Destination.TableID != nil {
		tableID = sql.NullString{String: *sale.Order.Destination.TableID, Valid: true}
	}

	query := `INSERT INTO sales (id, order_id, order_type, table_id, total, payment_method, order_snapshot, sold_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.Exec(query,
		sale.ID, sale.Order.ID, sale.Order.OrderType, tableID,
		sale.Total.String(), sale.PaymentMethod, orderJSON, sale.Timestamp,
	)
	if err != nil {
		return wrapPQError("recording sale", err)
	}

	for i := range movements {
		if err := insertMovement(tx, &movements[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing sale %s: %v", ErrDatabaseError, sale.ID, err)
	}
	return nil
}

func (j *postgresSaleJournal) RecordMovement(movement *models.InventoryMovement) error {
	return insertMovement(j.db, movement)
}

func insertMovement(executor SQLExecutor, mv *models.InventoryMovement) error {
	query := `INSERT INTO inventory_movements
	            (id, inventory_item_id, movement_type, requested, quantity, previous_stock, new_stock, reference, reason, movement_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := executor.Exec(query,
		mv.ID, mv.InventoryItemID, mv.MovementType, mv.Requested, mv.Quantity,
		mv.PreviousStock, mv.NewStock, mv.Reference, mv.Reason, mv.MovementDate,
	)
	if err != nil {
		return wrapPQError("recording inventory movement", err)
	}
	return nil
}

func wrapPQError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
}

// NopJournal is used when no database is configured.
type NopJournal struct{}

func (NopJournal) RecordSale(*models.Sale, []models.InventoryMovement) error { return nil }

func (NopJournal) RecordMovement(*models.InventoryMovement) error { return nil }
