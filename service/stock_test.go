package service

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryRow(id, productID uint, quantity, threshold int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "product_id", "quantity", "min_threshold", "purchase_price",
		"expiration_date", "last_restock_date", "created_at", "updated_at",
	}).AddRow(id, productID, quantity, threshold, nil, nil, nil, now, now)
}

func TestAddStock(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(inventoryRow(3, 1, 10, 5))
	mock.ExpectExec("UPDATE `inventory`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `stock_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := AddStock(db, 1, 24, 2, "weekly delivery")
	require.NoError(t, err)

	assert.Equal(t, 34, res.Inventory.Quantity)
	assert.NotNil(t, res.Inventory.LastRestockDate)
	assert.Equal(t, 24, res.Movement.Quantity)
	assert.Equal(t, "add", string(res.Movement.ActionType))
	assert.Equal(t, uint(2), res.Movement.PerformedByID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStock_InvalidQuantity(t *testing.T) {
	db, _, cleanup := newMockDB(t)
	defer cleanup()

	_, err := AddStock(db, 1, 0, 2, "")
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestRemoveStock(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(inventoryRow(3, 1, 10, 5))
	mock.ExpectExec("UPDATE `inventory`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `stock_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	txID := uint(42)
	res, err := RemoveStock(db, 1, 4, 2, "café order", &txID)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Inventory.Quantity)
	assert.Equal(t, -4, res.Movement.Quantity)
	assert.Equal(t, "remove", string(res.Movement.ActionType))
	require.NotNil(t, res.Movement.TransactionID)
	assert.Equal(t, uint(42), *res.Movement.TransactionID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveStock_Insufficient(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	// The removal must abort before any write: no inventory update, no movement.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(inventoryRow(3, 1, 2, 5))
	mock.ExpectRollback()

	_, err := RemoveStock(db, 1, 5, 2, "", nil)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveStock_NoInventory(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectRollback()

	_, err := RemoveStock(db, 99, 1, 2, "", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock_DownToZero(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(inventoryRow(3, 1, 12, 5))
	mock.ExpectExec("UPDATE `inventory`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `stock_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := AdjustStock(db, 1, 0, 2, "inventory count")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Inventory.Quantity)
	assert.Equal(t, -12, res.Movement.Quantity)
	assert.Equal(t, "adjust", string(res.Movement.ActionType))
	// stock went down, restock date untouched
	assert.Nil(t, res.Inventory.LastRestockDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock_ZeroDeltaStillLogged(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `inventory` .*FOR UPDATE").
		WillReturnRows(inventoryRow(3, 1, 8, 5))
	mock.ExpectExec("UPDATE `inventory`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `stock_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := AdjustStock(db, 1, 8, 2, "recount, no change")
	require.NoError(t, err)

	assert.Equal(t, 8, res.Inventory.Quantity)
	assert.Equal(t, 0, res.Movement.Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}
