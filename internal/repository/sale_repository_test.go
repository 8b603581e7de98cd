package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

func setupSaleRepoMock(t *testing.T) (SaleRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewSaleRepository(db), mock
}

func ingredientRows(inventoryItemID uint64, usage string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "menu_item_id", "name", "quantity", "unit", "notes", "inventory_item_id"}).
		AddRow(1, 7, "Ground Beef", usage, "kg", "", inventoryItemID)
}

// The decrement must be a single UPDATE of the form
// quantity = quantity - amount, not a read-modify-write, so concurrent
// sales against the same item cannot lose updates.
func TestSaleRepository_RecordSale_SingleStatementDecrement(t *testing.T) {
	repo, mock := setupSaleRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE menu_item_id`).
		WillReturnRows(ingredientRows(42, "0.2"))
	mock.ExpectExec(`UPDATE "inventory_items" SET .*"quantity"=quantity - \$`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	skipped, err := repo.RecordSale(&models.Sale{
		MenuItemID:    7,
		QuantitySold:  2,
		Establishment: "Bison Den",
		Date:          time.Now(),
	})
	require.NoError(t, err)
	require.Empty(t, skipped)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepository_RecordSale_ReportsDanglingLink(t *testing.T) {
	repo, mock := setupSaleRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE menu_item_id`).
		WillReturnRows(ingredientRows(42, "1"))
	// Zero rows touched: the linked inventory item is gone.
	mock.ExpectExec(`UPDATE "inventory_items" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	skipped, err := repo.RecordSale(&models.Sale{
		MenuItemID:   7,
		QuantitySold: 1,
		Date:         time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	require.Equal(t, uint64(42), *skipped[0].InventoryItemID)

	require.NoError(t, mock.ExpectationsWereMet())
}
