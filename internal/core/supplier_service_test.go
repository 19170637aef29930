package core_test

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"shopkeeper/internal/core"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

var supplierCols = []string{"id", "name", "contact_person", "phone", "address", "is_active", "created_at"}

func TestSupplierList_PagedAndSearched(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	svc := core.NewSupplierService(mock)

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM suppliers`).
		WithArgs("agro").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT id, name, contact_person, phone, address, is_active, created_at`).
		WithArgs("agro", core.PageSize, core.PageSize).
		WillReturnRows(pgxmock.NewRows(supplierCols).
			AddRow(7, "Agro Traders", "Ravi", "98765", "Market Rd", true, now))

	suppliers, pd, err := svc.List(ctx, core.ListQuery{Page: 2, Search: "agro"})
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	require.Equal(t, "Agro Traders", suppliers[0].Name)
	require.Equal(t, 2, pd.CurrentPage)
	require.Equal(t, 3, pd.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierSave_Create(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	svc := core.NewSupplierService(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO suppliers`).
		WithArgs("Agro Traders", "Ravi", "98765", "Market Rd").
		WillReturnRows(pgxmock.NewRows(supplierCols).
			AddRow(1, "Agro Traders", "Ravi", "98765", "Market Rd", true, now))

	v, err := svc.Save(context.Background(), core.SupplierInput{
		Name: "Agro Traders", ContactPerson: "Ravi", Phone: "98765", Address: "Market Rd",
	})
	require.NoError(t, err)
	require.Equal(t, 1, v.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierSave_UpdateMissing(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	svc := core.NewSupplierService(mock)

	mock.ExpectQuery(`UPDATE suppliers`).
		WithArgs(42, "Gone", "", "", "").
		WillReturnRows(pgxmock.NewRows(supplierCols))

	_, err := svc.Save(context.Background(), core.SupplierInput{ID: 42, Name: "Gone"})
	require.EqualError(t, err, "supplier 42 not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierDelete_NotFound(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	svc := core.NewSupplierService(mock)

	mock.ExpectExec(`UPDATE suppliers SET is_active = false`).
		WithArgs(9).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := svc.Delete(context.Background(), 9)
	require.EqualError(t, err, "supplier 9 not found")
	require.NoError(t, mock.ExpectationsWereMet())
}
