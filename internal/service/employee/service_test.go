package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/service/servicetest"
)

func newTestService(t *testing.T, store *servicetest.Store) *EmployeeServiceImpl {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("directory-key"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewEmployeeService(store.EmployeeRepo(), string(hash))
}

func TestSyncReplacesDirectory(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(t, store)

	resp, err := svc.Sync(context.Background(), employee.SyncRequest{
		Key: "directory-key",
		Employees: []employee.SyncRow{
			{NIK: "1001", Name: "Budi Santoso", Position: "Operator", Area: "Gudang A"},
			{NIK: "1002", Name: "Siti Rahma", Position: "Operator", Area: "Gudang B"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Synced)

	emp, err := svc.Get(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", emp.Name)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSyncRejectsWrongKey(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(t, store)

	_, err := svc.Sync(context.Background(), employee.SyncRequest{
		Key:       "wrong",
		Employees: []employee.SyncRow{{NIK: "1001", Name: "Budi Santoso"}},
	})
	assert.ErrorIs(t, err, employee.ErrInvalidSyncKey)
}

func TestGetUnknownEmployee(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestService(t, store)

	_, err := svc.Get(context.Background(), "9999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

var _ employee.Service = (*EmployeeServiceImpl)(nil)
