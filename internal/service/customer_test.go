package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

func TestCustomerService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create normalizes input", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil)
		svc := service.NewCustomerService(repo)

		c, err := svc.CreateCustomer(ctx, &domain.Customer{FirstName: " Dana ", Email: " Dana@Example.COM "})
		require.NoError(t, err)
		assert.Equal(t, "Dana", c.FirstName)
		assert.Equal(t, "dana@example.com", c.Email)
	})

	t.Run("Create requires a name", func(t *testing.T) {
		svc := service.NewCustomerService(new(MockCustomerRepo))
		_, err := svc.CreateCustomer(ctx, &domain.Customer{Phone: "050"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Update missing customer", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		repo.On("GetByID", ctx, int32(4)).Return(nil, domain.ErrNotFound)
		svc := service.NewCustomerService(repo)

		_, err := svc.UpdateCustomer(ctx, &domain.Customer{ID: 4, FirstName: "X"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Search trims the query", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		repo.On("List", ctx, "levi", int32(1), int32(20)).Return([]domain.Customer{{ID: 1}}, int32(1), nil)
		svc := service.NewCustomerService(repo)

		list, count, err := svc.SearchCustomers(ctx, "  levi ", 1, 20)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, int32(1), count)
	})
}

func TestSupplierService_Branches(t *testing.T) {
	ctx := context.Background()

	t.Run("Create branch for unknown supplier", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetByID", ctx, int32(9)).Return(nil, domain.ErrNotFound)
		svc := service.NewSupplierService(repo)

		_, err := svc.CreateBranch(ctx, &domain.Branch{SupplierID: 9, Name: "Airport"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update keeps the owning supplier", func(t *testing.T) {
		repo := new(MockSupplierRepo)
		repo.On("GetBranch", ctx, int32(3)).Return(&domain.Branch{ID: 3, SupplierID: 2, Name: "Old"}, nil)
		repo.On("UpdateBranch", ctx, mock.MatchedBy(func(b *domain.Branch) bool { return b.SupplierID == 2 })).Return(nil)
		svc := service.NewSupplierService(repo)

		b, err := svc.UpdateBranch(ctx, &domain.Branch{ID: 3, SupplierID: 7, Name: "Ben Gurion"})
		require.NoError(t, err)
		assert.Equal(t, int32(2), b.SupplierID)
		repo.AssertExpectations(t)
	})

	t.Run("Supplier name required", func(t *testing.T) {
		svc := service.NewSupplierService(new(MockSupplierRepo))
		_, err := svc.CreateSupplier(ctx, &domain.Supplier{Name: "  "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
