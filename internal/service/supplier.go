package service

import (
	"context"
	"fmt"
	"strings"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) CreateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	if err := s.supplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}
	logger.Info("Supplier created", "supplierID", sup.ID, "name", sup.Name)
	return sup, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id int32) (*domain.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *supplierService) UpdateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	existing, err := s.supplierRepo.GetByID(ctx, sup.ID)
	if err != nil {
		return nil, err
	}
	sup.CreatedOn = existing.CreatedOn
	if err := s.supplierRepo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	return s.supplierRepo.List(ctx, activeOnly)
}

func (s *supplierService) CreateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, fmt.Errorf("%w: branch name is required", domain.ErrInvalidInput)
	}
	if _, err := s.supplierRepo.GetByID(ctx, b.SupplierID); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.CreateBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *supplierService) UpdateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, fmt.Errorf("%w: branch name is required", domain.ErrInvalidInput)
	}
	existing, err := s.supplierRepo.GetBranch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	// branches never move between suppliers
	b.SupplierID = existing.SupplierID
	b.CreatedOn = existing.CreatedOn
	if err := s.supplierRepo.UpdateBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *supplierService) ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error) {
	if _, err := s.supplierRepo.GetByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.supplierRepo.ListBranches(ctx, supplierID)
}
