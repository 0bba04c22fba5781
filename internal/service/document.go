package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/storage"
)

type documentService struct {
	documentRepo    repository.DocumentRepository
	customerRepo    repository.CustomerRepository
	supplierRepo    repository.SupplierRepository
	reservationRepo repository.ReservationRepository
	store           storage.Storage
	maxBytes        int64
	allowedTypes    map[string]bool
}

// NewDocumentService stores uploads through store. An empty allowedTypes
// accepts any content type.
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	reservationRepo repository.ReservationRepository,
	store storage.Storage,
	maxBytes int64,
	allowedTypes []string,
) DocumentService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &documentService{
		documentRepo:    documentRepo,
		customerRepo:    customerRepo,
		supplierRepo:    supplierRepo,
		reservationRepo: reservationRepo,
		store:           store,
		maxBytes:        maxBytes,
		allowedTypes:    allowed,
	}
}

func (s *documentService) checkOwner(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) error {
	var err error
	switch ownerType {
	case domain.DocumentOwnerCustomer:
		_, err = s.customerRepo.GetByID(ctx, ownerID)
	case domain.DocumentOwnerSupplier:
		_, err = s.supplierRepo.GetByID(ctx, ownerID)
	case domain.DocumentOwnerReservation:
		_, err = s.reservationRepo.GetByID(ctx, ownerID)
	default:
		return fmt.Errorf("%w: unknown owner type %q", domain.ErrInvalidInput, ownerType)
	}
	return referenceError(string(ownerType), ownerID, err)
}

func (s *documentService) Upload(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32, fileName, contentType string, r io.Reader) (*domain.Document, error) {
	logger.EnterMethod("documentService.Upload", "ownerType", ownerType, "ownerID", ownerID, "fileName", fileName)

	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		err := fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if len(s.allowedTypes) > 0 && !s.allowedTypes[contentType] {
		err := fmt.Errorf("%w: content type %q is not allowed", domain.ErrInvalidInput, contentType)
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}

	key := storage.NewKey(path.Join("documents", string(ownerType), strconv.Itoa(int(ownerID))), fileName)
	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	size, err := s.store.Save(ctx, key, src)
	if err != nil {
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		_ = s.store.Delete(ctx, key)
		err := fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, s.maxBytes)
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}

	doc := &domain.Document{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		FileName:    fileName,
		ContentType: contentType,
		StorageKey:  key,
		SizeBytes:   size,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		_ = s.store.Delete(ctx, key)
		logger.ExitMethodWithError("documentService.Upload", err)
		return nil, err
	}

	logger.ExitMethod("documentService.Upload", "documentID", doc.ID, "size", size)
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, id int32) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			logger.Error("Document file is missing from storage", "documentID", id, "key", doc.StorageKey)
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	return doc, rc, nil
}

func (s *documentService) List(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error) {
	if !ownerType.Valid() {
		return nil, fmt.Errorf("%w: unknown owner type %q", domain.ErrInvalidInput, ownerType)
	}
	docs, err := s.documentRepo.ListByOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

func (s *documentService) Delete(ctx context.Context, id int32) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		logger.Warn("Failed to delete document file", "documentID", id, "key", doc.StorageKey, "error", err)
	}
	return nil
}
