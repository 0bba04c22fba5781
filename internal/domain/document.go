package domain

import "time"

type DocumentOwnerType string

const (
	DocumentOwnerCustomer    DocumentOwnerType = "customer"
	DocumentOwnerReservation DocumentOwnerType = "reservation"
	DocumentOwnerSupplier    DocumentOwnerType = "supplier"
)

func (t DocumentOwnerType) Valid() bool {
	switch t {
	case DocumentOwnerCustomer, DocumentOwnerReservation, DocumentOwnerSupplier:
		return true
	}
	return false
}

type Document struct {
	ID          int32             `json:"id"`
	OwnerType   DocumentOwnerType `json:"owner_type"`
	OwnerID     int32             `json:"owner_id"`
	FileName    string            `json:"file_name"`
	ContentType string            `json:"content_type"`
	StorageKey  string            `json:"-"`
	SizeBytes   int64             `json:"size_bytes"`
	CreatedOn   time.Time         `json:"created_on"`
}
