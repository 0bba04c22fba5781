package http

import (
	"net/http"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

type SupplierHandler struct {
	supplierSvc service.SupplierService
}

func NewSupplierHandler(supplierSvc service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierSvc: supplierSvc}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	suppliers, err := h.supplierSvc.ListSuppliers(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suppliers": suppliers})
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s domain.Supplier
	if err := decodeJSON(w, r, &s); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.supplierSvc.CreateSupplier(r.Context(), &s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.supplierSvc.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var s domain.Supplier
	if err := decodeJSON(w, r, &s); err != nil {
		writeError(w, r, err)
		return
	}
	s.ID = id
	updated, err := h.supplierSvc.UpdateSupplier(r.Context(), &s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SupplierHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	branches, err := h.supplierSvc.ListBranches(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if branches == nil {
		branches = []domain.Branch{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"branches": branches})
}

func (h *SupplierHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var b domain.Branch
	if err := decodeJSON(w, r, &b); err != nil {
		writeError(w, r, err)
		return
	}
	b.SupplierID = id
	created, err := h.supplierSvc.CreateBranch(r.Context(), &b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SupplierHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var b domain.Branch
	if err := decodeJSON(w, r, &b); err != nil {
		writeError(w, r, err)
		return
	}
	b.ID = id
	updated, err := h.supplierSvc.UpdateBranch(r.Context(), &b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
