package db

import (
	"context"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// TenderCollection provides access to the tender pipeline.
type TenderCollection struct {
	tenders *collection[models.Tender]
}

// NewTenderCollection creates a tender collection over the given store.
func NewTenderCollection(store kv.Store) *TenderCollection {
	return &TenderCollection{
		tenders: &collection[models.Tender]{
			store: store,
			key:   keyTenders,
			kind:  "tender",
			seed:  fixtures.Tenders,
			id:    func(t models.Tender) string { return t.ID },
		},
	}
}

// List returns tenders, filtered to one status when status is non-empty.
func (t *TenderCollection) List(ctx context.Context, status models.TenderStatus) ([]models.Tender, error) {
	if status == "" {
		return t.tenders.List(ctx)
	}
	if !models.IsValidTenderStatus(status) {
		return nil, ValidationError{Field: "status", Reason: "unknown tender status " + string(status)}
	}
	return t.tenders.filter(ctx, func(tn models.Tender) bool {
		return tn.Status == status
	})
}

// GetByID returns one tender by id, or a NotFoundError.
func (t *TenderCollection) GetByID(ctx context.Context, id string) (models.Tender, error) {
	return t.tenders.getByID(ctx, id)
}

// Create tracks a new tender, defaulting to open status.
func (t *TenderCollection) Create(ctx context.Context, tn models.Tender) (models.Tender, error) {
	if tn.ReferenceNumber == "" {
		return models.Tender{}, ValidationError{Field: "referenceNumber", Reason: "required"}
	}
	if tn.Title == "" {
		return models.Tender{}, ValidationError{Field: "title", Reason: "required"}
	}
	if tn.ID == "" {
		tn.ID = newID("tnd")
	}
	if tn.Status == "" {
		tn.Status = models.TenderOpen
	}
	if !models.IsValidTenderStatus(tn.Status) {
		return models.Tender{}, ValidationError{Field: "status", Reason: "unknown tender status " + string(tn.Status)}
	}
	if err := t.tenders.append(ctx, tn); err != nil {
		return models.Tender{}, err
	}
	return tn, nil
}

// UpdateStatus moves a tender along the pipeline.
func (t *TenderCollection) UpdateStatus(ctx context.Context, id string, status models.TenderStatus) (models.Tender, error) {
	if !models.IsValidTenderStatus(status) {
		return models.Tender{}, ValidationError{Field: "status", Reason: "unknown tender status " + string(status)}
	}
	return t.tenders.patch(ctx, id, func(tn *models.Tender) {
		tn.Status = status
	})
}
