package db

import (
	"context"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// BillingCollection provides access to the invoice book.
type BillingCollection struct {
	invoices *collection[models.Invoice]
}

// NewBillingCollection creates a billing collection over the given store.
func NewBillingCollection(store kv.Store) *BillingCollection {
	return &BillingCollection{
		invoices: &collection[models.Invoice]{
			store: store,
			key:   keyInvoices,
			kind:  "invoice",
			seed:  fixtures.Invoices,
			id:    func(inv models.Invoice) string { return inv.ID },
		},
	}
}

// ListInvoices returns every invoice.
func (b *BillingCollection) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return b.invoices.List(ctx)
}

// GetInvoice returns one invoice by id, or a NotFoundError.
func (b *BillingCollection) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	return b.invoices.getByID(ctx, id)
}

// CreateInvoice records a new invoice, defaulting to draft status.
func (b *BillingCollection) CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if inv.InvoiceNumber == "" {
		return models.Invoice{}, ValidationError{Field: "invoiceNumber", Reason: "required"}
	}
	if inv.ClientName == "" {
		return models.Invoice{}, ValidationError{Field: "clientName", Reason: "required"}
	}
	if inv.ID == "" {
		inv.ID = newID("inv")
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceDraft
	}
	if !models.IsValidInvoiceStatus(inv.Status) {
		return models.Invoice{}, ValidationError{Field: "status", Reason: "unknown invoice status " + string(inv.Status)}
	}
	if err := b.invoices.append(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// UpdateInvoiceStatus sets the payment status of an invoice.
func (b *BillingCollection) UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) (models.Invoice, error) {
	if !models.IsValidInvoiceStatus(status) {
		return models.Invoice{}, ValidationError{Field: "status", Reason: "unknown invoice status " + string(status)}
	}
	return b.invoices.patch(ctx, id, func(inv *models.Invoice) {
		inv.Status = status
	})
}

// Summary totals the invoice book for the billing dashboard.
func (b *BillingCollection) Summary(ctx context.Context) (models.BillingSummary, error) {
	invoices, err := b.invoices.List(ctx)
	if err != nil {
		return models.BillingSummary{}, err
	}
	summary := models.BillingSummary{InvoiceCount: len(invoices)}
	for _, inv := range invoices {
		summary.TotalBilled += inv.Amount
		switch inv.Status {
		case models.InvoicePending:
			summary.PendingAmount += inv.Amount
		case models.InvoiceOverdue:
			summary.OverdueAmount += inv.Amount
		}
	}
	return summary, nil
}
