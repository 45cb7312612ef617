package models

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// IsValidInvoiceStatus checks if an invoice status is valid.
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue:
		return true
	default:
		return false
	}
}

// Invoice is a billing record. Clients are identified by free-text name
// only; invoices do not reference any other entity.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	ClientName    string        `json:"clientName"`
	IssueDate     string        `json:"issueDate"` // "2006-01-02"
	DueDate       string        `json:"dueDate"`
	Amount        float64       `json:"amount"`
	Status        InvoiceStatus `json:"status"`
}

// BillingSummary aggregates the invoice book for the billing dashboard.
type BillingSummary struct {
	TotalBilled   float64 `json:"totalBilled"`
	PendingAmount float64 `json:"pendingAmount"`
	OverdueAmount float64 `json:"overdueAmount"`
	InvoiceCount  int     `json:"invoiceCount"`
}
