package models

// TenderStatus tracks a procurement opportunity from open to awarded/lost.
type TenderStatus string

const (
	TenderOpen      TenderStatus = "open"
	TenderBidding   TenderStatus = "bidding"
	TenderSubmitted TenderStatus = "submitted"
	TenderAwarded   TenderStatus = "awarded"
	TenderLost      TenderStatus = "lost"
)

// IsValidTenderStatus checks if a tender status is valid.
func IsValidTenderStatus(s TenderStatus) bool {
	switch s {
	case TenderOpen, TenderBidding, TenderSubmitted, TenderAwarded, TenderLost:
		return true
	default:
		return false
	}
}

// Tender is a tracked procurement opportunity. Tenders stand alone and do
// not reference any other entity.
type Tender struct {
	ID                 string       `json:"id"`
	ReferenceNumber    string       `json:"referenceNumber"`
	Title              string       `json:"title"`
	Authority          string       `json:"authority"`
	SubmissionDeadline string       `json:"submissionDeadline"` // "2006-01-02"
	BudgetRange        string       `json:"budgetRange"`
	Status             TenderStatus `json:"status"`
}
