package models

import "time"

// LineItem is one labeled amount on a campaign or bill.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// SumItems returns the total of a line-item list. Campaign totals are always
// recomputed from the items, never trusted from the caller.
func SumItems(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return total
}

// AdhocCampaign is an operator-created ad-hoc charge definition. It is
// immutable after creation except for deletion.
type AdhocCampaign struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Purpose   string     `json:"purpose,omitempty"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	Target    *Target    `json:"target,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Bill statuses. The only transition is unpaid -> paid.
const (
	BillUnpaid = "unpaid"
	BillPaid   = "paid"
)

// AdhocBill is one issued charge for one recipient of one campaign. Items and
// total are snapshot copies; editing or deleting the campaign later must not
// change bills already issued. At most one bill may exist per
// (AdhocID, normalized ParentPhone) pair.
type AdhocBill struct {
	ID          string     `json:"id"`
	AdhocID     string     `json:"adhocId"`
	AppID       string     `json:"appId"`
	ParentPhone string     `json:"parentPhone"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Items       []LineItem `json:"items"`
	Total       float64    `json:"total"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

// MarkPaid records payment confirmation.
func (b *AdhocBill) MarkPaid() {
	b.Status = BillPaid
	now := time.Now()
	b.PaidAt = &now
}
