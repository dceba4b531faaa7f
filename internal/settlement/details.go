package settlement

import (
	"fmt"

	"go-furniture-erp/internal/model"
)

// MethodDetails holds the method-specific form fields of a payment.
type MethodDetails struct {
	CardLast4 string `json:"card_last4"`

	FromBank    string `json:"from_bank"`
	FromAccount string `json:"from_account"`
	ToBank      string `json:"to_bank"`
	ToAccount   string `json:"to_account"`

	ChequeBank   string `json:"cheque_bank"`
	ChequeNumber string `json:"cheque_number"`
	ChequeDate   string `json:"cheque_date"`
}

// RenderDetails formats the free-text details column. Fields are not checked here.
func RenderDetails(method model.PaymentMethod, d MethodDetails) string {
	switch method {
	case model.MethodCard:
		return fmt.Sprintf("Card ending in %s", d.CardLast4)
	case model.MethodOnline:
		return fmt.Sprintf("%s (%s) to %s (%s)", d.FromBank, d.FromAccount, d.ToBank, d.ToAccount)
	case model.MethodCheque:
		return fmt.Sprintf("Cheque #%s from %s, dated %s", d.ChequeNumber, d.ChequeBank, d.ChequeDate)
	default:
		return "N/A"
	}
}
