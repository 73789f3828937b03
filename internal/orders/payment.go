package orders

import (
	"fmt"

	"github.com/abcshop/go-shop-core/internal/inventory"
)

// PaymentMode is the closed set of supported payment modes.
type PaymentMode int

const (
	CashOnDelivery    PaymentMode = 1
	CreditOrDebitCard PaymentMode = 2
	NetBanking        PaymentMode = 3
	UPI               PaymentMode = 4
)

func (m PaymentMode) String() string {
	switch m {
	case CashOnDelivery:
		return "CASH_ON_DELIVERY"
	case CreditOrDebitCard:
		return "CREDIT_OR_DEBIT_CARD"
	case NetBanking:
		return "NET_BANKING"
	case UPI:
		return "UPI"
	}
	return fmt.Sprintf("PaymentMode(%d)", int(m))
}

func (m PaymentMode) valid() bool {
	return m >= CashOnDelivery && m <= UPI
}

// PaymentModeOf maps a numeric id to its payment mode.
func PaymentModeOf(id int) (PaymentMode, error) {
	m := PaymentMode(id)
	if !m.valid() {
		return 0, &inventory.UnknownEnumError{Kind: "payment mode", ID: id}
	}
	return m, nil
}
