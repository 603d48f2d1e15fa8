package models

import "github.com/shopspring/decimal"

// Receipt - данные для формирования чека на стороне CloudPayments.
// Создается только после успешной оплаты, на исход платежа не влияет.
type Receipt struct {
	Items          []ReceiptItem
	TaxationSystem int
	Email          string
	Phone          string
}

// ReceiptItem - одна позиция чека, CloudPayments требует расписывать каждую подробно
type ReceiptItem struct {
	Label    string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Amount   decimal.Decimal
	Vat      int
	Method   int
	// Object - признак предмета расчета (10 - платеж)
	Object          int
	MeasurementUnit string
}
