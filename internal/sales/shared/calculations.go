package shared

// TaxRate is the flat VAT applied to every order and invoice subtotal.
const TaxRate = 0.16

// LineTotal prices a single line item.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// DocumentTotals derives tax and grand total from a subtotal.
func DocumentTotals(subtotal float64) (tax, total float64) {
	tax = subtotal * TaxRate
	total = subtotal + tax
	return
}
