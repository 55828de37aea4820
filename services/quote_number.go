package services

import "fmt"

// quotationNumberPrefix matches the historical numbering of existing
// documents, so sequences continue seamlessly.
const quotationNumberPrefix = "COT"

// FormatQuotationNumber renders a sequence value as a document number,
// e.g. 7 becomes "COT-00007".
func FormatQuotationNumber(seq int64) string {
	return fmt.Sprintf("%s-%05d", quotationNumberPrefix, seq)
}
