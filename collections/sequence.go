package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

const counterQuotations = "quotations"

// NextQuotationNumber atomically allocates the next document number. The
// counter read and increment run in a single transaction, so concurrent
// saves can never observe the same value and the sequence stays gap-free.
func NextQuotationNumber(app core.App) (string, error) {
	var seq int64
	err := app.RunInTransaction(func(txApp core.App) error {
		counter, err := txApp.FindFirstRecordByData("counters", "name", counterQuotations)
		if err != nil {
			coll, err := txApp.FindCollectionByNameOrId("counters")
			if err != nil {
				return fmt.Errorf("counters collection missing: %w", err)
			}
			counter = core.NewRecord(coll)
			counter.Set("name", counterQuotations)
			counter.Set("value", 0)
		}
		seq = int64(counter.GetFloat("value")) + 1
		counter.Set("value", seq)
		return txApp.Save(counter)
	})
	if err != nil {
		return "", fmt.Errorf("next quotation number: %w", err)
	}
	return services.FormatQuotationNumber(seq), nil
}
