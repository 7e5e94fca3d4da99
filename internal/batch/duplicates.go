package batch

import (
	"fmt"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// duplicateIndex maps each natural key to the batch positions sharing it,
// first sighting first. Invoices missing a key component are never indexed.
type duplicateIndex struct {
	order  []invoice.NaturalKey
	groups map[invoice.NaturalKey][]int
}

func buildDuplicateIndex(raws []invoice.RawInvoice) duplicateIndex {
	idx := duplicateIndex{groups: make(map[invoice.NaturalKey][]int)}

	for i, raw := range raws {
		key, ok := raw.NaturalKey()
		if !ok {
			continue
		}

		if _, seen := idx.groups[key]; !seen {
			idx.order = append(idx.order, key)
		}

		idx.groups[key] = append(idx.groups[key], i)
	}

	return idx
}

// markDuplicates flags every member of every group with two or more
// invoices. Each position belongs to exactly one group, so no outcome is
// touched by more than one group.
func markDuplicates(raws []invoice.RawInvoice, outcomes []Outcome) int {
	idx := buildDuplicateIndex(raws)
	flagged := 0

	for _, key := range idx.order {
		members := idx.groups[key]
		if len(members) < 2 {
			continue
		}

		first := members[0]
		for _, pos := range members {
			msg := fmt.Sprintf("duplicate_invoice: %s/%s/%s also at position %d",
				key.SellerName, key.InvoiceNumber, key.InvoiceDate, first)
			if pos == first {
				msg = fmt.Sprintf("duplicate_invoice: %s/%s/%s repeated %d times",
					key.SellerName, key.InvoiceNumber, key.InvoiceDate, len(members))
			}

			outcomes[pos].flag(validation.CodeDuplicateInvoice, msg)
			flagged++
		}
	}

	return flagged
}
