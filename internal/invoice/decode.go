package invoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInputShape is the sentinel behind every InputShapeError.
var ErrInputShape = errors.New("malformed input shape")

// ErrTrailingData reports content after the top-level invoice array.
var ErrTrailingData = errors.New("unexpected data after invoice array")

// InputShapeError reports input that cannot be read as raw invoices at all.
// Index is the position of the offending invoice, or -1 for the document itself.
type InputShapeError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InputShapeError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed input: %s", e.Reason)
	case e.Field != "":
		return fmt.Sprintf("malformed invoice at index %d: field %s: %s", e.Index, e.Field, e.Reason)
	}

	return fmt.Sprintf("malformed invoice at index %d: %s", e.Index, e.Reason)
}

func (e *InputShapeError) Unwrap() error {
	return ErrInputShape
}

// Decode reads a JSON array of raw invoice records. Any element that is not
// an object, or any known field holding a type other than string, number or
// null, fails the whole document.
func Decode(r io.Reader) ([]RawInvoice, error) {
	dec := json.NewDecoder(r)

	var records []json.RawMessage
	if err := dec.Decode(&records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &InputShapeError{Index: -1, Reason: "expected a JSON array of invoices"}
		}

		return nil, fmt.Errorf("decode invoices: %w", err)
	}

	var trailing json.RawMessage
	switch err := dec.Decode(&trailing); {
	case errors.Is(err, io.EOF):
	case err == nil:
		return nil, fmt.Errorf("decode invoices: %w", ErrTrailingData)
	default:
		return nil, fmt.Errorf("decode invoices: %w", err)
	}

	invoices := make([]RawInvoice, 0, len(records))

	for i, rec := range records {
		inv, err := decodeInvoice(i, rec)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, inv)
	}

	return invoices, nil
}

func decodeInvoice(idx int, raw json.RawMessage) (RawInvoice, error) {
	fields, ok := decodeObject(raw)
	if !ok {
		return RawInvoice{}, &InputShapeError{Index: idx, Reason: "invoice is not an object"}
	}

	var inv RawInvoice

	if rm, ok := fields[FieldInvoiceID]; ok && !isNull(rm) {
		id, err := strconv.Atoi(string(bytes.TrimSpace(rm)))
		if err != nil {
			return RawInvoice{}, &InputShapeError{Index: idx, Field: FieldInvoiceID, Reason: "must be an integer"}
		}

		inv.ID = id
	}

	targets := []struct {
		name string
		dst  *Value
	}{
		{FieldInvoiceNumber, &inv.InvoiceNumber},
		{FieldReferenceNumber, &inv.ReferenceNumber},
		{FieldInvoiceDate, &inv.InvoiceDate},
		{FieldSellerName, &inv.SellerName},
		{FieldBuyerName, &inv.BuyerName},
		{FieldCustomerNumber, &inv.CustomerNumber},
		{FieldEndCustomerNumber, &inv.EndCustomerNumber},
		{FieldNetTotal, &inv.NetTotal},
		{FieldTaxPercentage, &inv.TaxPercentage},
		{FieldTaxAmount, &inv.TaxAmount},
		{FieldGrossTotal, &inv.GrossTotal},
		{FieldCurrency, &inv.Currency},
	}

	for _, t := range targets {
		rm, ok := fields[t.name]
		if !ok {
			continue
		}

		v, err := decodeValue(rm)
		if err != nil {
			return RawInvoice{}, &InputShapeError{Index: idx, Field: t.name, Reason: err.Error()}
		}

		*t.dst = v
	}

	if _, ok := fields[FieldCurrency]; !ok {
		inv.Currency = Text(DefaultCurrency)
	}

	items, err := decodeLineItems(fields[FieldLineItems])
	if err != nil {
		return RawInvoice{}, &InputShapeError{Index: idx, Field: FieldLineItems, Reason: err.Error()}
	}

	inv.LineItems = items

	return inv, nil
}

func decodeLineItems(raw json.RawMessage) ([]RawLineItem, error) {
	if raw == nil || isNull(raw) {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.New("must be an array")
	}

	items := make([]RawLineItem, 0, len(records))

	for i, rec := range records {
		fields, ok := decodeObject(rec)
		if !ok {
			return nil, fmt.Errorf("item %d is not an object", i)
		}

		var item RawLineItem

		targets := []struct {
			name string
			dst  *Value
		}{
			{FieldDescription, &item.Description},
			{FieldItemNumber, &item.ItemNumber},
			{FieldQuantity, &item.Quantity},
			{FieldPricePerUnit, &item.PricePerUnit},
			{FieldLineTotal, &item.LineTotal},
		}

		for _, t := range targets {
			rm, ok := fields[t.name]
			if !ok {
				continue
			}

			v, err := decodeValue(rm)
			if err != nil {
				return nil, fmt.Errorf("item %d: %s: %w", i, t.name, err)
			}

			*t.dst = v
		}

		items = append(items, item)
	}

	return items, nil
}

// decodeValue accepts JSON strings, numbers and null.
func decodeValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return Value{}, nil
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, fmt.Errorf("invalid string: %w", err)
		}

		return Text(s), nil
	case c == '-' || (c >= '0' && c <= '9'):
		d, err := decimal.NewFromString(string(trimmed))
		if err != nil {
			return Value{}, fmt.Errorf("invalid number: %w", err)
		}

		return Number(d), nil
	}

	return Value{}, errors.New("must be a string, number or null")
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}

	return fields, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
