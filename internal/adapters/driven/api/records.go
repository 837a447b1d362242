package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// decimal is an amount the backend sends either as a JSON string
// ("1200.00") or as a number. null and absent decode to "".
type decimal string

func (d *decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*d = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimal(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("amount %s: %w", data, err)
		}
		*d = decimal(n.String())
	}
	return nil
}

// number is a record number the backend may send as string or integer.
type number string

func (n *number) UnmarshalJSON(data []byte) error {
	var d decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = number(d)
	return nil
}

// page is a Django REST framework page. Results is nil when absent.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// decodeList decodes either a page or a bare array.
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var p page[T]
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

type clientDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (c clientDTO) record() domain.Record {
	return domain.ClientRecord{ID: c.ID, Name: c.Name, Email: deref(c.Email), Phone: deref(c.Phone)}
}

type serviceDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       decimal `json:"price"`
}

func (s serviceDTO) record() domain.Record {
	return domain.ServiceRecord{ID: s.ID, Name: s.Name, Description: deref(s.Description), Price: string(s.Price)}
}

// billingDTO is the shared shape of quotations and invoices.
type billingDTO struct {
	ID             int64   `json:"id"`
	Number         number  `json:"number"`
	ClientName     *string `json:"client_name"`
	FormattedTotal *string `json:"formatted_total"`
	TotalAmount    decimal `json:"total_amount"`
}

func (b billingDTO) quotation() domain.Record {
	return domain.QuotationRecord{
		ID:             b.ID,
		Number:         b.numberOrID(),
		ClientName:     deref(b.ClientName),
		FormattedTotal: deref(b.FormattedTotal),
		TotalAmount:    string(b.TotalAmount),
	}
}

func (b billingDTO) invoice() domain.Record {
	return domain.InvoiceRecord{
		ID:             b.ID,
		Number:         b.numberOrID(),
		ClientName:     deref(b.ClientName),
		FormattedTotal: deref(b.FormattedTotal),
		TotalAmount:    string(b.TotalAmount),
	}
}

func (b billingDTO) numberOrID() string {
	if b.Number != "" {
		return string(b.Number)
	}
	return strconv.FormatInt(b.ID, 10)
}

// activityDTO accepts both the detail serializer's "type" and the list
// serializer's "activity_type".
type activityDTO struct {
	ID           int64   `json:"id"`
	Description  *string `json:"description"`
	Type         *string `json:"type"`
	ActivityType *string `json:"activity_type"`
	Amount       decimal `json:"amount"`
}

func (a activityDTO) record() domain.Record {
	kind := deref(a.Type)
	if kind == "" {
		kind = deref(a.ActivityType)
	}
	return domain.ActivityRecord{ID: a.ID, Description: deref(a.Description), Type: kind, Amount: string(a.Amount)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
