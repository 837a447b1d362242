package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientRecord_Result(t *testing.T) {
	r := ClientRecord{ID: 42, Name: "Acme Ltd", Email: "ops@acme.test", Phone: "555-0100"}.Result()

	assert.Equal(t, int64(42), r.ID)
	assert.Equal(t, "Acme Ltd", r.Title)
	assert.Equal(t, "ops@acme.test • 555-0100", r.Subtitle)
	assert.Equal(t, DomainClient, r.Type)
	assert.Equal(t, "/clients/42", r.Route)
	assert.Equal(t, "👤", r.Icon)
}

func TestClientRecord_Placeholders(t *testing.T) {
	r := ClientRecord{ID: 1, Name: "Bare"}.Result()

	assert.Equal(t, "No email • No phone", r.Subtitle)
}

func TestServiceRecord_Result(t *testing.T) {
	tests := []struct {
		name   string
		record ServiceRecord
		want   string
	}{
		{"full", ServiceRecord{ID: 3, Name: "Audit", Description: "Yearly audit", Price: "1200.00"}, "Yearly audit • $1200.00"},
		{"missing", ServiceRecord{ID: 3, Name: "Audit"}, "No description • $0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record.Result()
			assert.Equal(t, "Audit", r.Title)
			assert.Equal(t, tt.want, r.Subtitle)
			assert.Equal(t, "/services/3", r.Route)
		})
	}
}

func TestQuotationRecord_Result(t *testing.T) {
	tests := []struct {
		name   string
		record QuotationRecord
		want   string
	}{
		{"formatted total", QuotationRecord{ID: 17, Number: "Q-17", ClientName: "Acme", FormattedTotal: "$1,000.00", TotalAmount: "1000.00"}, "Acme • $1,000.00"},
		{"raw total", QuotationRecord{ID: 17, Number: "Q-17", ClientName: "Acme", TotalAmount: "1000.00"}, "Acme • 1000.00"},
		{"nothing", QuotationRecord{ID: 17, Number: "Q-17"}, "No client • 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record.Result()
			assert.Equal(t, "Quotation #Q-17", r.Title)
			assert.Equal(t, tt.want, r.Subtitle)
			assert.Equal(t, "/quotations/17", r.Route)
			assert.Equal(t, "📄", r.Icon)
		})
	}
}

func TestInvoiceRecord_Result(t *testing.T) {
	r := InvoiceRecord{ID: 9, Number: "INV-9", ClientName: "Globex"}.Result()

	assert.Equal(t, "Invoice #INV-9", r.Title)
	assert.Equal(t, "Globex • 0.00", r.Subtitle)
	assert.Equal(t, "/invoices/9", r.Route)
	assert.Equal(t, DomainInvoice, r.Type)
}

func TestActivityRecord_Result(t *testing.T) {
	r := ActivityRecord{ID: 7, Description: "Office rent", Type: "expense", Amount: "850.00"}.Result()
	assert.Equal(t, "Office rent", r.Title)
	assert.Equal(t, "expense • 850.00", r.Subtitle)
	assert.Equal(t, "/financial/activities/7", r.Route)

	bare := ActivityRecord{ID: 8}.Result()
	assert.Equal(t, "Financial Activity", bare.Title)
	assert.Equal(t, "activity • 0.00", bare.Subtitle)
}

func TestRecord_DomainMatchesResult(t *testing.T) {
	records := []Record{
		ClientRecord{ID: 1},
		ServiceRecord{ID: 2},
		QuotationRecord{ID: 3},
		InvoiceRecord{ID: 4},
		ActivityRecord{ID: 5},
	}

	for _, rec := range records {
		r := rec.Result()
		assert.Equal(t, rec.Domain(), r.Type)
		assert.Equal(t, rec.RecordID(), r.ID)
		assert.Equal(t, rec.Domain().Route(rec.RecordID()), r.Route)
	}
}
