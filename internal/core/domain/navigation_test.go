package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntentFor(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := InvoiceRecord{ID: 9, Number: "INV-9"}.Result()

	intent := IntentFor(r, "inv", at)

	assert.Equal(t, "/invoices/9", intent.Route)
	assert.Equal(t, DomainInvoice, intent.Type)
	assert.Equal(t, int64(9), intent.ID)
	assert.Equal(t, "Invoice #INV-9", intent.Title)
	assert.Equal(t, "inv", intent.Query)
	assert.Equal(t, at, intent.At)
}

func TestHistoryEntry_Intent(t *testing.T) {
	e := HistoryEntry{ID: "x", Route: "/clients/42", Type: DomainClient, RecordID: 42, Title: "Acme", Query: "ac"}
	at := time.Now()

	intent := e.Intent(at)

	assert.Equal(t, "/clients/42", intent.Route)
	assert.Equal(t, int64(42), intent.ID)
	assert.Equal(t, at, intent.At)
}
