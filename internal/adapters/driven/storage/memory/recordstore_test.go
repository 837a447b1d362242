package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

func TestNewDemoRecordStore(t *testing.T) {
	store := NewDemoRecordStore()

	for _, d := range domain.Domains() {
		assert.Positive(t, store.Count(d), "domain %s", d)
	}
}

func TestRecordStore_Searchers(t *testing.T) {
	searchers := NewDemoRecordStore().Searchers()

	require.Len(t, searchers, 5)
	for i, s := range searchers {
		assert.Equal(t, domain.Domains()[i], s.Domain())
	}
}

func TestRecordStore_SearchIsCaseInsensitive(t *testing.T) {
	store := NewRecordStore()
	store.Add(domain.ClientRecord{ID: 1, Name: "Acme Corporation"})
	store.Add(domain.ClientRecord{ID: 2, Name: "Globex"})
	store.Add(domain.InvoiceRecord{ID: 9, Number: "INV-9", ClientName: "Acme Corporation"})
	searchers := store.Searchers()

	clients, err := searchers[0].Search(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, int64(1), clients[0].RecordID())

	invoices, err := searchers[3].Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, domain.DomainInvoice, invoices[0].Domain())
}

func TestRecordStore_LatencyHonoursContext(t *testing.T) {
	store := NewDemoRecordStore()
	store.SetLatency(time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Searchers()[0].Search(ctx, "acme")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
