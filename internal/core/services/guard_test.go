package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

func TestStaleResultGuard_CommitIsMonotonic(t *testing.T) {
	g := NewStaleResultGuard()

	assert.Equal(t, uint64(0), g.Latest())
	assert.Equal(t, uint64(1), g.Commit())
	assert.Equal(t, uint64(2), g.Commit())
	assert.Equal(t, uint64(2), g.Latest())
	assert.True(t, g.IsLatest(2))
	assert.False(t, g.IsLatest(1))
}

func TestStaleResultGuard_AcceptLatest(t *testing.T) {
	g := NewStaleResultGuard()
	gen := g.Commit()

	var applied []uint64
	ok := g.Accept(domain.Batch{Generation: gen}, func(b domain.Batch) {
		applied = append(applied, b.Generation)
	})

	assert.True(t, ok)
	assert.Equal(t, []uint64{gen}, applied)
}

func TestStaleResultGuard_DropsStale(t *testing.T) {
	g := NewStaleResultGuard()
	first := g.Commit()
	g.Commit()

	called := false
	ok := g.Accept(domain.Batch{Generation: first}, func(domain.Batch) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
}

// Every interleaving of two commits and their two completions applies
// only the batch of the second commit.
func TestStaleResultGuard_AllInterleavings(t *testing.T) {
	type step string
	const (
		commitA   step = "commit A"
		commitB   step = "commit B"
		completeA step = "complete A"
		completeB step = "complete B"
	)
	orders := [][]step{
		{commitA, commitB, completeA, completeB},
		{commitA, commitB, completeB, completeA},
		{commitA, completeA, commitB, completeB},
	}

	for _, order := range orders {
		g := NewStaleResultGuard()
		gens := map[string]uint64{}
		var applied []string

		for _, s := range order {
			switch s {
			case commitA:
				gens["A"] = g.Commit()
			case commitB:
				gens["B"] = g.Commit()
			case completeA:
				g.Accept(domain.Batch{Generation: gens["A"]}, func(domain.Batch) { applied = append(applied, "A") })
			case completeB:
				g.Accept(domain.Batch{Generation: gens["B"]}, func(domain.Batch) { applied = append(applied, "B") })
			}
		}

		// A may only apply when it completed before B was committed.
		assert.Equal(t, "B", applied[len(applied)-1], "order %v", order)
		if order[1] != completeA {
			assert.Equal(t, []string{"B"}, applied, "order %v", order)
		}
	}
}

func TestStaleResultGuard_ConcurrentCommitAndAccept(t *testing.T) {
	g := NewStaleResultGuard()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g.Commit()
		}()
		go func() {
			defer wg.Done()
			gen := g.Latest()
			g.Accept(domain.Batch{Generation: gen}, func(b domain.Batch) {
				// A commit cannot interleave while apply runs.
				assert.Equal(t, b.Generation, gen)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), g.Latest())
}
