package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clk.now
	return s, clk
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := New("one", Selection{})

	_, ok := st.Get("one")
	assert.False(t, ok)

	st.Put(s)
	got, ok := st.Get("one")
	require.True(t, ok)
	assert.Equal(t, s, got)

	st.Put(got.WithNotice("n"))
	got, _ = st.Get("one")
	assert.Equal(t, "n", got.Notice)

	st.Delete("one")
	_, ok = st.Get("one")
	assert.False(t, ok)
}

func TestMemoryStore_ExpiresIdleSessions(t *testing.T) {
	st, clk := newTestStore(time.Hour)
	st.Put(New("idle", Selection{}))
	st.Put(New("active", Selection{}))

	clk.advance(40 * time.Minute)
	_, ok := st.Get("active")
	require.True(t, ok)

	clk.advance(40 * time.Minute)
	st.Put(New("fresh", Selection{}))

	assert.Equal(t, 2, st.Len(), "idle evicted on put")
	_, ok = st.Get("idle")
	assert.False(t, ok)
	_, ok = st.Get("active")
	assert.True(t, ok)
}

func TestMemoryStore_GetExpired(t *testing.T) {
	st, clk := newTestStore(time.Minute)
	st.Put(New("x", Selection{}))
	clk.advance(2 * time.Minute)
	_, ok := st.Get("x")
	assert.False(t, ok)
	assert.Zero(t, st.Len())
}

func TestNewMemoryStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewMemoryStore(0).ttl)
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	st := NewMemoryStore(time.Hour)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := New(NewID(), Selection{})
			st.Put(s)
			got, ok := st.Get(s.ID)
			assert.True(t, ok)
			st.Put(got.WithNotice("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, st.Len())
}
