package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("a", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry[int]()
	assert.Empty(t, r.Names())

	_, _ = r.Register("setting", 2)
	_, _ = r.Register("file", 1)
	assert.Equal(t, []string{"file", "setting"}, r.Names())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Register(fmt.Sprintf("s%d", i), i)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Names(), 10)
}
