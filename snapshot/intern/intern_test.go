package intern

import (
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// dataPointer returns the address of a string's bytes.
func dataPointer(s string) uintptr {
	return (*(*[2]uintptr)(unsafe.Pointer(&s)))[0]
}

func TestPoolReturnsFirstInstance(t *testing.T) {
	pool := NewPool()
	first := strings.Repeat("x", 8)
	second := strings.Repeat("x", 8)
	assert.NotEqual(t, dataPointer(first), dataPointer(second))

	assert.Equal(t, first, pool.Intern(first))
	got := pool.Intern(second)
	assert.Equal(t, second, got)
	assert.Equal(t, dataPointer(first), dataPointer(got))
	assert.Equal(t, 1, pool.Len())
}

func TestPoolConcurrentUse(t *testing.T) {
	pool := NewPool()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range []string{"a", "b", "c", "a"} {
				pool.Intern(s)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, pool.Len())
}

func TestNop(t *testing.T) {
	assert.Equal(t, "abc", Nop().Intern("abc"))
}
