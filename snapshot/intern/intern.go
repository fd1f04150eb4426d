// Package intern provides snapshot.StringInterner implementations.
package intern

import (
	"sync"
)

// Pool returns the first instance it was given of each distinct string.
// It's safe for concurrent use and never forgets anything, so one Pool should
// live as long as the snapshots built with it.
type Pool struct {
	mu      sync.Mutex
	strings map[string]string
}

func NewPool() *Pool {
	return &Pool{strings: map[string]string{}}
}

func (p *Pool) Intern(value string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if canonical, ok := p.strings[value]; ok {
		return canonical
	}
	p.strings[value] = value
	return value
}

// Len is the number of distinct strings in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.strings)
}

type nop struct{}

// Nop returns its input unchanged.
func Nop() nop {
	return nop{}
}

func (nop) Intern(value string) string {
	return value
}
