package wordbank

import "sync"

// wordLock serialises operations on the same word while letting different words proceed.
// Entries are dropped once nobody holds or waits for them.
type wordLock struct {
	mu      sync.Mutex
	entries map[string]*wordLockEntry
}

type wordLockEntry struct {
	mu      sync.Mutex
	waiters int
}

func newWordLock() *wordLock {
	return &wordLock{entries: make(map[string]*wordLockEntry)}
}

// repositoryLocks holds one *wordLock per Repository so that every use case
// writing through the same repository serialises on the same words.
var repositoryLocks sync.Map

func locksFor(repo Repository) *wordLock {
	if l, ok := repositoryLocks.Load(repo); ok {
		return l.(*wordLock)
	}
	l, _ := repositoryLocks.LoadOrStore(repo, newWordLock())
	return l.(*wordLock)
}

// lock blocks until word is free and returns the function that releases it.
func (l *wordLock) lock(word string) func() {
	l.mu.Lock()
	entry, ok := l.entries[word]
	if !ok {
		entry = &wordLockEntry{}
		l.entries[word] = entry
	}
	entry.waiters++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.waiters--
		if entry.waiters == 0 {
			delete(l.entries, word)
		}
		l.mu.Unlock()
	}
}

func (l *wordLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
