package model

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collate.Collator keeps internal buffers and is not safe for concurrent use,
// so each caller borrows one from the pool.
var usernameCollators = sync.Pool{
	New: func() any {
		return collate.New(language.English, collate.IgnoreCase)
	},
}

// SameUsername compares two usernames ignoring case but not diacritics
// ("Jabran" == "jabran", "jose" != "josé").
func SameUsername(a, b string) bool {
	c := usernameCollators.Get().(*collate.Collator)
	defer usernameCollators.Put(c)
	return c.CompareString(a, b) == 0
}
