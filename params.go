package paramx

import (
	"iter"
	"strings"

	"github.com/samber/lo"
)

// Separator joins the values of a merged key.
const Separator = ","

// Entry is a resolved key together with the values that survived its update strategy.
type Entry struct {
	Key    string
	Values []string
}

// Params is the resolved mapping of one category. Keys keep the order in which they
// were first submitted.
type Params struct {
	entries []Entry
}

// Value returns the values of the key joined with Separator, or an empty string.
func (p Params) Value(key string) string {
	value, _ := p.Get(key)
	return value
}

// Get returns the joined value of the key and whether the key exists.
func (p Params) Get(key string) (string, bool) {
	entry, found := p.find(key)
	if !found {
		return "", false
	}
	return strings.Join(entry.Values, Separator), true
}

// Values returns a copy of the individual values of the key. Returns nil if the key
// doesn't exist.
func (p Params) Values(key string) []string {
	entry, found := p.find(key)
	if !found {
		return nil
	}
	return clone(entry.Values)
}

// Has indicates whether there's an entry for the key.
func (p Params) Has(key string) bool {
	_, found := p.find(key)
	return found
}

// Keys returns every key in first-submission order.
func (p Params) Keys() []string {
	return lo.Map(p.entries, func(e Entry, _ int) string {
		return e.Key
	})
}

// Len returns the number of keys.
func (p Params) Len() int {
	return len(p.entries)
}

func (p Params) Empty() bool {
	return p.Len() == 0
}

// Map returns the joined value of every key.
func (p Params) Map() map[string]string {
	return lo.SliceToMap(p.entries, func(e Entry) (string, string) {
		return e.Key, strings.Join(e.Values, Separator)
	})
}

// All iterates over the keys and their individual values.
func (p Params) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, entry := range p.entries {
			if !yield(entry.Key, clone(entry.Values)) {
				return
			}
		}
	}
}

func (p Params) find(key string) (Entry, bool) {
	return lo.Find(p.entries, func(e Entry) bool {
		return e.Key == key
	})
}
