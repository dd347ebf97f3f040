package session

import "strings"

// collection is one entity kind's cache: the ordered list plus an id index
// and a case-insensitive name index. The three fields are always populated
// or cleared together, never left partially stale.
type collection[E any] struct {
	list   []E
	byID   map[int64]E
	byName map[string]E
}

func (c *collection[E]) populated() bool {
	return c.list != nil
}

func (c *collection[E]) replace(items []E, id func(E) int64, name func(E) string) {
	byID := make(map[int64]E, len(items))
	byName := make(map[string]E, len(items))
	for _, item := range items {
		byID[id(item)] = item
		byName[strings.ToLower(name(item))] = item
	}
	c.list = items
	c.byID = byID
	c.byName = byName
}

func (c *collection[E]) clear() {
	c.list = nil
	c.byID = nil
	c.byName = nil
}

func (c *collection[E]) find(id int64) (E, bool) {
	item, ok := c.byID[id]
	return item, ok
}

func (c *collection[E]) findName(name string) (E, bool) {
	item, ok := c.byName[strings.ToLower(name)]
	return item, ok
}
