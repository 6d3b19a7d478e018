package database

import (
	"math"

	"github.com/google/btree"
)

// Record is a JSON object stored in a collection. Once stored it is never
// modified in place, updates replace it.
type Record = map[string]any

type Collection struct {
	Name    string
	Records []Record
	ids     *btree.BTreeG[idEntry]
}

// idEntry counts how many records carry the same id, a hand edited file can
// contain duplicates.
type idEntry struct {
	id int64
	n  int
}

func lessIdEntry(a, b idEntry) bool {
	return a.id < b.id
}

func newCollection(name string, records []Record) *Collection {
	c := &Collection{
		Name:    name,
		Records: records,
		ids:     btree.NewG[idEntry](16, lessIdEntry),
	}
	if c.Records == nil {
		c.Records = []Record{}
	}
	for _, record := range c.Records {
		if id, ok := RecordID(record); ok {
			c.indexAdd(id)
		}
	}
	return c
}

// RecordID returns the integral id of a record, if any.
func RecordID(record Record) (int64, bool) {
	switch v := record["id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, outside int64
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func (c *Collection) indexAdd(id int64) {
	entry, _ := c.ids.Get(idEntry{id: id})
	entry.id = id
	entry.n++
	c.ids.ReplaceOrInsert(entry)
}

func (c *Collection) indexRemove(id int64) {
	entry, found := c.ids.Get(idEntry{id: id})
	if !found {
		return
	}
	entry.n--
	if entry.n <= 0 {
		c.ids.Delete(entry)
		return
	}
	c.ids.ReplaceOrInsert(entry)
}

// nextID is one greater than the highest id in the collection, or 1.
func (c *Collection) nextID() (int64, error) {
	last, found := c.ids.Max()
	if !found {
		return 1, nil
	}
	if last.id == math.MaxInt64 {
		return 0, ErrIDOverflow
	}
	return last.id + 1, nil
}

// find returns the position of the first record with the given id or -1.
func (c *Collection) find(id int64) int {
	if !c.ids.Has(idEntry{id: id}) {
		return -1
	}
	for i, record := range c.Records {
		if recordID, ok := RecordID(record); ok && recordID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) append(record Record, id int64) {
	c.Records = append(c.Records, record)
	c.indexAdd(id)
}

// truncate drops the last record, undoing append.
func (c *Collection) truncate(id int64) {
	c.Records[len(c.Records)-1] = nil
	c.Records = c.Records[:len(c.Records)-1]
	c.indexRemove(id)
}

func (c *Collection) replace(i int, record Record) (previous Record) {
	previous = c.Records[i]
	c.Records[i] = record
	return previous
}

func (c *Collection) removeAt(i int) Record {
	record := c.Records[i]
	c.Records = append(c.Records[:i:i], c.Records[i+1:]...)
	if id, ok := RecordID(record); ok {
		c.indexRemove(id)
	}
	return record
}

func (c *Collection) insertAt(i int, record Record) {
	c.Records = append(c.Records, nil)
	copy(c.Records[i+1:], c.Records[i:])
	c.Records[i] = record
	if id, ok := RecordID(record); ok {
		c.indexAdd(id)
	}
}

// snapshot returns a copy of the record list. Records are shared.
func (c *Collection) snapshot() []Record {
	result := make([]Record, len(c.Records))
	copy(result, c.Records)
	return result
}
