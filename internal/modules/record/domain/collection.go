package domain

import "sort"

// Collection holds at most one record per date, ordered by date descending.
type Collection struct {
	records []Record
}

// NewCollection builds a collection from records in arbitrary order. When a
// date repeats, the first occurrence wins; the rest are returned as dropped.
func NewCollection(records []Record) (Collection, []Record) {
	seen := make(map[string]struct{}, len(records))
	kept := make([]Record, 0, len(records))
	var dropped []Record
	for _, r := range records {
		if _, ok := seen[r.Date]; ok {
			dropped = append(dropped, r)
			continue
		}
		seen[r.Date] = struct{}{}
		kept = append(kept, r)
	}
	c := Collection{records: kept}
	c.sort()
	return c, dropped
}

// Upsert replaces the record with the same date in place, or appends it.
// It reports whether an existing record was replaced.
func (c *Collection) Upsert(r Record) bool {
	replaced := false
	if idx := c.index(r.Date); idx >= 0 {
		c.records[idx] = r
		replaced = true
	} else {
		c.records = append(c.records, r)
	}
	c.sort()
	return replaced
}

func (c *Collection) RemoveByDate(date string) bool {
	idx := c.index(date)
	if idx < 0 {
		return false
	}
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	return true
}

func (c Collection) Find(date string) (Record, bool) {
	if idx := c.index(date); idx >= 0 {
		return c.records[idx], true
	}
	return Record{}, false
}

// Records returns a copy in date-descending order.
func (c Collection) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c Collection) Len() int {
	return len(c.records)
}

// Clone returns an independent copy, used as a rollback snapshot.
func (c Collection) Clone() Collection {
	return Collection{records: c.Records()}
}

func (c Collection) index(date string) int {
	for i, r := range c.records {
		if r.Date == date {
			return i
		}
	}
	return -1
}

// ISO dates sort lexically.
func (c *Collection) sort() {
	sort.SliceStable(c.records, func(i, j int) bool {
		return c.records[i].Date > c.records[j].Date
	})
}
