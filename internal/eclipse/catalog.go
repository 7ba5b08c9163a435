package eclipse

import "sort"

// Catalog is the read-only feature store: every record loaded at startup,
// ordered by date.
type Catalog struct {
	records []Record
	byID    map[int]int
}

// NewCatalog builds a catalog from records. The input is expected to arrive
// date-ordered already; the stable sort only repairs out-of-order pages and
// keeps load order for equal dates.
func NewCatalog(records []Record) *Catalog {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	byID := make(map[int]int, len(sorted))
	for i, r := range sorted {
		byID[r.ID] = i
	}
	return &Catalog{records: sorted, byID: byID}
}

// Records returns all records in date order. Callers must not modify the slice.
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// ByID looks up a record by its identifier.
func (c *Catalog) ByID(id int) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Counts returns the number of records per category, Unclassified included.
func (c *Catalog) Counts() map[Category]int {
	counts := make(map[Category]int, 4)
	for _, r := range c.Records() {
		counts[r.Category]++
	}
	return counts
}
