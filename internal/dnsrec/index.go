package dnsrec

// Index maps fingerprints to the records that produced them. Duplicate
// registrar records share a fingerprint; the index keeps every copy so
// callers can report N duplicates instead of silently collapsing them.
type Index map[string][]Record

// BuildIndex computes the fingerprint index of a record collection.
func BuildIndex(records []Record, includeTTL bool) Index {
	ix := make(Index, len(records))
	for _, r := range records {
		fp := Fingerprint(r, includeTTL)
		ix[fp] = append(ix[fp], r)
	}
	return ix
}

func (ix Index) Has(fingerprint string) bool {
	_, ok := ix[fingerprint]
	return ok
}

// SummarizeByType counts records per (normalized) type tag.
func SummarizeByType(records []Record) map[Type]int {
	counts := make(map[Type]int)
	for _, r := range records {
		counts[r.Type]++
	}
	return counts
}
