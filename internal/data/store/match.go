package store

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"
)

// document is a record decoded generically, the way it sits on disk in the bolt backend.
type document map[string]any

func decodeDocument(raw []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// normalize gives a Go value the shape it has after a JSON round trip, so typed filter
// values compare equal to decoded documents (int 5 and float64 5, time.Time and its string).
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFilter(f Filter) (document, error) {
	out := make(document, len(f))
	for k, v := range f {
		nv, err := normalize(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func (d document) matches(filter document) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(d[k], want) {
			return false
		}
	}
	return true
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case nil:
		if b == nil {
			return 0
		}
		return -1
	case string:
		bv, ok := b.(string)
		if !ok {
			break
		}
		at, aerr := time.Parse(time.RFC3339Nano, av)
		bt, berr := time.Parse(time.RFC3339Nano, bv)
		if aerr == nil && berr == nil {
			return at.Compare(bt)
		}
		return strings.Compare(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			break
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, ok := b.(bool)
		if !ok {
			break
		}
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	}
	if b == nil {
		return 1
	}
	ar, _ := json.Marshal(a)
	br, _ := json.Marshal(b)
	return strings.Compare(string(ar), string(br))
}

type docEntry struct {
	doc document
	raw []byte
}

func sortEntries(entries []docEntry, field string, desc bool) {
	if field == "" {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		c := compareValues(entries[i].doc[field], entries[j].doc[field])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
