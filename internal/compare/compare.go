// Package compare provides the type-aware ordering function shared by the
// query layer and the catalog provider.
package compare

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Compare orders two record field values and returns -1, 0 or 1. It is
// total: any pair of values compares without panicking. Rules, in priority
// order:
//
//  1. both nil: equal; one nil: nils sort first ascending, last descending
//  2. both strings: case-folded lexicographic compare, with RFC 3339
//     strings compared by instant
//  3. both numeric: numeric compare
//  4. both time.Time: compare by instant
//  5. otherwise: compare fmt.Sprint renderings
//
// When ascending is false the non-nil result is negated.
func Compare(a, b any, ascending bool) int {
	r := compareAsc(a, b)
	if !ascending {
		r = -r
	}
	return r
}

func compareAsc(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return compareStrings(as, bs)
		}
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareStrings(a, b string) int {
	// Date-valued fields arrive as RFC 3339 strings after a JSON round
	// trip; compare those by instant so mixed offsets order correctly.
	if at, err := time.Parse(time.RFC3339, a); err == nil {
		if bt, err := time.Parse(time.RFC3339, b); err == nil {
			return at.Compare(bt)
		}
	}
	af, bf := strings.ToLower(a), strings.ToLower(b)
	if c := strings.Compare(af, bf); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// toFloat widens any numeric value that can appear in a decoded JSON record
// or a typed catalog entity.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
