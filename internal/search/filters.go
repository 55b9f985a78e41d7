package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docsmiths/wikigen/internal/store"
)

// FilterOp is a filter comparison operator.
type FilterOp string

const (
	OpEq       FilterOp = "eq"
	OpNe       FilterOp = "ne"
	OpIn       FilterOp = "in"
	OpNin      FilterOp = "nin"
	OpGt       FilterOp = "gt"
	OpLt       FilterOp = "lt"
	OpGte      FilterOp = "gte"
	OpLte      FilterOp = "lte"
	OpContains FilterOp = "contains"
)

// Filter is a predicate against a document field or a metadata.* dotted
// path. A document failing any filter is excluded from results.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// ApplyFilters removes results whose document fails any filter (AND logic).
func ApplyFilters(results []*SearchResult, filters []Filter) []*SearchResult {
	if len(filters) == 0 {
		return results
	}

	filtered := make([]*SearchResult, 0, len(results))
	for _, r := range results {
		if matchesAllFilters(r.Document, filters) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesAllFilters(doc *store.Document, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(doc) {
			return false
		}
	}
	return true
}

// Matches evaluates the filter against a document. A field that does not
// exist resolves to nil and is compared under the normal operator
// semantics, so eq against nil only holds when the filter value is nil too.
func (f Filter) Matches(doc *store.Document) bool {
	if doc == nil {
		return false
	}
	value := lookupField(doc, f.Field)

	switch f.Op {
	case OpEq:
		return looseEqual(value, f.Value)
	case OpNe:
		return !looseEqual(value, f.Value)
	case OpIn:
		return inList(value, f.Value)
	case OpNin:
		return !inList(value, f.Value)
	case OpGt, OpLt, OpGte, OpLte:
		return compareNumeric(value, f.Value, f.Op)
	case OpContains:
		return containsValue(value, f.Value)
	default:
		return false
	}
}

// lookupField resolves a document field or metadata.* dotted path.
// Unknown paths resolve to nil.
func lookupField(doc *store.Document, field string) any {
	switch field {
	case "id":
		return doc.ID
	case "content":
		return doc.Content
	}

	name, ok := strings.CutPrefix(field, "metadata.")
	if !ok {
		return nil
	}
	switch name {
	case "pageId":
		return doc.Metadata.PageID
	case "title":
		return doc.Metadata.Title
	case "category":
		return doc.Metadata.Category
	case "tags":
		return doc.Metadata.Tags
	case "wordCount":
		return doc.Metadata.WordCount
	case "filePath":
		return doc.Metadata.FilePath
	case "language":
		return doc.Metadata.Language
	default:
		return nil
	}
}

// looseEqual compares values across numeric types and falls back to string
// form for the rest.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// inList reports whether the field value equals any element of the filter
// value, which must be a slice.
func inList(value, list any) bool {
	switch l := list.(type) {
	case []any:
		for _, item := range l {
			if looseEqual(value, item) {
				return true
			}
		}
	case []string:
		for _, item := range l {
			if looseEqual(value, item) {
				return true
			}
		}
	}
	return false
}

// compareNumeric applies an ordering operator. Non-numeric operands never
// match.
func compareNumeric(value, target any, op FilterOp) bool {
	vf, vok := toFloat(value)
	tf, tok := toFloat(target)
	if !vok || !tok {
		return false
	}
	switch op {
	case OpGt:
		return vf > tf
	case OpLt:
		return vf < tf
	case OpGte:
		return vf >= tf
	case OpLte:
		return vf <= tf
	default:
		return false
	}
}

// containsValue handles substring containment for strings and element
// containment for string slices.
func containsValue(value, target any) bool {
	switch v := value.(type) {
	case string:
		return strings.Contains(v, fmt.Sprint(target))
	case []string:
		for _, item := range v {
			if looseEqual(item, target) {
				return true
			}
		}
	}
	return false
}

// toFloat coerces numeric types and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
