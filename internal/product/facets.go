package product

import "sort"

// Facets is the filter vocabulary derived from a product set.
type Facets struct {
	Categories []string
	Types      []string
}

// FacetsOf returns the sorted distinct non-empty categories and types of ps.
func FacetsOf(ps []Product) Facets {
	cats := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, p := range ps {
		if p.Category != "" {
			cats[p.Category] = struct{}{}
		}
		if p.Type != "" {
			types[p.Type] = struct{}{}
		}
	}
	return Facets{Categories: sortedKeys(cats), Types: sortedKeys(types)}
}

func (f Facets) HasCategory(c string) bool { return contains(f.Categories, c) }

func (f Facets) HasType(t string) bool { return contains(f.Types, t) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(ss []string, s string) bool {
	i := sort.SearchStrings(ss, s)
	return i < len(ss) && ss[i] == s
}

// Merge returns the union of both vocabularies.
func (f Facets) Merge(o Facets) Facets {
	cats := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, c := range append(append([]string(nil), f.Categories...), o.Categories...) {
		cats[c] = struct{}{}
	}
	for _, t := range append(append([]string(nil), f.Types...), o.Types...) {
		types[t] = struct{}{}
	}
	return Facets{Categories: sortedKeys(cats), Types: sortedKeys(types)}
}
