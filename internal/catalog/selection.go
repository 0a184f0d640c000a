package catalog

// Selection is the active filter. It is either Unfiltered, served page by
// page by the backend, or Filtered, fetched whole and sliced locally.
type Selection interface {
	selection()
}

type Unfiltered struct{}

// Filtered has at least one of Type or Category set.
type Filtered struct {
	Type     string
	Category string
}

func (Unfiltered) selection() {}
func (Filtered) selection()   {}

type State string

const (
	StateUnfiltered              State = "Unfiltered"
	StateTypeFiltered            State = "TypeFiltered"
	StateTypeAndCategoryFiltered State = "TypeAndCategoryFiltered"
	StateCategoryFiltered        State = "CategoryFiltered"
)

func newSelection(t, c string) Selection {
	if t == "" && c == "" {
		return Unfiltered{}
	}
	return Filtered{Type: t, Category: c}
}

func stateOf(s Selection) State {
	switch s := s.(type) {
	case Unfiltered:
		return StateUnfiltered
	case Filtered:
		switch {
		case s.Type != "" && s.Category != "":
			return StateTypeAndCategoryFiltered
		case s.Type != "":
			return StateTypeFiltered
		default:
			return StateCategoryFiltered
		}
	default:
		panic("catalog: unknown selection")
	}
}

func typeOf(s Selection) string {
	if f, ok := s.(Filtered); ok {
		return f.Type
	}
	return ""
}

func categoryOf(s Selection) string {
	if f, ok := s.(Filtered); ok {
		return f.Category
	}
	return ""
}
