package vault

import "strconv"

// Entry is one credential record. ID is assigned once and stays stable across
// saves; Order defines list position. Extra holds per-record fields the store
// does not recognize, preserved verbatim across load/save.
type Entry struct {
	ID          int
	ServiceName string
	Username    string
	Password    string
	Notes       string
	Order       int
	Extra       map[string]any
}

// Clone returns a deep copy so callers can fetch-mutate-update without
// aliasing store state.
func (e *Entry) Clone() *Entry {
	out := *e
	if e.Extra != nil {
		out.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// Display returns the list label for an entry.
func (e *Entry) Display() string {
	if e.Username == "" {
		return e.ServiceName
	}
	return e.ServiceName + " [" + e.Username + "]"
}

// parseInt coerces the JSON representations an id or order may arrive in.
func parseInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}
