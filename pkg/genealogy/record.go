package genealogy

import "fmt"

// Record holds the data of one mathematician. It is immutable after
// construction except for the id, which [Graph.AddNodeObject] resolves to a
// synthetic value when absent.
//
// Use [NewRecord] to construct instances; the zero value is not usable.
type Record struct {
	name        string
	institution string
	year        int
	id          int

	hasInstitution bool
	hasYear        bool
	hasID          bool
}

// RecordOption configures optional Record fields during construction.
type RecordOption func(*Record)

// WithInstitution sets the institution where the degree was earned.
func WithInstitution(institution string) RecordOption {
	return func(r *Record) {
		r.institution = institution
		r.hasInstitution = true
	}
}

// WithYear sets the year the degree was earned. The value is not validated
// against any calendar; it is data, not a date.
func WithYear(year int) RecordOption {
	return func(r *Record) {
		r.year = year
		r.hasYear = true
	}
}

// WithID sets the Math Genealogy Project id. Records without an id receive a
// synthetic negative id when inserted into a [Graph].
func WithID(id int) RecordOption {
	return func(r *Record) {
		r.id = id
		r.hasID = true
	}
}

// NewRecord creates a Record with the given name and options.
// Returns a *ValidationError if name is empty.
func NewRecord(name string, opts ...RecordOption) (*Record, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	r := &Record{name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Name returns the mathematician's name.
func (r *Record) Name() string { return r.name }

// Institution returns the institution, or "" if none is recorded.
func (r *Record) Institution() string { return r.institution }

// Year returns the graduation year. Meaningful only when HasYear is true.
func (r *Record) Year() int { return r.year }

// ID returns the record's id and whether one has been assigned.
func (r *Record) ID() (int, bool) { return r.id, r.hasID }

// HasInstitution reports whether an institution is recorded.
func (r *Record) HasInstitution() bool { return r.hasInstitution }

// HasYear reports whether a graduation year is recorded.
func (r *Record) HasYear() bool { return r.hasYear }

// setID assigns the record id. Called by the graph when resolving nodes
// that were constructed without one.
func (r *Record) setID(id int) {
	r.id = id
	r.hasID = true
}

// Equal reports whether two records have the same id. Comparing records
// before their ids are resolved is outside the contract; insert both into a
// Graph first.
func (r *Record) Equal(other *Record) bool {
	return r.id == other.id
}

// Compare orders two records numerically by id, returning -1, 0, or 1.
// Like Equal, it requires both ids to be resolved.
func (r *Record) Compare(other *Record) int {
	switch {
	case r.id < other.id:
		return -1
	case r.id > other.id:
		return 1
	default:
		return 0
	}
}

// Label renders the record as a dot label body. The `\n` separators are
// Graphviz line-break escapes and are emitted as two literal characters,
// exactly as they must appear inside a label attribute:
//
//	name                      (no institution, no year)
//	name \n(year)             (year only)
//	name \ninstitution        (institution only)
//	name \ninstitution (year) (both)
func (r *Record) Label() string {
	switch {
	case r.hasInstitution && r.hasYear:
		return fmt.Sprintf(`%s \n%s (%d)`, r.name, r.institution, r.year)
	case r.hasInstitution:
		return fmt.Sprintf(`%s \n%s`, r.name, r.institution)
	case r.hasYear:
		return fmt.Sprintf(`%s \n(%d)`, r.name, r.year)
	default:
		return r.name
	}
}
