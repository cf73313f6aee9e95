package mathgenealogy

import (
	"github.com/mklemetti/geneagraph/pkg/genealogy"
)

// Record holds the raw data extracted from a Math Genealogy Project page.
//
// Institution and Year are pointers because both are genuinely optional on
// the site; a nil pointer means the page did not list the value. Advisors
// and Students hold genealogy ids in page order.
//
// Zero values: a nil Advisors or Students slice is valid and means none
// were listed. This struct is safe for concurrent reads after construction.
type Record struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Institution *string `json:"institution,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Advisors    []int   `json:"advisors,omitempty"`
	Students    []int   `json:"students,omitempty"`
}

// GenealogyRecord converts the raw record into a graph record.
func (r *Record) GenealogyRecord() (*genealogy.Record, error) {
	opts := []genealogy.RecordOption{genealogy.WithID(r.ID)}
	if r.Institution != nil {
		opts = append(opts, genealogy.WithInstitution(*r.Institution))
	}
	if r.Year != nil {
		opts = append(opts, genealogy.WithYear(*r.Year))
	}
	return genealogy.NewRecord(r.Name, opts...)
}
