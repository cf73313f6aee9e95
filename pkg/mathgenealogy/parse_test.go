package mathgenealogy

import (
	"strings"
	"testing"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
)

const gaussPage = `<html><head><title>Carl Friedrich Gauß - The Mathematics Genealogy Project</title></head>
<body>
<div id="paddingWrapper">
<h2 style="text-align: center">Carl Friedrich  Gau&#223;</h2>
<div style="line-height: 30px; text-align: center">
<span style="margin-right: 0.5em"><span style="color: #006633">Ph.D.</span> Universit&#228;t Helmstedt</span>
<span style="margin-right: 0.5em">1799</span>
</div>
<p style="text-align: center">Advisor: <a href="id.php?id=57670">Johann Friedrich Pfaff</a></p>
<p style="text-align: center">Students:</p>
<table border="0">
<tr><td><a href="id.php?id=18232">Christian Ludwig Gerling</a></td><td>1812</td></tr>
<tr><td><a href="id.php?id=18230">Christoph Gudermann</a></td><td>1841</td></tr>
<tr><td><a href="id.php?id=18231">Carl Gustav Jacob Jacobi</a></td><td>1825</td></tr>
</table>
</div>
</body></html>`

func TestParseRecordFull(t *testing.T) {
	rec, err := ParseRecord(strings.NewReader(gaussPage), 18231)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}

	if rec.ID != 18231 {
		t.Errorf("ID = %d, want 18231", rec.ID)
	}
	if rec.Name != "Carl Friedrich Gauß" {
		t.Errorf("Name = %q, want %q", rec.Name, "Carl Friedrich Gauß")
	}
	if rec.Institution == nil || *rec.Institution != "Universität Helmstedt" {
		t.Errorf("Institution = %v, want Universität Helmstedt", rec.Institution)
	}
	if rec.Year == nil || *rec.Year != 1799 {
		t.Errorf("Year = %v, want 1799", rec.Year)
	}
	if len(rec.Advisors) != 1 || rec.Advisors[0] != 57670 {
		t.Errorf("Advisors = %v, want [57670]", rec.Advisors)
	}
	want := []int{18232, 18230}
	if len(rec.Students) != 2 || rec.Students[0] != want[0] || rec.Students[1] != want[1] {
		t.Errorf("Students = %v, want %v (self link excluded)", rec.Students, want)
	}
}

func TestParseRecordNoDegree(t *testing.T) {
	page := `<html><body>
<h2>Test Person</h2>
<p>Advisor: Unknown</p>
</body></html>`

	rec, err := ParseRecord(strings.NewReader(page), 5)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}
	if rec.Institution != nil {
		t.Errorf("Institution = %v, want nil", *rec.Institution)
	}
	if rec.Year != nil {
		t.Errorf("Year = %v, want nil", *rec.Year)
	}
	if len(rec.Advisors) != 0 {
		t.Errorf("Advisors = %v, want none", rec.Advisors)
	}
}

func TestParseRecordYearOnly(t *testing.T) {
	page := `<html><body>
<h2>Test Person</h2>
<div><span><span>Ph.D.</span></span> <span>1903</span></div>
</body></html>`

	rec, err := ParseRecord(strings.NewReader(page), 7)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}
	if rec.Institution != nil {
		t.Errorf("Institution = %q, want nil", *rec.Institution)
	}
	if rec.Year == nil || *rec.Year != 1903 {
		t.Errorf("Year = %v, want 1903", rec.Year)
	}
}

func TestParseRecordInstitutionOnly(t *testing.T) {
	page := `<html><body>
<h2>Test Person</h2>
<div><span><span>Ph.D.</span> University of Oxford</span></div>
</body></html>`

	rec, err := ParseRecord(strings.NewReader(page), 8)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}
	if rec.Institution == nil || *rec.Institution != "University of Oxford" {
		t.Errorf("Institution = %v, want University of Oxford", rec.Institution)
	}
	if rec.Year != nil {
		t.Errorf("Year = %v, want nil", *rec.Year)
	}
}

func TestParseRecordMultipleAdvisors(t *testing.T) {
	page := `<html><body>
<h2>Test Person</h2>
<p>Advisor 1: <a href="id.php?id=10">A</a>
Advisor 2: <a href="id.php?id=20">B</a></p>
</body></html>`

	rec, err := ParseRecord(strings.NewReader(page), 9)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}
	want := []int{10, 20}
	if len(rec.Advisors) != 2 || rec.Advisors[0] != want[0] || rec.Advisors[1] != want[1] {
		t.Errorf("Advisors = %v, want %v", rec.Advisors, want)
	}
}

func TestParseRecordDuplicateLinks(t *testing.T) {
	page := `<html><body>
<h2>Test Person</h2>
<p>Advisor 1: <a href="id.php?id=10">A</a>
Advisor 2: <a href="id.php?id=10">A again</a></p>
</body></html>`

	rec, err := ParseRecord(strings.NewReader(page), 9)
	if err != nil {
		t.Fatalf("ParseRecord() error: %v", err)
	}
	if len(rec.Advisors) != 1 || rec.Advisors[0] != 10 {
		t.Errorf("Advisors = %v, want [10]", rec.Advisors)
	}
}

func TestParseRecordNotFound(t *testing.T) {
	page := `<html><body>
<p>You have specified an ID that does not exist in the database. Please back up and try again.</p>
</body></html>`

	_, err := ParseRecord(strings.NewReader(page), 999999999)
	if !apperrors.Is(err, apperrors.ErrCodeRecordNotFound) {
		t.Errorf("ParseRecord() error = %v, want RECORD_NOT_FOUND", err)
	}
}

func TestParseRecordNoName(t *testing.T) {
	page := `<html><body><p>nothing here</p></body></html>`

	_, err := ParseRecord(strings.NewReader(page), 4)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("ParseRecord() error = %v, want INVALID_FORMAT", err)
	}
}

func TestLinkID(t *testing.T) {
	tests := []struct {
		name string
		href string
		want int
		ok   bool
	}{
		{"plain", "id.php?id=145", 145, true},
		{"absolute", "https://www.mathgenealogy.org/id.php?id=145", 145, true},
		{"extra params", "id.php?id=145&fChrono=1", 145, true},
		{"fragment", "id.php?id=145#top", 145, true},
		{"not a record link", "letter.php?letter=G", 0, false},
		{"malformed id", "id.php?id=abc", 0, false},
		{"negative id", "id.php?id=-3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := `<html><body><h2>N</h2><table><tr><td><a href="` + tt.href + `">x</a></td></tr></table></body></html>`
			rec, err := ParseRecord(strings.NewReader(page), 1)
			if err != nil {
				t.Fatalf("ParseRecord() error: %v", err)
			}
			if tt.ok {
				if len(rec.Students) != 1 || rec.Students[0] != tt.want {
					t.Errorf("Students = %v, want [%d]", rec.Students, tt.want)
				}
			} else if len(rec.Students) != 0 {
				t.Errorf("Students = %v, want none", rec.Students)
			}
		})
	}
}

func TestGenealogyRecordConversion(t *testing.T) {
	inst := "MIT"
	year := 1950
	rec := &Record{ID: 42, Name: "Test Person", Institution: &inst, Year: &year}

	gr, err := rec.GenealogyRecord()
	if err != nil {
		t.Fatalf("GenealogyRecord() error: %v", err)
	}
	if got := gr.Label(); got != `Test Person \nMIT (1950)` {
		t.Errorf("Label() = %q", got)
	}
	if id, ok := gr.ID(); !ok || id != 42 {
		t.Errorf("ID() = %d, %v, want 42, true", id, ok)
	}
}
