package mathgenealogy

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
)

var yearRE = regexp.MustCompile(`^\d{4}$`)

// notFoundMarker appears in the page body when an id has no record.
const notFoundMarker = "You have specified an ID that does not exist"

// ParseRecord extracts a Record from a genealogy page.
//
// The page layout it understands:
//
//   - The mathematician's name is the text of the first <h2>.
//   - The degree line is the first <div> holding <span> children. A span
//     with a nested span carries the degree (inner) and institution
//     (remaining text); a plain span with a four-digit number is the year.
//   - Advisor links are id.php anchors inside a <p> mentioning "Advisor".
//   - Student links are id.php anchors inside a <table>.
//
// Only the first degree line is used when a record lists several degrees.
// Returns an error with code RECORD_NOT_FOUND when the page reports an
// unknown id, and INVALID_FORMAT when no name can be extracted.
func ParseRecord(r io.Reader, id int) (*Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parsing record %d", id)
	}

	if strings.Contains(textContent(doc), notFoundMarker) {
		return nil, apperrors.New(apperrors.ErrCodeRecordNotFound, "no record with id %d", id)
	}

	rec := &Record{ID: id}

	if h2 := findElement(doc, "h2"); h2 != nil {
		rec.Name = collapse(textContent(h2))
	}
	if rec.Name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "record %d: no name found", id)
	}

	if div := findDegreeLine(doc); div != nil {
		rec.Institution, rec.Year = parseDegreeLine(div)
	}

	rec.Advisors = advisorIDs(doc, id)
	rec.Students = studentIDs(doc, id)
	return rec, nil
}

// findDegreeLine returns the first div with span element children.
func findDegreeLine(n *html.Node) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(node, "div") {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if isElement(c, "span") {
					found = node
					return false
				}
			}
		}
		return true
	})
	return found
}

// parseDegreeLine reads institution and year from the spans of a degree div.
func parseDegreeLine(div *html.Node) (institution *string, year *int) {
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c, "span") {
			continue
		}
		if inner := findElement(c, "span"); inner != nil && inner != c {
			// Inner span is the degree name; the outer span's remaining
			// text is the granting institution.
			if inst := collapse(textExcept(c, inner)); inst != "" && institution == nil {
				institution = &inst
			}
			continue
		}
		text := collapse(textContent(c))
		if yearRE.MatchString(text) {
			if y, err := strconv.Atoi(text); err == nil && year == nil {
				year = &y
			}
			continue
		}
		if text != "" && institution == nil {
			institution = &text
		}
	}
	return institution, year
}

// advisorIDs collects record links from paragraphs mentioning advisors.
func advisorIDs(doc *html.Node, self int) []int {
	var ids []int
	seen := map[int]bool{self: true}
	walk(doc, func(n *html.Node) bool {
		if isElement(n, "p") && strings.Contains(textContent(n), "Advisor") {
			for _, id := range recordLinks(n) {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			return false
		}
		return true
	})
	return ids
}

// studentIDs collects record links from the students table.
func studentIDs(doc *html.Node, self int) []int {
	var ids []int
	seen := map[int]bool{self: true}
	walk(doc, func(n *html.Node) bool {
		if isElement(n, "table") {
			for _, id := range recordLinks(n) {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			return false
		}
		return true
	})
	return ids
}

// recordLinks returns the genealogy ids of all id.php anchors under n,
// in document order.
func recordLinks(n *html.Node) []int {
	var ids []int
	walk(n, func(node *html.Node) bool {
		if isElement(node, "a") {
			if id, ok := linkID(node); ok {
				ids = append(ids, id)
			}
		}
		return true
	})
	return ids
}

// linkID extracts the id parameter from an id.php anchor href.
func linkID(a *html.Node) (int, bool) {
	for _, attr := range a.Attr {
		if attr.Key != "href" {
			continue
		}
		idx := strings.Index(attr.Val, "id.php?id=")
		if idx < 0 {
			return 0, false
		}
		raw := attr.Val[idx+len("id.php?id="):]
		if amp := strings.IndexAny(raw, "&#"); amp >= 0 {
			raw = raw[:amp]
		}
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// walk visits nodes depth-first. Returning false from fn skips the
// node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// findElement returns the first element with the given tag under n,
// excluding n itself unless it matches.
func findElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(node, tag) && node != n {
			found = node
			return false
		}
		return true
	})
	if found == nil && isElement(n, tag) {
		return n
	}
	return found
}

// textContent returns the concatenated text of the subtree rooted at n.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

// textExcept returns the text of n's subtree, skipping the skip subtree.
func textExcept(n, skip *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		if node == skip {
			return false
		}
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

// collapse trims and normalizes all runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
