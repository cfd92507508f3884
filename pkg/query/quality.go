package query

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gardar/metsmine/pkg/page"
)

// Dictionary is a set of reference words used to estimate OCR quality.
type Dictionary map[string]struct{}

// NewDictionary builds a dictionary from words.
func NewDictionary(words ...string) Dictionary {
	d := make(Dictionary, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			d[w] = struct{}{}
		}
	}
	return d
}

// LoadDictionary reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	d := make(Dictionary)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		d[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return d, nil
}

// Contains reports whether w is in the dictionary.
func (d Dictionary) Contains(w string) bool {
	_, ok := d[w]
	return ok
}

// WordsWithinDictionary returns the truncated integer percentage of the
// page's non-empty normalized words found in dict, or "0" when the page has
// no such words.
func WordsWithinDictionary(p *page.Page, dict Dictionary, norm Normalizer) string {
	norm = orNone(norm)
	var total, known int
	for _, w := range p.Words {
		n := norm(w)
		if n == "" {
			continue
		}
		total++
		if dict.Contains(n) {
			known++
		}
	}
	if total == 0 {
		return "0"
	}
	return strconv.Itoa(known * 100 / total)
}

// ConfidenceAverage returns the mean of the page's word confidences, or "0"
// when it has none. A confidence that is not a number is an error.
func ConfidenceAverage(p *page.Page) (string, error) {
	if len(p.WordConfidences) == 0 {
		return "0", nil
	}
	var sum float64
	for i, wc := range p.WordConfidences {
		f, err := strconv.ParseFloat(strings.TrimSpace(wc), 64)
		if err != nil {
			return "", fmt.Errorf("page %s: word confidence %d: %w", p.Code, i, err)
		}
		sum += f
	}
	return strconv.FormatFloat(sum/float64(len(p.WordConfidences)), 'f', -1, 64), nil
}

// PageQuality is the quality estimate of one page.
type PageQuality struct {
	PageCode           string `json:"page_code" yaml:"page_code"`
	PageName           string `json:"page_name" yaml:"page_name"`
	DictionaryCoverage string `json:"dictionary_coverage" yaml:"dictionary_coverage"`
	ConfidenceAverage  string `json:"confidence_average" yaml:"confidence_average"`
}

// MeasurePage computes both quality estimates for p.
func MeasurePage(p *page.Page, dict Dictionary, norm Normalizer) (PageQuality, error) {
	avg, err := ConfidenceAverage(p)
	if err != nil {
		return PageQuality{}, err
	}
	return PageQuality{
		PageCode:           p.Code,
		PageName:           p.Name,
		DictionaryCoverage: WordsWithinDictionary(p, dict, norm),
		ConfidenceAverage:  avg,
	}, nil
}
