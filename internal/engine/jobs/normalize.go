package jobs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// Source column names of the postings table.
const (
	ColTitle         = "Job Title"
	ColCompany       = "Company"
	ColLocation      = "Location"
	ColMinExperience = "Min_Experience"
	ColMaxExperience = "Max_Experience"
	ColExperience    = "Experience"
	ColPosted        = "Posted"
	ColDescription   = "Description"
	ColSkills        = "Skills"
	ColSkillList     = "Skill_List"
	ColSkillTypeList = "Skill_Type_List"
)

// Columns lists the source columns in their canonical order.
var Columns = []string{
	ColTitle, ColCompany, ColLocation,
	ColMinExperience, ColMaxExperience, ColExperience,
	ColPosted, ColDescription, ColSkills,
	ColSkillList, ColSkillTypeList,
}

// RawRow is one source row with every cell still in its text encoding.
type RawRow struct {
	Title         string
	Company       string
	Location      string
	MinExperience string
	MaxExperience string
	Experience    string
	Posted        string
	Description   string
	Skills        string
	SkillList     string
	SkillTypeList string
}

// ErrMalformedList is returned for list cells that are not a sequence of string literals.
var ErrMalformedList = errors.New("malformed list literal")

// ParseError describes a cell that could not be decoded.
// The cell is downgraded (empty list, missing number) and the load continues.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: column %s: %v (value %q)", e.Row, e.Column, e.Err, engine.TruncateRunes(e.Value, 40, "..."))
}

func (e *ParseError) Unwrap() error { return e.Err }

// missingMarkers are the NA spellings treated as an absent cell.
var missingMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

func isMissing(cell string) bool {
	return missingMarkers[strings.TrimSpace(cell)]
}

// Normalize decodes raw rows into postings and derives each experience band.
// Decode failures never abort: the offending cell is downgraded and reported
// in the returned error list, one *ParseError per cell.
func Normalize(rows []RawRow) ([]JobPosting, []error) {
	postings := make([]JobPosting, 0, len(rows))
	var errs []error

	for i, r := range rows {
		rowNum := i + 1
		p := JobPosting{
			Title:       cleanText(r.Title),
			Company:     cleanText(r.Company),
			Location:    cleanText(r.Location),
			Experience:  cleanText(r.Experience),
			Posted:      cleanText(r.Posted),
			Description: cleanText(r.Description),
			Skills:      cleanText(r.Skills),
		}

		var err error
		if p.MinExperience, err = ParseExperience(r.MinExperience); err != nil {
			errs = append(errs, &ParseError{Row: rowNum, Column: ColMinExperience, Value: r.MinExperience, Err: err})
		}
		if p.MaxExperience, err = ParseExperience(r.MaxExperience); err != nil {
			errs = append(errs, &ParseError{Row: rowNum, Column: ColMaxExperience, Value: r.MaxExperience, Err: err})
		}
		if p.SkillList, err = DecodeList(r.SkillList); err != nil {
			errs = append(errs, &ParseError{Row: rowNum, Column: ColSkillList, Value: r.SkillList, Err: err})
		}
		if p.SkillTypeList, err = DecodeList(r.SkillTypeList); err != nil {
			errs = append(errs, &ParseError{Row: rowNum, Column: ColSkillTypeList, Value: r.SkillTypeList, Err: err})
		}

		p.ExperienceBand = BandFor(p.MinExperience, p.MaxExperience)
		postings = append(postings, p)
	}
	return postings, errs
}

// cleanText maps missing markers to the empty string.
func cleanText(cell string) string {
	if isMissing(cell) {
		return ""
	}
	return cell
}

// ParseExperience parses a years-of-experience cell.
// Missing cells return nil without error; unparsable or non-finite values
// return nil with an error.
func ParseExperience(cell string) (*float64, error) {
	if isMissing(cell) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return nil, fmt.Errorf("parse experience: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("parse experience: non-finite value %v", v)
	}
	return &v, nil
}

// DecodeList decodes a serialized sequence literal such as ['Python', "SQL"]
// or ('a',) into its elements. Missing cells decode to an empty list.
// On error the returned list is empty, never nil.
func DecodeList(cell string) ([]string, error) {
	if isMissing(cell) {
		return []string{}, nil
	}
	items, err := decodeSequence(strings.TrimSpace(cell))
	if err != nil {
		return []string{}, err
	}
	return items, nil
}

func decodeSequence(s string) ([]string, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: too short", ErrMalformedList)
	}
	var closer byte
	switch s[0] {
	case '[':
		closer = ']'
	case '(':
		closer = ')'
	default:
		return nil, fmt.Errorf("%w: expected '[' or '(' at start", ErrMalformedList)
	}

	items := []string{}
	pos := 1
	for {
		pos = skipSpace(s, pos)
		if pos >= len(s) {
			return nil, fmt.Errorf("%w: unterminated sequence", ErrMalformedList)
		}
		if s[pos] == closer {
			pos++
			break
		}

		item, next, err := decodeString(s, pos)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		pos = skipSpace(s, next)
		if pos >= len(s) {
			return nil, fmt.Errorf("%w: unterminated sequence", ErrMalformedList)
		}
		switch s[pos] {
		case ',':
			pos++
		case closer:
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedList, s[pos], pos)
		}
	}

	if skipSpace(s, pos) != len(s) {
		return nil, fmt.Errorf("%w: trailing data after sequence", ErrMalformedList)
	}
	return items, nil
}

// decodeString reads a quoted string literal starting at s[pos] and returns
// its value and the offset just past the closing quote.
func decodeString(s string, pos int) (string, int, error) {
	quote := s[pos]
	if quote != '\'' && quote != '"' {
		return "", pos, fmt.Errorf("%w: expected string literal at offset %d", ErrMalformedList, pos)
	}

	var b strings.Builder
	for i := pos + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(s) {
				return "", i, fmt.Errorf("%w: dangling escape", ErrMalformedList)
			}
			i++
			switch s[i] {
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case c == '\n':
			return "", i, fmt.Errorf("%w: newline in string literal", ErrMalformedList)
		default:
			b.WriteByte(c)
		}
	}
	return "", len(s), fmt.Errorf("%w: unterminated string literal", ErrMalformedList)
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
		pos++
	}
	return pos
}
