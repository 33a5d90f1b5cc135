// ===========================================================================
//
//                            PUBLIC DOMAIN NOTICE
//            National Center for Biotechnology Information (NCBI)
//
//  This software/database is a "United States Government Work" under the
//  terms of the United States Copyright Act. It was written as part of
//  the author's official duties as a United States Government employee and
//  thus cannot be copyrighted. This software/database is freely available
//  to the public for use. The National Library of Medicine and the U.S.
//  Government do not place any restriction on its use or reproduction.
//  We would, however, appreciate having the NCBI and the author cited in
//  any work or product based on this material.
//
//  Although all reasonable efforts have been taken to ensure the accuracy
//  and reliability of the software and data, the NLM and the U.S.
//  Government do not and cannot warrant the performance or results that
//  may be obtained by using this software or data. The NLM and the U.S.
//  Government disclaim all warranties, express or implied, including
//  warranties of performance, merchantability or fitness for any particular
//  purpose.
//
// ===========================================================================
//
// File Name:  location.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

import (
	"regexp"
	"strconv"
	"strings"
)

// Strand marks which nucleic acid strand a location refers to
type Strand int8

// strand values
const (
	StrandUndefined Strand = 0
	StrandForward   Strand = 1
	StrandReverse   Strand = -1
)

// Operation joins the parts of a compound location
type Operation int

// compound operations; OpNone marks a simple location
const (
	OpNone Operation = iota
	OpJoin
	OpOrder
	OpBond
)

// String returns the operator keyword
func (op Operation) String() string {

	switch op {
	case OpJoin:
		return "join"
	case OpOrder:
		return "order"
	case OpBond:
		return "bond"
	}
	return ""
}

// Location is a simple span or a compound of simple spans. Simple
// locations have Op OpNone and use Start, End, Strand, and Reference;
// coordinates are 0-based half-open with Start never after End.
// Compound locations have two or more simple Parts and an operation
// that never nests. Locations are immutable once returned by a parser.
type Location struct {
	Op        Operation
	Start     Position
	End       Position
	Strand    Strand
	Reference string
	RefDB     string
	Parts     []*Location
}

// IsCompound reports whether the location is a join, order, or bond
func (l *Location) IsCompound() bool {

	return l.Op != OpNone
}

// Bounds returns the 0-based half-open extent covered by the location
func (l *Location) Bounds() (int, int) {

	if !l.IsCompound() {
		return l.Start.MonomerPosition(), l.End.MonomerPosition()
	}

	fst, scd := l.Parts[0].Bounds()
	for _, part := range l.Parts[1:] {
		lo, hi := part.Bounds()
		if lo < fst {
			fst = lo
		}
		if hi > scd {
			scd = hi
		}
	}
	return fst, scd
}

// String renders the location back in 1-based GenBank form, for
// diagnostics only; whitespace and line wrap are not preserved
func (l *Location) String() string {

	if l.IsCompound() {
		var items []string
		for _, part := range l.Parts {
			items = append(items, part.String())
		}
		return l.Op.String() + "(" + strings.Join(items, ",") + ")"
	}

	fst := l.Start
	fst.Pos++
	if fst.Kind == WithinPosition {
		fst.Low++
		fst.High++
	}
	if fst.Kind == OneOfPosition {
		fst.Choices = append([]int(nil), fst.Choices...)
		for i := range fst.Choices {
			fst.Choices[i]++
		}
	}

	str := fst.String() + ".." + l.End.String()
	if l.Reference != "" {
		str = l.Reference + ":" + str
	}
	if l.Strand == StrandReverse {
		str = "complement(" + str + ")"
	}
	return str
}

// LOCATION GRAMMAR REGULAR EXPRESSION TABLES

// the tables live at file scope so the simple and compound parsers can
// share them without cyclic setup

const (
	refPattern = `[a-zA-Z][a-zA-Z0-9_.|]*[a-zA-Z0-9]?:`
	posPattern = `(?:one-of\(\d+(?:,\d+)+\)|\(\d+\.\d+\)|[<>]?\d+|\?\d*)`
	immPattern = `(?:` + posPattern + `\.\.` + posPattern + `|\d+\^\d+|bond\(` + posPattern + `\)|` + posPattern + `)`
)

var (
	reAnyLocation = regexp.MustCompile(`(?:` + refPattern + `)?(?:complement\((?:` + refPattern + `)?` + immPattern + `\)|` + immPattern + `)`)
	reRefPrefix   = regexp.MustCompile(`^(` + refPattern[:len(refPattern)-1] + `):(.+)$`)
	rePair        = regexp.MustCompile(`^(` + posPattern + `)\.\.(` + posPattern + `)$`)
	reBetween     = regexp.MustCompile(`^(\d+)\^(\d+)$`)
	reBond        = regexp.MustCompile(`^bond\((` + posPattern + `)\)$`)
	reSolo        = regexp.MustCompile(`^` + posPattern + `$`)
)

// splitLocation cuts a compound interior into an alternating list of
// separators and captured sub-locations; callers keep the odd entries
func splitLocation(str string) []string {

	var res []string

	last := 0
	for _, span := range reAnyLocation.FindAllStringIndex(str, -1) {
		res = append(res, str[last:span[0]], str[span[0]:span[1]])
		last = span[1]
	}
	res = append(res, str[last:])

	return res
}

// containsNestedOperator detects join or order inside a compound
// interior, or a bond with more than one position
func containsNestedOperator(str string) bool {

	if strings.Contains(str, "join(") || strings.Contains(str, "order(") {
		return true
	}

	idx := strings.Index(str, "bond(")
	for idx >= 0 {
		rest := str[idx+5:]
		end := strings.Index(rest, ")")
		if end >= 0 && strings.Contains(rest[:end], ",") {
			return true
		}
		next := strings.Index(rest, "bond(")
		if next < 0 {
			break
		}
		idx += 5 + next
	}

	return false
}

// ParseLocation converts a feature location expression to the model.
// The molecule length diagnoses origin wrapping, circular enables it,
// and stranded selects Forward rather than Undefined as the default
// strand. Locally-recoverable malformations go through Warner.
func ParseLocation(text string, length int, circular, stranded bool) (*Location, error) {

	raw := text

	// trailing comma repair
	if strings.Contains(text, ",)") {
		Warner("dropping trailing comma in feature location %q", raw)
		text = strings.ReplaceAll(text, ",)", ")")
	}

	outer := StrandUndefined
	if stranded {
		outer = StrandForward
	}

	body := text
	if strings.HasPrefix(body, "complement(") && strings.HasSuffix(body, ")") {
		outer = StrandReverse
		body = body[len("complement(") : len(body)-1]
	}

	op := OpNone
	switch {
	case strings.HasPrefix(body, "join(") && strings.HasSuffix(body, ")"):
		op = OpJoin
		body = body[len("join(") : len(body)-1]
	case strings.HasPrefix(body, "order(") && strings.HasSuffix(body, ")"):
		op = OpOrder
		body = body[len("order(") : len(body)-1]
	case strings.HasPrefix(body, "bond(") && strings.HasSuffix(body, ")") && strings.Contains(body, ","):
		op = OpBond
		body = body[len("bond(") : len(body)-1]
	}

	if op == OpNone {
		loc, err := parseSubLocation(body, length, circular)
		if err != nil {
			return nil, err
		}
		if err := applyStrand(loc, outer); err != nil {
			return nil, err
		}
		return loc, nil
	}

	if containsNestedOperator(body) {
		return nil, parseErrorf(ErrNestedOperators, 0, "operators nest in location %q", raw)
	}

	pieces := splitLocation(body)

	// separators may hold only commas and spaces
	for i := 0; i < len(pieces); i += 2 {
		sep := strings.Trim(pieces[i], ", ")
		if sep != "" {
			return nil, parseErrorf(ErrLocationSyntax, 0, "unparsed text %q in location %q", sep, raw)
		}
	}

	var parts []*Location
	for i := 1; i < len(pieces); i += 2 {
		sub, err := parseSubLocation(pieces[i], length, circular)
		if err != nil {
			return nil, err
		}
		if sub.IsCompound() {
			// an origin-wrapping sub-location contributes its spans
			parts = append(parts, sub.Parts...)
		} else {
			parts = append(parts, sub)
		}
	}

	if len(parts) == 0 {
		return nil, parseErrorf(ErrLocationSyntax, 0, "no sub-locations in %q", raw)
	}

	if outer == StrandReverse {
		for _, part := range parts {
			if part.Strand == StrandReverse {
				return nil, parseErrorf(ErrDoubleComplement, 0, "complement within complement in %q", raw)
			}
		}
	}
	for _, part := range parts {
		if part.Strand == StrandUndefined {
			part.Strand = outer
		}
	}
	if outer == StrandReverse {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return &Location{Op: op, Strand: commonStrand(parts), Parts: parts}, nil
}

// applyStrand pushes the outer strand onto a freshly parsed simple
// location, or onto the spans of an origin-wrap compound
func applyStrand(loc *Location, outer Strand) error {

	if !loc.IsCompound() {
		if loc.Strand == StrandReverse && outer == StrandReverse {
			return parseErrorf(ErrDoubleComplement, 0, "complement within complement in %q", loc.String())
		}
		if loc.Strand == StrandUndefined {
			loc.Strand = outer
		}
		return nil
	}

	for _, part := range loc.Parts {
		if part.Strand == StrandReverse && outer == StrandReverse {
			return parseErrorf(ErrDoubleComplement, 0, "complement within complement in %q", loc.String())
		}
	}
	for _, part := range loc.Parts {
		if part.Strand == StrandUndefined {
			part.Strand = outer
		}
	}
	if outer == StrandReverse {
		parts := loc.Parts
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	loc.Strand = commonStrand(loc.Parts)

	return nil
}

// commonStrand reports the strand shared by every part, or Undefined
func commonStrand(parts []*Location) Strand {

	str := parts[0].Strand
	for _, part := range parts[1:] {
		if part.Strand != str {
			return StrandUndefined
		}
	}
	return str
}

// parseSubLocation handles one sub-expression, unwrapping an inner
// complement before delegating to the simple location parser
func parseSubLocation(text string, length int, circular bool) (*Location, error) {

	if strings.HasPrefix(text, "complement(") && strings.HasSuffix(text, ")") {
		loc, err := ParseSimpleLocation(text[len("complement("):len(text)-1], length, circular)
		if err != nil {
			return nil, err
		}
		if loc.IsCompound() {
			parts := loc.Parts
			for _, part := range parts {
				part.Strand = StrandReverse
			}
			for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
				parts[i], parts[j] = parts[j], parts[i]
			}
			loc.Strand = StrandReverse
		} else {
			loc.Strand = StrandReverse
		}
		return loc, nil
	}

	return ParseSimpleLocation(text, length, circular)
}

// ParseSimpleLocation converts one span expression. The result is
// normally a simple location; a span that crosses the origin of a
// circular molecule comes back as a two-part join.
func ParseSimpleLocation(text string, length int, circular bool) (*Location, error) {

	raw := text

	// fast path for the overwhelmingly common S..E form
	if fst, scd, ok := strings.Cut(text, ".."); ok {
		s, serr := strconv.Atoi(fst)
		e, eerr := strconv.Atoi(scd)
		if serr == nil && eerr == nil && 0 <= s-1 && s-1 < e {
			return &Location{
				Start: Position{Kind: ExactPosition, Pos: s - 1},
				End:   Position{Kind: ExactPosition, Pos: e},
			}, nil
		}
	}

	ref := ""
	if m := reRefPrefix.FindStringSubmatch(text); m != nil {
		ref = m[1]
		text = m[2]
	}

	if m := reBond.FindStringSubmatch(text); m != nil {
		Warner("dropping bond qualifier in feature location %q", raw)
		text = m[1]
	}

	if m := reBetween.FindStringSubmatch(text); m != nil {
		s, _ := strconv.Atoi(m[1])
		e, _ := strconv.Atoi(m[2])
		if e != s+1 && !(s == length && e == 1) {
			return nil, parseErrorf(ErrLocationSyntax, 0, "between positions %d^%d are not adjacent", s, e)
		}
		pos := Position{Kind: ExactPosition, Pos: s}
		return &Location{Start: pos, End: pos, Reference: ref}, nil
	}

	if m := rePair.FindStringSubmatch(text); m != nil {
		start, err := ParsePosition(m[1], -1)
		if err != nil {
			return nil, err
		}
		end, err := ParsePosition(m[2], 0)
		if err != nil {
			return nil, err
		}

		if start.MonomerPosition() > end.MonomerPosition() {
			// span runs past the origin
			if !circular {
				return nil, parseErrorf(ErrOriginWrapNotCircular, 0,
					"location %q crosses the origin of a non-circular molecule", raw)
			}
			Warner("location %q crosses the origin, rewriting as a compound span", raw)
			fst := &Location{Start: start, End: Position{Kind: ExactPosition, Pos: length}, Reference: ref}
			scd := &Location{Start: Position{Kind: ExactPosition, Pos: 0}, End: end, Reference: ref}
			return &Location{Op: OpJoin, Parts: []*Location{fst, scd}}, nil
		}

		if start.MonomerPosition() < 0 {
			return nil, parseErrorf(ErrNegativeStart, 0, "location %q starts before the first residue", raw)
		}

		return &Location{Start: start, End: end, Reference: ref}, nil
	}

	if reSolo.MatchString(text) {
		start, err := ParsePosition(text, -1)
		if err != nil {
			return nil, err
		}
		end, err := ParsePosition(text, 0)
		if err != nil {
			return nil, err
		}
		if start.Kind == ExactPosition && start.MonomerPosition() < 0 {
			return nil, parseErrorf(ErrNegativeStart, 0, "location %q starts before the first residue", raw)
		}
		return &Location{Start: start, End: end, Reference: ref}, nil
	}

	return nil, parseErrorf(ErrLocationSyntax, 0, "unrecognized location %q", raw)
}
