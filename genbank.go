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
// File Name:  genbank.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

import (
	"io"
	"strings"
)

const twelveSpaces = "            "

// genBankProfile fixes the INSDC skeleton constants for GenBank layout
var genBankProfile = insdcProfile{
	RecordStart:            "LOCUS       ",
	HeaderWidth:            12,
	FeatureStartMarkers:    []string{"FEATURES             Location/Qualifiers", "FEATURES"},
	FeatureEndMarkers:      []string{},
	FeatureQualifierIndent: 21,
	FeatureQualifierSpacer: strings.Repeat(" ", 21),
	SequenceHeaders:        []string{"CONTIG", "ORIGIN", "BASE COUNT", "WGS", "TSA", "TLS"},
}

// GenBankScanner specializes the INSDC skeleton for GenBank flatfiles:
// LOCUS dialect detection, the GenBank footer layout, and the
// pretty-printed sequence block
type GenBankScanner struct {
	*insdcScanner
}

// NewGenBankScanner builds a scanner over a text stream
func NewGenBankScanner(inp io.Reader) *GenBankScanner {

	return &GenBankScanner{insdcScanner: newInsdcScanner(genBankProfile, newLineScanner(inp))}
}

// LOCUS LINE DIALECTS

// residue units appearing in fixed-column LOCUS layouts
func isResidueUnit(str string) bool {

	return str == " bp " || str == " aa " || str == " rc "
}

func isTopology(str string) bool {

	return str == "" || str == "linear" || str == "circular"
}

// field extracts a column range, tolerating short lines
func field(line string, fst, scd int) string {

	if fst >= len(line) {
		return ""
	}
	if scd > len(line) {
		scd = len(line)
	}
	return strings.TrimSpace(line[fst:scd])
}

// feedMolecule routes a residue type string through the molecule type
// and topology callbacks
func feedMolecule(consumer Consumer, resType string) error {

	consumer.ResidueType(resType)

	top := ""
	mol := resType
	for _, tp := range []string{"circular", "linear"} {
		if strings.Contains(mol, tp) {
			top = tp
			mol = strings.TrimSpace(strings.Replace(mol, tp, "", 1))
			break
		}
	}

	consumer.MoleculeType(CompressRunsOfSpaces(mol))
	return consumer.Topology(top)
}

// parseLocus detects the LOCUS line dialect and feeds the header
// fields. Historical and malformed layouts are tried from the most to
// the least constrained signature.
func (s *GenBankScanner) parseLocus(line string, consumer Consumer) error {

	lineNum := s.lines.Line()

	flds := strings.Fields(line)
	if len(flds) < 1 || flds[0] != "LOCUS" {
		return parseErrorf(ErrUnrecognizedLocus, lineNum, "missing LOCUS keyword in %q", line)
	}

	feedSize := func(str string) error {
		if err := consumer.Size(str); err != nil {
			return parseErrorf(ErrBadHeaderField, lineNum, "bad sequence length %q in LOCUS line", str)
		}
		return nil
	}

	// old fixed-column layout, pre release 127
	if len(line) >= 33 && isResidueUnit(line[29:33]) && field(line, 55, 62) == "" {

		nameAndSize := strings.Fields(field(line, 12, 29))
		if len(nameAndSize) >= 1 {
			consumer.Locus(nameAndSize[0])
		}
		if len(nameAndSize) >= 2 {
			if err := feedSize(nameAndSize[1]); err != nil {
				return err
			}
		}

		if err := feedMolecule(consumer, field(line, 33, 52)); err != nil {
			return err
		}
		consumer.DataFileDivision(field(line, 52, 55))
		consumer.Date(field(line, 62, 73))

		return nil
	}

	// new fixed-column layout
	if len(line) >= 44 && isResidueUnit(line[40:44]) && isTopology(field(line, 54, 64)) {

		nameAndSize := strings.Fields(field(line, 12, 40))
		if len(nameAndSize) >= 1 {
			consumer.Locus(nameAndSize[0])
		}
		if len(nameAndSize) >= 2 {
			if err := feedSize(nameAndSize[1]); err != nil {
				return err
			}
		}

		consumer.ResidueType(CompressRunsOfSpaces(field(line, 44, 64)))
		consumer.MoleculeType(field(line, 44, 54))
		if err := consumer.Topology(field(line, 54, 64)); err != nil {
			return err
		}
		consumer.DataFileDivision(field(line, 64, 67))
		consumer.Date(field(line, 68, 79))

		return nil
	}

	// truncated layout holds nothing but the name
	if len(flds) == 2 {
		consumer.Locus(flds[1])
		return nil
	}

	isUnit := func(str string) bool { return str == "bp" || str == "aa" }

	// well-formed fields with invalid spacing
	if len(flds) == 8 && isUnit(flds[3]) && (flds[5] == "linear" || flds[5] == "circular") {

		Warner("non-standard spacing in LOCUS line %q", line)

		consumer.Locus(flds[1])
		if err := feedSize(flds[2]); err != nil {
			return err
		}
		if err := feedMolecule(consumer, flds[4]+" "+flds[5]); err != nil {
			return err
		}
		consumer.DataFileDivision(flds[6])
		consumer.Date(flds[7])

		return nil
	}

	// EnsEMBL-style spacing
	if len(flds) == 7 && isUnit(flds[3]) {

		consumer.Locus(flds[1])
		if err := feedSize(flds[2]); err != nil {
			return err
		}
		if err := feedMolecule(consumer, flds[4]); err != nil {
			return err
		}
		consumer.DataFileDivision(flds[5])
		consumer.Date(flds[6])

		return nil
	}

	// EMBOSS pseudo-GenBank output
	if len(flds) >= 4 && isUnit(flds[3]) {

		consumer.Locus(flds[1])
		if err := feedSize(flds[2]); err != nil {
			return err
		}
		if len(flds) >= 5 {
			if err := feedMolecule(consumer, strings.Join(flds[4:], " ")); err != nil {
				return err
			}
		}

		return nil
	}

	// pseudo-GenBank with the unit at the end
	if len(flds) >= 4 && isUnit(flds[len(flds)-1]) {

		consumer.Locus(flds[1])
		if err := feedSize(flds[len(flds)-2]); err != nil {
			return err
		}

		return nil
	}

	return parseErrorf(ErrUnrecognizedLocus, lineNum, "no LOCUS dialect matches %q", line)
}

// HEADER KEYWORDS

// headerEntry groups one header keyword with its continuation lines
type headerEntry struct {
	key  string
	data []string
}

// groupHeaderLines splits header lines into keyword entries; a line
// whose keyword field is blank continues the previous entry
func groupHeaderLines(lines []string, width int) []headerEntry {

	var entries []headerEntry

	for _, line := range lines {
		kw := ""
		rest := ""
		if len(line) > width {
			kw = strings.TrimSpace(line[:width])
			rest = line[width:]
		} else {
			kw = strings.TrimSpace(line)
		}

		if kw == "" {
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				last.data = append(last.data, rest)
			}
			continue
		}

		entries = append(entries, headerEntry{key: kw, data: []string{rest}})
	}

	return entries
}

// joined concatenates continuation lines the way the flatfile intends
func (e headerEntry) joined() string {

	str := strings.Join(e.data, " ")
	str = CompressRunsOfSpaces(str)
	return strings.TrimSpace(str)
}

// multiline preserves the line structure of an entry
func (e headerEntry) multiline() string {

	var items []string
	for _, ln := range e.data {
		items = append(items, strings.TrimSpace(ln))
	}
	return strings.Join(items, "\n")
}

// parseHeaderFields dispatches the header entries after the LOCUS line
// to the consumer callbacks
func (s *GenBankScanner) parseHeaderFields(lines []string, consumer Consumer) error {

	entries := groupHeaderLines(lines, s.profile.HeaderWidth)

	for _, ent := range entries {

		switch ent.key {

		case "DEFINITION":
			consumer.Definition(ent.joined())

		case "ACCESSION":
			for _, ln := range ent.data {
				consumer.Accession(strings.TrimSpace(ln))
			}

		case "NID":
			consumer.Nid(ent.joined())

		case "PID":
			consumer.Pid(ent.joined())

		case "VERSION":
			for _, fld := range strings.Fields(ent.joined()) {
				if strings.HasPrefix(fld, "GI:") {
					consumer.GI(strings.TrimPrefix(fld, "GI:"))
				} else if err := consumer.Version(fld); err != nil {
					return err
				}
			}

		case "DBLINK":
			for _, ln := range ent.data {
				consumer.DBLink(strings.TrimSpace(ln))
			}

		case "PROJECT":
			consumer.Project(ent.joined())

		case "DBSOURCE":
			consumer.DbSource(ent.joined())

		case "KEYWORDS":
			consumer.Keywords(ent.joined())

		case "SEGMENT":
			consumer.Segment(ent.joined())

		case "SOURCE":
			consumer.Source(ent.joined())

		case "ORGANISM":
			if len(ent.data) > 0 {
				consumer.Organism(strings.TrimSpace(ent.data[0]))
			}
			if len(ent.data) > 1 {
				var tax []string
				for _, ln := range ent.data[1:] {
					tax = append(tax, strings.TrimSpace(ln))
				}
				consumer.Taxonomy(strings.Join(tax, "\n"))
			}

		case "REFERENCE":
			str := ent.joined()
			num, rest := SplitInTwoLeft(str, " ")
			consumer.ReferenceNum(num)
			if idx := strings.Index(rest, "("); idx >= 0 {
				if err := consumer.ReferenceBases(strings.TrimSpace(rest[idx:])); err != nil {
					return err
				}
			}

		case "AUTHORS":
			consumer.Authors(ent.joined())

		case "CONSRTM":
			consumer.Consortium(ent.joined())

		case "TITLE":
			consumer.Title(ent.joined())

		case "JOURNAL":
			consumer.Journal(ent.joined())

		case "MEDLINE":
			consumer.MedlineID(ent.joined())

		case "PUBMED":
			consumer.PubmedID(ent.joined())

		case "REMARK":
			consumer.Remark(ent.joined())

		case "COMMENT":
			consumer.Comment(ent.multiline())

		default:
			Warner("unhandled header keyword %q", ent.key)
		}
	}

	return nil
}

// FOOTER AND SEQUENCE BLOCK

// collectContinuation gathers a footer keyword's value together with
// its twelve-space indented continuation lines, spaces removed
func (s *GenBankScanner) collectContinuation(first string) string {

	var buf strings.Builder
	buf.WriteString(strings.TrimSpace(first))

	for {
		line, ok := s.lines.Peek()
		if !ok || !strings.HasPrefix(line, twelveSpaces) {
			break
		}
		buf.WriteString(strings.TrimSpace(line))
		s.lines.Consume()
	}

	return buf.String()
}

// parseSequenceLine extracts the residue payload from one line of the
// sequence block: a right-aligned base number in the first nine
// columns, a space, then blank-separated residue groups
func parseSequenceLine(line string) (string, string, bool) {

	if len(line) < 10 {
		flds := strings.Fields(line)
		if len(flds) >= 2 && IsAllDigits(flds[0]) {
			return flds[0], strings.Join(flds[1:], ""), true
		}
		return "", "", false
	}

	num := strings.TrimSpace(line[:9])
	if num == "" || !IsAllDigits(num) || line[9] != ' ' {
		return "", "", false
	}

	return num, removeAllSpaces(line[10:]), true
}

// parseSequenceBlock reads residue lines until the record terminator
// or a CONTIG entry
func (s *GenBankScanner) parseSequenceBlock(consumer Consumer) error {

	for {
		line, ok := s.lines.Peek()
		if !ok {
			return parseErrorf(ErrPrematureEnd, s.lines.Line(), "end of input inside sequence block")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "//" || strings.HasPrefix(line, "CONTIG") {
			return nil
		}
		if trimmed == "" {
			Warner("blank line inside sequence block at line %d", s.lines.Line()+1)
			s.lines.Consume()
			continue
		}

		num, payload, ok := parseSequenceLine(line)
		if !ok {
			// tolerate a single spurious leading character
			num, payload, ok = parseSequenceLine(line[1:])
			if !ok {
				// leave the stream at a clean boundary for resync
				lineNum := s.lines.Line() + 1
				s.lines.Consume()
				return parseErrorf(ErrMalformedSequenceLine, lineNum,
					"cannot read sequence line %q", line)
			}
			Warner("repaired malformed sequence line at line %d", s.lines.Line()+1)
		}

		consumer.BaseNumber(num)
		if !keepCase {
			payload = strings.ToUpper(payload)
		}
		consumer.Sequence(payload)

		s.lines.Consume()
	}
}

// parseFooter reads the lines between the feature table and the record
// terminator: BASE COUNT, CONTIG, WGS and friends, ORIGIN, and the
// sequence block itself
func (s *GenBankScanner) parseFooter(consumer Consumer) error {

	for {
		line, ok := s.lines.Peek()
		if !ok {
			return parseErrorf(ErrPrematureEnd, s.lines.Line(), "end of input inside record footer")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "//" {
			return nil
		}

		switch {

		case strings.HasPrefix(line, "ORIGIN"):
			s.lines.Consume()
			if err := s.parseSequenceBlock(consumer); err != nil {
				return err
			}

		case strings.HasPrefix(line, "CONTIG"):
			s.lines.Consume()
			consumer.Contig(s.collectContinuation(strings.TrimPrefix(line, "CONTIG")))

		case strings.HasPrefix(line, "WGS_CONTIG"), strings.HasPrefix(line, "WGS_SCAFLD"):
			s.lines.Consume()
			consumer.AltSeq(strings.ToLower(line[:3]), s.collectContinuation(line[10:]))

		case strings.HasPrefix(line, "WGS"), strings.HasPrefix(line, "TSA"), strings.HasPrefix(line, "TLS"):
			s.lines.Consume()
			consumer.AltSeq(strings.ToLower(line[:3]), s.collectContinuation(line[3:]))

		case strings.HasPrefix(line, "BASE COUNT"):
			s.lines.Consume()
			s.collectContinuation("")

		case strings.HasPrefix(line, " "):
			// fully-indented miscellaneous footer line
			s.lines.Consume()

		default:
			Warner("unrecognized footer line %q", line)
			s.lines.Consume()
		}
	}
}

// FEED

// Feed parses the next record, driving the consumer callbacks. The
// first value is false at clean end of input. With doFeatures false the
// feature table is consumed but not reported.
func (s *GenBankScanner) Feed(consumer Consumer, doFeatures bool) (bool, error) {

	_, ok, err := s.findStart()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	header, err := s.parseHeader()
	if err != nil {
		return false, err
	}
	if len(header) == 0 {
		return false, parseErrorf(ErrPrematureEnd, s.lines.Line(), "empty record header")
	}

	if err := s.parseLocus(header[0], consumer); err != nil {
		return false, err
	}
	if err := s.parseHeaderFields(header[1:], consumer); err != nil {
		return false, err
	}

	feats, err := s.parseFeatures(!doFeatures)
	if err != nil {
		return false, err
	}
	for _, ft := range feats {
		consumer.FeatureKey(ft.Key)
		if err := consumer.FeatureLocation(ft.Location); err != nil {
			return false, err
		}
		for _, qual := range ft.Qualifiers {
			consumer.FeatureQualifier(qual.Key, qual.Value)
		}
	}

	if err := s.parseFooter(consumer); err != nil {
		return false, err
	}

	// record terminator
	line, ok := s.lines.Peek()
	if !ok {
		return false, parseErrorf(ErrPrematureEnd, s.lines.Line(), "missing record terminator")
	}
	if strings.TrimSpace(line) == "//" {
		s.lines.Consume()
	}

	if err := consumer.RecordEnd(); err != nil {
		return false, err
	}

	return true, nil
}
