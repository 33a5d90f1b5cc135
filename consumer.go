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
// File Name:  consumer.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

import (
	"strconv"
	"strings"
)

// Consumer receives the typed callbacks of the scanner. RecordBuilder
// is the stock implementation; substitute another Consumer to drive a
// different downstream model off the same parse.
type Consumer interface {
	Locus(name string)
	Size(str string) error
	ResidueType(str string)
	MoleculeType(str string)
	Topology(str string) error
	DataFileDivision(str string)
	Date(str string)
	Definition(str string)
	Accession(str string)
	Version(str string) error
	VersionSuffix(str string) error
	Nid(str string)
	Pid(str string)
	GI(str string)
	Project(str string)
	DBLink(str string)
	DbSource(str string)
	Keywords(str string)
	Segment(str string)
	Source(str string)
	Organism(str string)
	Taxonomy(str string)
	ReferenceNum(str string)
	ReferenceBases(str string) error
	Authors(str string)
	Consortium(str string)
	Title(str string)
	Journal(str string)
	MedlineID(str string)
	PubmedID(str string)
	Remark(str string)
	Comment(str string)
	FeatureKey(key string)
	FeatureLocation(str string) error
	FeatureQualifier(key, value string)
	Contig(str string)
	AltSeq(name, value string)
	BaseNumber(str string)
	Sequence(chunk string)
	RecordEnd() error
}

// qualifier values whose multi-line continuation must be joined with
// every whitespace character removed
var removeSpaceQualifiers = map[string]bool{
	"translation":   true,
	"transcription": true,
	"peptide":       true,
	"anticodon":     true,
}

// qualifierCleaners maps qualifier keys to value cleanup functions,
// replacing per-key method lookup by name
var qualifierCleaners = map[string]func(string) string{}

// RegisterQualifierCleaner installs a cleanup function for one
// qualifier key, overriding the default cleanup
func RegisterQualifierCleaner(key string, clean func(string) string) {

	qualifierCleaners[key] = clean
}

// stripQuotes removes one set of surrounding double quotes
func stripQuotes(str string) string {

	if len(str) >= 2 && strings.HasPrefix(str, "\"") && strings.HasSuffix(str, "\"") {
		str = str[1 : len(str)-1]
	}
	return str
}

// cleanQualifier applies the registered or default cleanup to a
// qualifier value. Only the remove-space set loses its surrounding
// quotes; every other quoted value keeps them for downstream consumers
// to strip.
func cleanQualifier(key, val string) string {

	if clean, ok := qualifierCleaners[key]; ok {
		return clean(val)
	}

	if removeSpaceQualifiers[key] {
		return removeAllSpaces(stripQuotes(val))
	}

	// internal whitespace is kept, line breaks become spaces
	return strings.ReplaceAll(val, "\n", " ")
}

// RecordBuilder assembles a Sequence from scanner callbacks. One
// builder serves one record; the iterator makes a fresh builder per
// parse.
type RecordBuilder struct {
	seq          *Sequence
	data         strings.Builder
	expectedSize int
	circular     bool

	refs    []*Reference
	curRef  *Reference
	feats   []Feature
	curFeat *Feature
	done    bool
}

// NewRecordBuilder prepares an empty record
func NewRecordBuilder() *RecordBuilder {

	return &RecordBuilder{
		seq: &Sequence{
			Alphabet:          DNA,
			Metadata:          make(map[string]interface{}),
			Annotations:       make(map[string]interface{}),
			LetterAnnotations: make(map[string][]interface{}),
		},
		expectedSize: -1,
	}
}

// Data returns the finished record after RecordEnd succeeded
func (rb *RecordBuilder) Data() *Sequence {

	if !rb.done {
		return nil
	}
	return rb.seq
}

// HEADER CALLBACKS

// Locus records the locus name
func (rb *RecordBuilder) Locus(name string) {

	rb.seq.Name = name
}

// Size records the declared residue count, checked against the
// sequence block at RecordEnd
func (rb *RecordBuilder) Size(str string) error {

	num, err := strconv.Atoi(str)
	if err != nil || num < 0 {
		return parseErrorf(ErrBadHeaderField, 0, "bad sequence length %q", str)
	}
	rb.expectedSize = num
	return nil
}

// ResidueType keeps the raw residue type and selects the alphabet
func (rb *RecordBuilder) ResidueType(str string) {

	str = strings.TrimSpace(str)
	if str == "" {
		return
	}
	rb.seq.Annotations["residue_type"] = str
	rb.seq.Alphabet = GuessAlphabet(str)
}

// MoleculeType splits a strandedness prefix off the molecule type
func (rb *RecordBuilder) MoleculeType(str string) {

	str = strings.TrimSpace(str)
	if str == "" {
		return
	}

	switch {
	case strings.HasPrefix(str, "ss-"):
		rb.seq.Annotations["strandedness"] = "single"
		str = strings.TrimPrefix(str, "ss-")
	case strings.HasPrefix(str, "ds-"):
		rb.seq.Annotations["strandedness"] = "double"
		str = strings.TrimPrefix(str, "ds-")
	case strings.HasPrefix(str, "ms-"):
		rb.seq.Annotations["strandedness"] = "mixed"
		str = strings.TrimPrefix(str, "ms-")
	}

	rb.seq.Annotations["molecule_type"] = str
}

// Topology validates and records linear or circular shape
func (rb *RecordBuilder) Topology(str string) error {

	str = strings.TrimSpace(str)
	switch str {
	case "":
		return nil
	case "linear":
	case "circular":
		rb.circular = true
	default:
		return parseErrorf(ErrBadHeaderField, 0, "bad topology %q", str)
	}
	rb.seq.Annotations["topology"] = str
	return nil
}

// DataFileDivision records the three-letter division code
func (rb *RecordBuilder) DataFileDivision(str string) {

	if str != "" {
		rb.seq.Annotations["data_file_division"] = str
	}
}

// Date records the update date
func (rb *RecordBuilder) Date(str string) {

	if str != "" {
		rb.seq.Annotations["date"] = str
	}
}

// Definition records the record description
func (rb *RecordBuilder) Definition(str string) {

	rb.seq.Description = strings.TrimSuffix(str, ".")
}

// Accession folds one or more accession tokens into the id and the
// accession list
func (rb *RecordBuilder) Accession(str string) {

	for _, tok := range strings.FieldsFunc(str, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\t'
	}) {
		if tok == "" {
			continue
		}
		if rb.seq.ID == "" {
			rb.seq.ID = tok
		}
		rb.appendAccession(tok)
	}
}

// appendAccession deduplicates while preserving order
func (rb *RecordBuilder) appendAccession(acc string) {

	var accs []string
	if prev, ok := rb.seq.Annotations["accessions"].([]string); ok {
		accs = prev
	}
	for _, old := range accs {
		if old == acc {
			return
		}
	}
	rb.seq.Annotations["accessions"] = append(accs, acc)
}

// Version handles the ACC.N form, otherwise sets the id outright
func (rb *RecordBuilder) Version(str string) error {

	acc, sfx := SplitInTwoLeft(str, ".")
	if sfx != "" && IsAllDigits(sfx) {
		rb.Accession(acc)
		return rb.VersionSuffix(sfx)
	}

	rb.seq.ID = str
	return nil
}

// VersionSuffix records the numeric sequence version
func (rb *RecordBuilder) VersionSuffix(str string) error {

	num, err := strconv.Atoi(str)
	if err != nil || num < 0 {
		return parseErrorf(ErrBadHeaderField, 0, "bad sequence version %q", str)
	}
	rb.seq.Annotations["sequence_version"] = num
	return nil
}

// Nid records the obsolete nucleotide identifier
func (rb *RecordBuilder) Nid(str string) {

	rb.seq.Annotations["nid"] = str
}

// Pid records the obsolete protein identifier
func (rb *RecordBuilder) Pid(str string) {

	rb.seq.Annotations["pid"] = str
}

// GI records the GenInfo identifier
func (rb *RecordBuilder) GI(str string) {

	rb.seq.Annotations["gi"] = str
}

// appendDbxref normalizes the space after the database tag and
// deduplicates
func (rb *RecordBuilder) appendDbxref(str string) {

	tag, val := SplitInTwoLeft(str, ":")
	if val != "" {
		str = tag + ":" + strings.TrimSpace(val)
	}

	for _, old := range rb.seq.Dbxrefs {
		if old == str {
			return
		}
	}
	rb.seq.Dbxrefs = append(rb.seq.Dbxrefs, str)
}

// Project records a legacy genome project link
func (rb *RecordBuilder) Project(str string) {

	rb.appendDbxref(str)
}

// DBLink records one database cross reference line
func (rb *RecordBuilder) DBLink(str string) {

	rb.appendDbxref(str)
}

// DbSource records the GenPept source database line
func (rb *RecordBuilder) DbSource(str string) {

	rb.seq.Annotations["db_source"] = str
}

// Keywords splits the keyword list
func (rb *RecordBuilder) Keywords(str string) {

	str = strings.TrimSuffix(strings.TrimSpace(str), ".")

	var keys []string
	for _, kw := range strings.Split(str, ";") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		keys = append(keys, kw)
	}
	rb.seq.Annotations["keywords"] = keys
}

// Segment records the segment position
func (rb *RecordBuilder) Segment(str string) {

	rb.seq.Annotations["segment"] = str
}

// Source records the free-form organism source line
func (rb *RecordBuilder) Source(str string) {

	rb.seq.Annotations["source"] = strings.TrimSuffix(str, ".")
}

// Organism records the formal organism name
func (rb *RecordBuilder) Organism(str string) {

	rb.seq.Annotations["organism"] = str
}

// Taxonomy splits the lineage into its clades
func (rb *RecordBuilder) Taxonomy(str string) {

	var taxa []string
	for _, part := range strings.Split(str, ";") {
		for _, item := range strings.Split(part, "\n") {
			item = strings.TrimSpace(item)
			item = strings.TrimSuffix(item, ".")
			if item == "" {
				continue
			}
			taxa = append(taxa, item)
		}
	}
	rb.seq.Annotations["taxonomy"] = taxa
}

// REFERENCE CALLBACKS

// reference returns the open reference, creating one on demand
func (rb *RecordBuilder) reference() *Reference {

	if rb.curRef == nil {
		rb.curRef = &Reference{}
	}
	return rb.curRef
}

// finalizeReference moves the open reference into the record
func (rb *RecordBuilder) finalizeReference() {

	if rb.curRef == nil {
		return
	}
	rb.refs = append(rb.refs, rb.curRef)
	rb.curRef = nil
}

// ReferenceNum closes the previous reference and opens a fresh one
func (rb *RecordBuilder) ReferenceNum(str string) {

	rb.finalizeReference()
	rb.reference().Number = str
}

// ReferenceBases parses the cited span list into simple locations with
// 0-based half-open coordinates
func (rb *RecordBuilder) ReferenceBases(str string) error {

	raw := str
	str = strings.TrimSpace(str)
	str = strings.TrimPrefix(str, "(")
	str = strings.TrimSuffix(str, ")")
	str = strings.TrimSpace(str)

	if str == "" || str == "sites" || str == "bases" {
		return nil
	}

	ref := rb.reference()

	for _, item := range strings.Split(str, ";") {
		item = strings.TrimSpace(item)
		item = strings.TrimPrefix(item, "bases ")
		item = strings.TrimPrefix(item, "residues ")
		cols := strings.Fields(item)
		if len(cols) != 3 || cols[1] != "to" {
			return parseErrorf(ErrBadReferenceBases, 0, "bad reference span %q", raw)
		}
		fst, ferr := strconv.Atoi(cols[0])
		scd, serr := strconv.Atoi(cols[2])
		if ferr != nil || serr != nil || fst < 1 || scd < fst {
			return parseErrorf(ErrBadReferenceBases, 0, "bad reference span %q", raw)
		}
		ref.BasesRef = append(ref.BasesRef, &Location{
			Start: Position{Kind: ExactPosition, Pos: fst - 1},
			End:   Position{Kind: ExactPosition, Pos: scd},
		})
	}

	return nil
}

// Authors records the citation author list
func (rb *RecordBuilder) Authors(str string) {

	rb.reference().Authors = str
}

// Consortium records the citation consortium
func (rb *RecordBuilder) Consortium(str string) {

	rb.reference().Consortium = str
}

// Title records the citation title
func (rb *RecordBuilder) Title(str string) {

	rb.reference().Title = str
}

// Journal records the citation journal line
func (rb *RecordBuilder) Journal(str string) {

	rb.reference().Journal = str
}

// MedlineID records the obsolete MEDLINE identifier
func (rb *RecordBuilder) MedlineID(str string) {

	rb.reference().MedlineID = str
}

// PubmedID records the PubMed identifier
func (rb *RecordBuilder) PubmedID(str string) {

	rb.reference().PubmedID = str
}

// Remark records the citation remark
func (rb *RecordBuilder) Remark(str string) {

	rb.reference().Remark = str
}

// COMMENT AND STRUCTURED COMMENTS

// parseStructuredComment splits ##Name-START## blocks out of a comment
func parseStructuredComment(text string) (map[string]map[string]string, string) {

	structured := make(map[string]map[string]string)
	var rest []string

	curName := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "##") && strings.HasSuffix(trimmed, "-START##") {
			curName = strings.TrimSuffix(strings.TrimPrefix(trimmed, "##"), "-START##")
			if _, ok := structured[curName]; !ok {
				structured[curName] = make(map[string]string)
			}
			continue
		}
		if curName != "" && strings.HasPrefix(trimmed, "##") && strings.HasSuffix(trimmed, "-END##") {
			curName = ""
			continue
		}
		if curName != "" {
			key, val := SplitInTwoLeft(trimmed, "::")
			key = strings.TrimSpace(key)
			if key != "" {
				structured[curName][key] = strings.TrimSpace(val)
			}
			continue
		}

		rest = append(rest, line)
	}

	if len(structured) == 0 {
		return nil, text
	}
	return structured, strings.TrimSpace(strings.Join(rest, "\n"))
}

// Comment records free text, splitting out structured comment blocks
func (rb *RecordBuilder) Comment(str string) {

	structured, rest := parseStructuredComment(str)

	if structured != nil {
		rb.seq.Annotations["structured_comment"] = structured
	}
	if rest == "" {
		return
	}

	if prev, ok := rb.seq.Annotations["comment"].(string); ok {
		rest = prev + "\n" + rest
	}
	rb.seq.Annotations["comment"] = rest
}

// FEATURE CALLBACKS

// finalizeFeature moves the open feature into the record
func (rb *RecordBuilder) finalizeFeature() {

	if rb.curFeat == nil {
		return
	}
	rb.feats = append(rb.feats, *rb.curFeat)
	rb.curFeat = nil
}

// FeatureKey closes the previous feature and opens a fresh one
func (rb *RecordBuilder) FeatureKey(key string) {

	rb.finalizeFeature()
	rb.curFeat = &Feature{Key: key}
}

// FeatureLocation parses the raw location expression against the
// declared molecule length and topology
func (rb *RecordBuilder) FeatureLocation(str string) error {

	if rb.curFeat == nil {
		rb.curFeat = &Feature{}
	}

	length := rb.expectedSize
	if length < 0 {
		length = 0
	}
	stranded := rb.seq.Alphabet != Protein

	loc, err := ParseLocation(str, length, rb.circular, stranded)
	if err != nil {
		return err
	}
	rb.curFeat.Location = loc
	return nil
}

// FeatureQualifier cleans and attaches one qualifier
func (rb *RecordBuilder) FeatureQualifier(key, value string) {

	if rb.curFeat == nil {
		rb.curFeat = &Feature{}
	}
	rb.curFeat.Qualifiers = append(rb.curFeat.Qualifiers, Qualifier{
		Key:   key,
		Value: cleanQualifier(key, value),
	})
}

// FOOTER AND SEQUENCE CALLBACKS

// Contig records the assembly instruction expression
func (rb *RecordBuilder) Contig(str string) {

	rb.seq.Annotations["contig"] = str
}

// AltSeq records a WGS, TSA, or TLS range
func (rb *RecordBuilder) AltSeq(name, value string) {

	rb.seq.Annotations[name] = value
}

// BaseNumber receives the leading coordinate of each sequence line
func (rb *RecordBuilder) BaseNumber(str string) {

	// the coordinate is implied by the running length; nothing to keep
}

// Sequence appends one cleaned line of residues
func (rb *RecordBuilder) Sequence(chunk string) {

	rb.data.WriteString(chunk)
}

// RecordEnd checks the declared length, validates residues, and
// freezes the record
func (rb *RecordBuilder) RecordEnd() error {

	rb.finalizeReference()
	rb.finalizeFeature()

	text := rb.data.String()

	if rb.expectedSize >= 0 && len(text) > 0 && len(text) != rb.expectedSize {
		return parseErrorf(ErrLengthMismatch, 0,
			"declared length %d but sequence has %d residues", rb.expectedSize, len(text))
	}

	if doValidate {
		for i := 0; i < len(text); i++ {
			if !rb.seq.Alphabet.Valid(text[i]) {
				return parseErrorf(ErrInvalidSymbol, 0,
					"symbol %q at offset %d is not in the %s alphabet", text[i], i, rb.seq.Alphabet.Name)
			}
		}
	}

	rb.seq.Data = []byte(text)
	if len(rb.refs) > 0 {
		rb.seq.Annotations["references"] = rb.refs
	}
	rb.seq.Features = rb.feats
	if rb.seq.ID == "" {
		rb.seq.ID = rb.seq.Name
	}

	rb.done = true
	return nil
}
