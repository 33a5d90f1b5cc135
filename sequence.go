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
// File Name:  sequence.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

// Qualifier is a single /key=value annotation on a feature. A bare flag
// such as /pseudo, or an empty =value, leaves Value as the empty string.
type Qualifier struct {
	Key   string
	Value string
}

// Feature is one entry of the feature table
type Feature struct {
	Key        string
	Location   *Location
	Qualifiers []Qualifier
}

// Reference is one entry of the REFERENCE section
type Reference struct {
	Number     string
	BasesRef   []*Location
	Authors    string
	Consortium string
	Title      string
	Journal    string
	MedlineID  string
	PubmedID   string
	Remark     string
}

// Sequence is a parsed record: the residue buffer plus identifiers,
// annotations, features, and references. Every symbol in Data satisfies
// Alphabet.Valid when the record was built with validation on, and every
// letter annotation list has the same length as Data.
type Sequence struct {
	ID          string
	Name        string
	Description string
	Alphabet    *Alphabet
	Data        []byte

	Metadata          map[string]interface{}
	Annotations       map[string]interface{}
	LetterAnnotations map[string][]interface{}
	Dbxrefs           []string
	Features          []Feature
}

// NewSequence builds a sequence over a symbol buffer, optionally
// validating every symbol against the alphabet
func NewSequence(alphabet *Alphabet, text string, validate bool) (*Sequence, error) {

	if alphabet == nil {
		alphabet = DNA
	}

	data := []byte(text)

	if validate {
		for i, sym := range data {
			if !alphabet.Valid(sym) {
				return nil, parseErrorf(ErrInvalidSymbol, 0,
					"symbol %q at offset %d is not in the %s alphabet", sym, i, alphabet.Name)
			}
		}
	}

	return &Sequence{
		Alphabet:          alphabet,
		Data:              data,
		Metadata:          make(map[string]interface{}),
		Annotations:       make(map[string]interface{}),
		LetterAnnotations: make(map[string][]interface{}),
	}, nil
}

// Len returns the number of symbols
func (s *Sequence) Len() int {

	return len(s.Data)
}

// At returns the symbol at an index
func (s *Sequence) At(idx int) (byte, error) {

	if idx < 0 || idx >= len(s.Data) {
		return 0, parseErrorf(ErrOutOfRange, 0, "index %d outside sequence of length %d", idx, len(s.Data))
	}
	return s.Data[idx], nil
}

// shallowClone copies scalar fields and makes a shallow copy of the
// metadata map; annotations, letter annotations, dbxrefs, and features
// stay with the original record
func (s *Sequence) shallowClone(data []byte) *Sequence {

	meta := make(map[string]interface{}, len(s.Metadata))
	for key, val := range s.Metadata {
		meta[key] = val
	}

	return &Sequence{
		ID:                s.ID,
		Alphabet:          s.Alphabet,
		Data:              data,
		Metadata:          meta,
		Annotations:       make(map[string]interface{}),
		LetterAnnotations: make(map[string][]interface{}),
	}
}

// Subsequence returns a new sequence over [start, start+length),
// inheriting the id, the alphabet, and a shallow copy of the metadata
func (s *Sequence) Subsequence(start, length int) (*Sequence, error) {

	if start < 0 || length < 0 || start+length > len(s.Data) {
		return nil, parseErrorf(ErrOutOfRange, 0,
			"subsequence [%d, %d) outside sequence of length %d", start, start+length, len(s.Data))
	}

	data := make([]byte, length)
	copy(data, s.Data[start:start+length])

	return s.shallowClone(data), nil
}

// Reverse returns a new sequence with the symbol order reversed
func (s *Sequence) Reverse() *Sequence {

	data := make([]byte, len(s.Data))
	for i, j := 0, len(s.Data)-1; j >= 0; i, j = i+1, j-1 {
		data[i] = s.Data[j]
	}

	return s.shallowClone(data)
}

// Complement returns a new sequence mapped symbol-wise through the
// alphabet complement table
func (s *Sequence) Complement() (*Sequence, error) {

	if !s.Alphabet.ComplementSupported {
		return nil, parseErrorf(ErrUnsupported, 0, "complement is not supported for %s", s.Alphabet.Name)
	}

	data := make([]byte, len(s.Data))
	for i, sym := range s.Data {
		cm, ok := s.Alphabet.Complement(sym)
		if !ok {
			return nil, parseErrorf(ErrInvalidSymbol, 0, "symbol %q has no complement", sym)
		}
		data[i] = cm
	}

	return s.shallowClone(data), nil
}

// ReverseComplement combines Reverse and Complement
func (s *Sequence) ReverseComplement() (*Sequence, error) {

	cm, err := s.Complement()
	if err != nil {
		return nil, err
	}
	return cm.Reverse(), nil
}

// IndexOfNonGap returns the first non-gap index at or after from, or -1
func (s *Sequence) IndexOfNonGap(from int) int {

	if from < 0 {
		from = 0
	}
	for idx := from; idx < len(s.Data); idx++ {
		if !s.Alphabet.IsGap(s.Data[idx]) {
			return idx
		}
	}
	return -1
}

// LastIndexOfNonGap returns the last non-gap index at or before to, or -1
func (s *Sequence) LastIndexOfNonGap(to int) int {

	if to >= len(s.Data) {
		to = len(s.Data) - 1
	}
	for idx := to; idx >= 0; idx-- {
		if !s.Alphabet.IsGap(s.Data[idx]) {
			return idx
		}
	}
	return -1
}

// String returns the raw residues
func (s *Sequence) String() string {

	return string(s.Data)
}
