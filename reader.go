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
// File Name:  reader.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

// Package insdc parses INSDC flatfiles, currently the GenBank dialect,
// into sequence records carrying the residue buffer, the feature table,
// and the header annotations.
package insdc

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Reader yields successive records from a flatfile stream:
//
//	rdr, err := insdc.OpenPath("sequences.gbff.gz")
//	if err != nil {
//		...
//	}
//	defer rdr.Close()
//	for rdr.Next() {
//		rec := rdr.Record()
//		...
//	}
//	if err := rdr.Err(); err != nil {
//		...
//	}
//
// After a record-level failure Err reports it and Next may be called
// again; the scanner resynchronizes on the next LOCUS line.
type Reader struct {
	scanner    *GenBankScanner
	rec        *Sequence
	err        error
	doFeatures bool

	file *os.File
	zipr *pgzip.Reader
}

// NewReader parses records from an open stream. The caller keeps
// ownership of the stream.
func NewReader(inp io.Reader) *Reader {

	return &Reader{scanner: NewGenBankScanner(inp), doFeatures: true}
}

// OpenPath parses records from a file, transparently decompressing a
// .gz suffix, with "-" reading from stdin. The reader owns the handle;
// call Close when done.
func OpenPath(path string) (*Reader, error) {

	if path == "-" {
		return NewReader(os.Stdin), nil
	}

	fl, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rdr := io.Reader(fl)

	var zpr *pgzip.Reader
	if strings.HasSuffix(path, ".gz") {
		zpr, err = pgzip.NewReader(fl)
		if err != nil {
			fl.Close()
			return nil, err
		}
		rdr = zpr
	}

	res := NewReader(rdr)
	res.file = fl
	res.zipr = zpr

	return res, nil
}

// SkipFeatures turns off feature table reporting; the table is still
// consumed so the sequence block parses identically
func (r *Reader) SkipFeatures(skip bool) {

	r.doFeatures = !skip
}

// Next advances to the next record, returning false at end of input or
// on a record-level error reported by Err
func (r *Reader) Next() bool {

	r.rec = nil
	r.err = nil

	consumer := NewRecordBuilder()

	more, err := r.scanner.Feed(consumer, r.doFeatures)
	if err != nil {
		r.err = err
		return false
	}
	if !more {
		return false
	}

	r.rec = consumer.Data()
	return true
}

// Record returns the record parsed by the last successful Next
func (r *Reader) Record() *Sequence {

	return r.rec
}

// Err reports the failure that stopped the last Next, nil at clean EOF
func (r *Reader) Err() error {

	return r.err
}

// Close releases the file handle when the reader opened it by path;
// externally-supplied streams are left open
func (r *Reader) Close() error {

	if r.zipr != nil {
		r.zipr.Close()
		r.zipr = nil
	}
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
