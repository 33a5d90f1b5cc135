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
// File Name:  chan.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

import (
	"errors"
	"io"
)

// StreamRecords reads flatfile records and sends them down a channel.
// Record-level failures go through the Warner sink and parsing
// continues with the next record; the channel closes at end of input.
func StreamRecords(inp io.Reader) <-chan *Sequence {

	if inp == nil {
		return nil
	}

	out := make(chan *Sequence, chanDepth)

	// launch single converter goroutine
	go func(inp io.Reader, out chan<- *Sequence) {

		// close channel when all records have been sent
		defer close(out)

		rdr := NewReader(inp)

		for {
			if rdr.Next() {
				out <- rdr.Record()
				continue
			}
			err := rdr.Err()
			if err == nil {
				// clean end of input
				return
			}
			Warner("skipping record: %s", err.Error())

			// a stream failure cannot be resynchronized
			var perr *ParseError
			if errors.As(err, &perr) && perr.Kind == ErrIO {
				return
			}
		}
	}(inp, out)

	return out
}
