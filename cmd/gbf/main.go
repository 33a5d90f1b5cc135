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
// File Name:  main.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"insdc"
)

const gbfHelp = `
Data Source

  -input     Read flatfile from file instead of stdin
             (a .gz suffix is decompressed transparently)

Reports

  -summary   One line per record: locus, length, molecule,
             topology, division, and definition
  -fasta     Records converted to FASTA
  -features  Feature table dump with parsed locations

Performance

  -chan      Communication channel depth
  -serv      Concurrent streamer count
  -gogc      Garbage collection percentage

Debugging

  -timer     Report processing duration and rate
  -stats     Print performance tuning parameters
`

// wrapSequence prints residues in blocks of sixty columns
func wrapSequence(seq string) {

	for len(seq) > 60 {
		fmt.Printf("%s\n", seq[:60])
		seq = seq[60:]
	}
	if len(seq) > 0 {
		fmt.Printf("%s\n", seq)
	}
}

// annotString reads a string annotation with an empty fallback
func annotString(rec *insdc.Sequence, key string) string {

	if str, ok := rec.Annotations[key].(string); ok {
		return str
	}
	return ""
}

// doSummary prints one tab-delimited line per record
func doSummary(rec *insdc.Sequence) {

	fmt.Printf("%s\t%d\t%s\t%s\t%s\t%s\n",
		rec.Name,
		rec.Len(),
		annotString(rec, "molecule_type"),
		annotString(rec, "topology"),
		annotString(rec, "data_file_division"),
		rec.Description)
}

// doFasta prints the record as FASTA
func doFasta(rec *insdc.Sequence) {

	id := rec.ID
	if id == "" {
		id = rec.Name
	}
	fmt.Printf(">%s %s\n", id, rec.Description)
	wrapSequence(strings.ToUpper(rec.String()))
}

// doFeatures dumps the parsed feature table
func doFeatures(rec *insdc.Sequence) {

	for _, ft := range rec.Features {
		fmt.Printf("%s\t%s\t%s\n", rec.Name, ft.Key, ft.Location.String())
		for _, qual := range ft.Qualifiers {
			if qual.Value == "" {
				fmt.Printf("\t/%s\n", qual.Key)
				continue
			}
			fmt.Printf("\t/%s=%s\n", qual.Key, qual.Value)
		}
	}
}

func main() {

	// skip past executable name
	args := os.Args[1:]

	if len(args) < 1 {
		insdc.DisplayError("No command-line arguments supplied to gbf")
		os.Exit(1)
	}

	// performance arguments
	chanDepth := 0
	numServe := 0
	goGc := 0

	// read data from file instead of stdin
	fileName := ""

	// debugging
	stts := false
	timr := false

	// get concurrency and debugging flags in any order
	inSwitch := true

	for {

		inSwitch = true

		switch args[0] {

		// performance tuning flags
		case "-serv":
			numServe = insdc.GetNumericArg(args, "Concurrent streamer count", 0, 1, 128)
			args = args[1:]
		case "-chan":
			chanDepth = insdc.GetNumericArg(args, "Communication channel depth", 0, 1, 128)
			args = args[1:]
		case "-gogc":
			goGc = insdc.GetNumericArg(args, "Garbage collection percentage", 0, 50, 1000)
			args = args[1:]

		// read data from file
		case "-input":
			fileName = insdc.GetStringArg(args, "Input file name")
			args = args[1:]

		// debugging flags
		case "-stats", "-stat":
			stts = true
		case "-timer":
			timr = true

		default:
			// if not any of the controls, set flag and continue
			inSwitch = false
		}

		if !inSwitch {
			break
		}

		// skip past argument
		args = args[1:]

		if len(args) < 1 {
			insdc.DisplayError("Missing command after arguments")
			os.Exit(1)
		}
	}

	insdc.SetTunings(0, numServe, chanDepth, goGc)

	if stts {
		insdc.PrintStats()
	}

	// first remaining argument is the command
	mode := args[0]
	args = args[1:]

	switch mode {
	case "-version":
		fmt.Printf("%s\n", insdc.InsdcVersion)
		return
	case "-help", "--help", "help":
		fmt.Printf("gbf %s\n%s\n", insdc.InsdcVersion, gbfHelp)
		return
	}

	// an optional trailing argument also names the input file
	if len(args) > 0 && fileName == "" {
		fileName = args[0]
	}
	if fileName == "" {
		fileName = "-"
	}

	rdr, err := insdc.OpenPath(fileName)
	if err != nil {
		insdc.DisplayError("Unable to open input file: %s", err.Error())
		os.Exit(1)
	}
	defer rdr.Close()

	var report func(*insdc.Sequence)

	switch mode {
	case "-summary":
		report = doSummary
	case "-fasta":
		report = doFasta
	case "-features":
		report = doFeatures
	default:
		insdc.DisplayError("Unrecognized command %q", mode)
		os.Exit(1)
	}

	recordCount := 0
	residueCount := 0

	for {
		if !rdr.Next() {
			err := rdr.Err()
			if err == nil {
				break
			}
			// report and resynchronize on the next record
			insdc.DisplayError("%s", err.Error())
			var perr *insdc.ParseError
			if errors.As(err, &perr) && perr.Kind == insdc.ErrIO {
				break
			}
			continue
		}
		rec := rdr.Record()
		recordCount++
		residueCount += rec.Len()
		report(rec)
	}

	if timr {
		insdc.PrintRecordCount(recordCount, residueCount)
		insdc.PrintDuration("records", recordCount, residueCount)
	}
}
