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
// File Name:  utils.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package insdc

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InsdcVersion is the current library release number
const InsdcVersion = "1.4"

// ANSI escape codes for terminal color, highlight, and reverse
const (
	RED  = "\033[31m"
	BLUE = "\033[34m"
	BOLD = "\033[1m"
	RVRS = "\033[7m"
	INIT = "\033[0m"
	LOUD = INIT + RED + BOLD
	INVT = LOUD + RVRS
)

// PERFORMANCE PARAMETERS AND PROCESSING OPTIONS

// insdc library-specific general control variables are set on an
// individual program basis, and are safe because Go programs are
// statically linked, eschewing dynamically-loaded shared libraries.

// Library-specific variables are initialized in an "init" function
// at the end of this file. All init functions in a program are
// executed before control transfers to the "main" function.

// performance tuning variables
var (
	chanDepth int
	numServe  int
	goGc      int
	nCPU      int
	numProcs  int
)

// reading and cleaning options
var (
	doValidate bool
	doStrict   bool
	keepCase   bool
)

// program execution timer
var (
	startTime time.Time
)

// terminal highlighting for the default warning and error sinks
var (
	warnColor = color.New(color.FgRed, color.Bold)
	failColor = color.New(color.FgRed, color.Bold, color.ReverseVideo)
)

// Warner is the hook through which recoverable parser malformations are
// reported. Replace it to capture warnings in tests or route them to a
// structured logger. The parser continues after every call.
var Warner = DisplayWarning

// DisplayWarning prints a warning message to stderr
func DisplayWarning(format string, args ...interface{}) {

	str := fmt.Sprintf(format, args...)
	warnColor.Fprintf(os.Stderr, "\nWARNING: %s\n", str)
}

// DisplayError prints an error message to stderr
func DisplayError(format string, args ...interface{}) {

	str := fmt.Sprintf(format, args...)
	failColor.Fprintf(os.Stderr, "\nERROR: %s\n", str)
}

// SetTunings sets performance parameters for channel-based streaming
func SetTunings(nmProcs, nmServe, chnDepth, gogc int) {

	if gogc < 50 || gogc > 1000 {
		gogc = 600
	}
	goGc = gogc

	// calculate number of simultaneous threads for multiplexed goroutines
	nCPU = runtime.NumCPU()
	if nCPU < 1 {
		nCPU = 1
	}

	if nmProcs < 1 {
		nmProcs = 8
		if cpuid.CPU.ThreadsPerCore > 1 {
			cores := nCPU / cpuid.CPU.ThreadsPerCore
			if cores > 4 && cores < 8 {
				nmProcs = cores
			}
		}
	}
	if nmProcs > nCPU {
		nmProcs = nCPU
	}

	numProcs = nmProcs

	// allow simultaneous threads for multiplexed goroutines
	runtime.GOMAXPROCS(numProcs)

	// adjust garbage collection target percentage
	debug.SetGCPercent(goGc)

	if nmServe < 1 || nmServe > 128 {
		nmServe = numProcs
	}
	numServe = nmServe

	// number of channels usually equals number of servers
	if chnDepth < nCPU || chnDepth > 128 {
		chnDepth = numServe
	}
	chanDepth = chnDepth
}

// SetOptions sets record processing options
func SetOptions(validate, strict, caseSensitive bool) {

	doValidate = validate
	doStrict = strict
	keepCase = caseSensitive
}

// ChanDepth returns the communication channel depth
func ChanDepth() int {

	return chanDepth
}

// NumServe returns the number of concurrent servers
func NumServe() int {

	return numServe
}

// GetOptions returns record processing option values
func GetOptions() (validate, strict, caseSensitive bool) {

	return doValidate, doStrict, keepCase
}

// GetNumericArg returns an integer argument, reporting an error if no remaining arguments
func GetNumericArg(args []string, name string, zer, min, max int) int {

	if len(args) < 2 {
		DisplayError("%s is missing", name)
		os.Exit(1)
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		DisplayError("%s (%s) is not an integer", name, args[1])
		os.Exit(1)
	}

	// special case for argument value of 0
	if value < 1 {
		return zer
	}
	// limit value to between specified minimum and maximum
	if value < min && min > 0 {
		return min
	}
	if value > max && max > 0 {
		return max
	}
	return value
}

// GetStringArg returns a string argument, reporting an error if no remaining arguments
func GetStringArg(args []string, name string) string {

	if len(args) < 2 {
		DisplayError("%s is missing", name)
		os.Exit(1)
	}
	return args[1]
}

// PrintDuration prints processing rate and program duration
func PrintDuration(name string, recordCount, byteCount int) {

	stopTime := time.Now()
	duration := stopTime.Sub(startTime)
	seconds := float64(duration.Nanoseconds()) / 1e9

	prec := 3
	if seconds >= 100 {
		prec = 1
	} else if seconds >= 10 {
		prec = 2
	}

	p := message.NewPrinter(language.English)

	if recordCount > 0 {
		p.Fprintf(os.Stderr, "\nProcessed %d %s in %.*f seconds", recordCount, name, prec, seconds)
	} else {
		p.Fprintf(os.Stderr, "\nProcessing completed in %.*f seconds", prec, seconds)
	}

	if seconds >= 0.001 && recordCount > 0 {
		rate := int(float64(recordCount) / seconds)
		p.Fprintf(os.Stderr, " (%d %s/second", rate, name)
		if byteCount > 0 {
			rate := int(float64(byteCount) / seconds)
			p.Fprintf(os.Stderr, ", %d bytes/second", rate)
		}
		p.Fprintf(os.Stderr, ")")
	}

	fmt.Fprintf(os.Stderr, "\n\n")
}

// PrintRecordCount prints a thousands-separated record and residue tally
func PrintRecordCount(recordCount, residueCount int) {

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%d records, %d residues\n", recordCount, residueCount)
}

// PrintStats prints performance tuning parameters
func PrintStats() {

	fmt.Fprintf(os.Stderr, "Thrd %d\n", nCPU)
	if cpuid.CPU.ThreadsPerCore > 0 {
		fmt.Fprintf(os.Stderr, "Core %d\n", nCPU/cpuid.CPU.ThreadsPerCore)
	}
	if cpuid.CPU.LogicalCores > 0 {
		fmt.Fprintf(os.Stderr, "Sock %d\n", nCPU/cpuid.CPU.LogicalCores)
	}
	fmt.Fprintf(os.Stderr, "Mmry %d\n", memory.TotalMemory()/(1024*1024*1024))

	fmt.Fprintf(os.Stderr, "Proc %d\n", numProcs)
	fmt.Fprintf(os.Stderr, "Serv %d\n", numServe)
	fmt.Fprintf(os.Stderr, "Chan %d\n", chanDepth)
	fmt.Fprintf(os.Stderr, "Gogc %d\n", goGc)

	fi, err := os.Stdin.Stat()
	if err == nil {
		mode := fi.Mode().String()
		fmt.Fprintf(os.Stderr, "Mode %s\n", mode)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// initialize options and performance tuning variables with default values
func init() {

	startTime = time.Now()

	SetOptions(true, false, true)

	SetTunings(0, 0, 0, 0)
}
