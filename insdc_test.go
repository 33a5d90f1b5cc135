package insdc

import (
	"strings"
	"testing"
)

func TestParseFeatureQualifierForms(t *testing.T) {

	lines := []string{
		"1..10",
		"/gene=\"abcD\"",
		"/pseudo",
		"/empty=",
		"/number=3",
		"/note=\"spans",
		"several lines",
		"of text\"",
	}

	ft, err := parseFeature("gene", lines, 1)
	if err != nil {
		t.Fatal(err)
	}

	if ft.Location != "1..10" {
		t.Errorf("location = %q", ft.Location)
	}

	want := []Qualifier{
		{Key: "gene", Value: "\"abcD\""},
		{Key: "pseudo", Value: ""},
		{Key: "empty", Value: ""},
		{Key: "number", Value: "3"},
		{Key: "note", Value: "\"spans\nseveral lines\nof text\""},
	}
	if len(ft.Qualifiers) != len(want) {
		t.Fatalf("qualifiers = %+v", ft.Qualifiers)
	}
	for i, qual := range want {
		if ft.Qualifiers[i] != qual {
			t.Errorf("qualifier %d = %+v, want %+v", i, ft.Qualifiers[i], qual)
		}
	}
}

func TestParseFeatureLocationContinuation(t *testing.T) {

	lines := []string{
		"join(1..117,240..353,",
		"688..804,967..1104)",
		"/gene=\"x\"",
	}

	ft, err := parseFeature("CDS", lines, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ft.Location != "join(1..117,240..353,688..804,967..1104)" {
		t.Errorf("location = %q", ft.Location)
	}
}

func TestParseFeatureParenthesisContinuation(t *testing.T) {

	msgs := captureWarnings(t)

	// wrapped between positions, no comma break
	lines := []string{
		"join(1..10,20..",
		"30)",
	}

	ft, err := parseFeature("misc_feature", lines, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ft.Location != "join(1..10,20..30)" {
		t.Errorf("location = %q", ft.Location)
	}
	if len(*msgs) == 0 {
		t.Errorf("expected a wrap warning")
	}
}

func TestParseFeatureUnquotedContinuation(t *testing.T) {

	lines := []string{
		"1..10",
		"/rpt_unit=12..18",
		"21..30",
	}

	ft, err := parseFeature("repeat_region", lines, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ft.Qualifiers) != 1 || ft.Qualifiers[0].Value != "12..18\n21..30" {
		t.Fatalf("qualifiers = %+v", ft.Qualifiers)
	}
}

func featureTable(body string) string {

	return "FEATURES             Location/Qualifiers\n" + body
}

func TestParseFeaturesWalk(t *testing.T) {

	text := featureTable(
		"     source          1..20\n" +
			"                     /organism=\"Vibrio cholerae\"\n" +
			"     gene            5..15\n" +
			"                     /gene=\"toxA\"\n" +
			"//\n")

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	feats, err := sc.parseFeatures(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(feats) != 2 {
		t.Fatalf("features = %d", len(feats))
	}
	if feats[0].Key != "source" || feats[1].Key != "gene" {
		t.Errorf("keys = %q, %q", feats[0].Key, feats[1].Key)
	}
	if feats[1].Location != "5..15" {
		t.Errorf("location = %q", feats[1].Location)
	}
}

func TestParseFeaturesSkip(t *testing.T) {

	text := featureTable(
		"     source          1..20\n" +
			"     gene            5..15\n" +
			"ORIGIN\n")

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	feats, err := sc.parseFeatures(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(feats) != 0 {
		t.Fatalf("skip should report no features, got %d", len(feats))
	}

	// the table was consumed up to the sequence header
	line, ok := sc.lines.Peek()
	if !ok || !strings.HasPrefix(line, "ORIGIN") {
		t.Errorf("scanner stopped at %q", line)
	}
}

func TestParseFeaturesOverIndented(t *testing.T) {

	msgs := captureWarnings(t)

	text := featureTable(
		"       gene          5..15\n" +
			"//\n")

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	feats, err := sc.parseFeatures(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(feats) != 1 || feats[0].Key != "gene" {
		t.Fatalf("features = %+v", feats)
	}
	if len(*msgs) == 0 {
		t.Errorf("expected an indentation warning")
	}
}

func TestParseFeaturesOrphanContinuation(t *testing.T) {

	text := featureTable(
		"                     /gene=\"lost\"\n" +
			"//\n")

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	_, err := sc.parseFeatures(false)
	wantKind(t, err, ErrOrphanContinuation)
}

func TestParseFeaturesPrematureEnd(t *testing.T) {

	text := featureTable("     gene            5..15\n")

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	_, err := sc.parseFeatures(false)
	wantKind(t, err, ErrPrematureEnd)
}

func TestFindStartSkipsPreamble(t *testing.T) {

	text := "GBPLN1.SEQ          Genetic Sequence Data Bank\n" +
		"\n" +
		"//\n" +
		"LOCUS       AB000001\n"

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	line, ok, err := sc.findStart()
	if err != nil || !ok {
		t.Fatalf("findStart: %v %v", ok, err)
	}
	if !strings.HasPrefix(line, "LOCUS       AB000001") {
		t.Errorf("line = %q", line)
	}
}

func TestFindStartNotText(t *testing.T) {

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader("123456\n")))
	_, _, err := sc.findStart()
	wantKind(t, err, ErrNotText)
}

func TestFindStartEOF(t *testing.T) {

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader("\n\n")))
	_, ok, err := sc.findStart()
	if err != nil || ok {
		t.Fatalf("findStart at EOF = %v %v", ok, err)
	}
}

func TestParseHeaderPrematureEnd(t *testing.T) {

	text := "LOCUS       AB000001\nDEFINITION  truncated record.\n"

	sc := newInsdcScanner(genBankProfile, newLineScanner(strings.NewReader(text)))
	if _, ok, err := sc.findStart(); !ok || err != nil {
		t.Fatal("record start not found")
	}
	_, err := sc.parseHeader()
	wantKind(t, err, ErrPrematureEnd)
}
