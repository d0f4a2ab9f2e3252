package acf_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-acf"
)

func TestError_Rendering(t *testing.T) {
	rng := hcl.Range{
		Filename: "a.acf",
		Start:    hcl.Pos{Line: 2, Column: 1, Byte: 11},
		End:      hcl.Pos{Line: 4, Column: 1, Byte: 31},
	}

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unknown",
			err:      acf.Error{},
			expected: "an unknown error occurred",
		},
		{
			name:     "read",
			err:      acf.Error{Kind: acf.ErrRead, Path: "missing.acf"},
			expected: "failed to read 'missing.acf'",
		},
		{
			name:     "closing brace",
			err:      acf.ParseError{Kind: acf.ExpectedClosingBrace, Range: rng},
			expected: "expected a closing brace within 'a.acf:2,1-4,1'",
		},
		{
			name:     "closing brace without filename",
			err:      acf.ParseError{Kind: acf.ExpectedClosingBrace, Range: hcl.Range{Start: rng.Start, End: hcl.Pos{Line: 2, Column: 5}}},
			expected: "expected a closing brace within '2,1-5'",
		},
		{
			name:     "unknown parse error",
			err:      acf.ParseError{},
			expected: "an unknown parsing error occurred",
		},
		{
			name:     "located parse error",
			err:      acf.ParseError{Kind: acf.ParseUnknown, Range: rng, Message: "unterminated string literal"},
			expected: "a.acf:2,1: unterminated string literal",
		},
		{
			name:     "located parse error without filename",
			err:      acf.ParseError{Kind: acf.ExpressionAfterBlock, Range: hcl.Range{Start: hcl.Pos{Line: 3, Column: 7}}, Message: "bad"},
			expected: "line 3, column 7: bad",
		},
		{
			name:     "parse wraps detail",
			err:      acf.Error{Kind: acf.ErrParse, Parse: acf.ParseError{Kind: acf.ExpectedClosingBrace, Range: rng}},
			expected: "the provided input could not be parsed: expected a closing brace within 'a.acf:2,1-4,1'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, tc.err, tc.expected)
		})
	}
}

func TestError_Equality(t *testing.T) {
	_, err1 := acf.ParseString(`"a" {`)
	_, err2 := acf.ParseString(`"a" {`)
	require.Error(t, err1)
	require.True(t, err1 == err2, "identical failures must compare equal")

	_, err3 := acf.ParseString(`"b" {`)
	require.False(t, err1 == err3)

	readErr := acf.Error{Kind: acf.ErrRead, Path: "x.acf"}
	require.True(t, errors.Is(readErr, acf.Error{Kind: acf.ErrRead, Path: "x.acf"}))
	require.False(t, errors.Is(readErr, acf.Error{Kind: acf.ErrRead, Path: "y.acf"}))
	require.Equal(t, acf.Error{}, acf.Error{Kind: acf.ErrUnknown})
}

func TestError_Unwrap(t *testing.T) {
	perr := acf.ParseError{Kind: acf.ExpectedClosingBrace}
	err := acf.Error{Kind: acf.ErrParse, Parse: perr}
	require.Equal(t, perr, errors.Unwrap(err))
	require.True(t, errors.Is(err, perr))

	require.Nil(t, errors.Unwrap(acf.Error{Kind: acf.ErrRead, Path: "x"}))
	require.Nil(t, errors.Unwrap(acf.Error{}))
}

func TestError_Diagnostics(t *testing.T) {
	_, err := acf.ParseString("\"AppState\"\n{\n", acf.Filename("m.acf"))
	var e acf.Error
	require.ErrorAs(t, err, &e)

	diags := e.Diagnostics()
	require.Len(t, diags, 1)
	require.True(t, diags.HasErrors())
	require.Equal(t, "Missing closing brace", diags[0].Summary)
	require.Contains(t, diags[0].Detail, `close block "AppState"`)
	require.NotNil(t, diags[0].Subject)
	require.Equal(t, "m.acf", diags[0].Subject.Filename)
	require.Equal(t, 2, diags[0].Subject.Start.Line)

	readDiags := acf.Error{Kind: acf.ErrRead, Path: "x.acf"}.Diagnostics()
	require.Equal(t, "Failed to read file", readDiags[0].Summary)
	require.Nil(t, readDiags[0].Subject)

	require.Equal(t, "Unknown error", acf.Error{}.Diagnostics()[0].Summary)
}

func TestParseErrorKind_String(t *testing.T) {
	require.Equal(t, "expected closing brace", acf.ExpectedClosingBrace.String())
	require.Equal(t, "unknown", acf.ParseUnknown.String())
	require.Equal(t, "ParseErrorKind(42)", acf.ParseErrorKind(42).String())
}

func TestParseFile(t *testing.T) {
	t.Run("reads and parses", func(t *testing.T) {
		path := filepath.Join("testdata", "simple.acf")
		doc, err := acf.ParseFile(path)
		require.NoError(t, err)
		require.Equal(t, "730", doc.Root().Expressions["appid"])
		require.Equal(t, path, doc.Root().Range.Filename)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.acf")
		doc, err := acf.ParseFile(path)
		require.Nil(t, doc)
		require.Equal(t, acf.Error{Kind: acf.ErrRead, Path: path}, err)
		require.True(t, acf.IsRead(err))
		require.False(t, acf.IsParse(err))
		require.Nil(t, errors.Unwrap(err))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := acf.ParseFile(t.TempDir())
		require.True(t, acf.IsRead(err))
	})

	t.Run("parse failure names the file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.acf")
		writeFile(t, path, "\"AppState\"\n{\n\t\"appid\" \"730\"\n")

		_, err := acf.ParseFile(path)
		var perr acf.ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, acf.ExpectedClosingBrace, perr.Kind)
		require.Equal(t, path, perr.Range.Filename)
	})
}

func TestParseFS(t *testing.T) {
	fsys := fstest.MapFS{
		"steamapps/appmanifest_1.acf": {Data: []byte(`"AppState" { "appid" "1" }`)},
		"steamapps/broken.acf":        {Data: []byte(`"AppState" { "appid" }`)},
	}

	doc, err := acf.ParseFS(fsys, "steamapps/appmanifest_1.acf")
	require.NoError(t, err)
	require.Equal(t, "1", doc.Root().Expressions["appid"])
	require.Equal(t, "steamapps/appmanifest_1.acf", doc.Root().Range.Filename)

	_, err = acf.ParseFS(fsys, "steamapps/missing.acf")
	require.Equal(t, acf.Error{Kind: acf.ErrRead, Path: "steamapps/missing.acf"}, err)

	_, err = acf.ParseFS(fsys, "steamapps/broken.acf")
	require.True(t, acf.IsParse(err))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
