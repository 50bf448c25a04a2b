// Package gqltesting runs table-driven end-to-end GraphQL test cases.
package gqltesting

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"testing"

	"github.com/nsf/jsondiff"

	graphql "github.com/ScyllaDigital/graphql-go"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
	"github.com/ScyllaDigital/graphql-go/validation"
)

// Test is one GraphQL test case to be used with RunTest(s).
type Test struct {
	Context       context.Context
	Schema        *types.Schema
	Query         string
	OperationName string
	Variables     map[string]interface{}
	RootValue     interface{}

	// Rules replaces the specified validation rule set for this case.
	Rules []validation.Rule

	// ExpectedResult is the expected "data" value as JSON; empty asserts
	// that data is null or absent.
	ExpectedResult string
	ExpectedErrors []*errors.QueryError
}

// RunTests runs the given test cases as subtests.
func RunTests(t *testing.T, tests []*Test) {
	t.Helper()
	if len(tests) == 1 {
		RunTest(t, tests[0])
		return
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			t.Helper()
			RunTest(t, test)
		})
	}
}

// RunTest runs a single test case.
func RunTest(t *testing.T, test *Test) {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:          test.Schema,
		Source:          test.Query,
		OperationName:   test.OperationName,
		VariableValues:  test.Variables,
		RootValue:       test.RootValue,
		Context:         test.Context,
		ValidationRules: test.Rules,
	})

	checkErrors(t, test.ExpectedErrors, result.Errors)

	if test.ExpectedResult == "" {
		if result.Data != nil {
			t.Fatalf("got data %v, want null", result.Data)
		}
		return
	}

	data, err := json.Marshal(result.Data)
	if err != nil {
		t.Fatalf("marshal data: %s", err)
	}
	opts := jsondiff.Options{
		Added:   jsondiff.Tag{Begin: "+++", End: "+++"},
		Removed: jsondiff.Tag{Begin: "---", End: "---"},
		Changed: jsondiff.Tag{Begin: "|||", End: "|||"},
		Indent:  "    ",
	}
	diff, output := jsondiff.Compare([]byte(test.ExpectedResult), data, &opts)
	if diff != jsondiff.FullMatch {
		t.Log("Did not get expected result:\n", output)
		t.Log("Got:", string(data))
		t.Fail()
	}
}

func checkErrors(t *testing.T, want, got []*errors.QueryError) {
	t.Helper()
	wantN := normalizeErrors(want)
	gotN := normalizeErrors(got)
	if !reflect.DeepEqual(gotN, wantN) {
		t.Log("unexpected errors:")
		t.Log("  Got: \n", formatErrors(gotN))
		t.Log("  Want: \n", formatErrors(wantN))
		t.Fatal()
	}
}

// comparableError is the subset of QueryError a test case pins down.
type comparableError struct {
	Message string
	Path    []interface{}
	Rule    string
}

func normalizeErrors(errs []*errors.QueryError) []comparableError {
	out := make([]comparableError, len(errs))
	for i, err := range errs {
		out[i] = comparableError{Message: err.Message, Path: err.Path, Rule: err.Rule}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Message < out[j].Message })
	return out
}

func formatErrors(errs []comparableError) string {
	var s string
	for _, err := range errs {
		s += fmt.Sprintf("%s\n  Path: %v\n  Rule: %s\n", err.Message, err.Path, err.Rule)
	}
	return s
}
