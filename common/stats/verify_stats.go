package stats

import (
	"bytes"
	"fmt"
	"testing"
)

// RuleChecker compares a marshaled stat (got) with an expected value.
type RuleChecker struct {
	name    string
	checker func(got, expected interface{}) bool
}

// Int64EqTest passes when a counter or gauge equals the expected int or int64.
var Int64EqTest = RuleChecker{name: "Int64EqTest", checker: func(got, expected interface{}) bool {
	value, ok := got.(int64)
	if !ok {
		return false
	}
	switch e := expected.(type) {
	case int:
		return value == int64(e)
	case int64:
		return value == e
	}
	return false
}}

// DoesNotExistTest passes when the stat was never registered.
var DoesNotExistTest = RuleChecker{name: "DoesNotExistTest", checker: func(got, _ interface{}) bool {
	return got == nil
}}

// Rule pairs a checker with the value it expects.
type Rule struct {
	Checker RuleChecker
	Value   interface{}
}

// VerifyStats fails t for every key of rules whose stat in registry doesn't pass its rule.
// Keys are the flat names produced by the finagle registry, e.g. "builder/filesAddedCounter".
func VerifyStats(tag string, registry StatsRegistry, t testing.TB, rules map[string]Rule) {
	t.Helper()

	finagle, ok := registry.(*finagleStatsRegistry)
	if !ok {
		t.Errorf("%s: stats registry %T is not a finagle registry", tag, registry)
		return
	}
	all := finagle.MarshalAll()

	var msg bytes.Buffer
	for key, rule := range rules {
		got := all[key]
		if rule.Checker.checker(got, rule.Value) {
			continue
		}
		if rule.Checker.name == DoesNotExistTest.name {
			fmt.Fprintf(&msg, "%s: got %v, expected no entry\n", key, got)
		} else {
			fmt.Fprintf(&msg, "%s: got %v, expected to pass %s with %v\n", key, got, rule.Checker.name, rule.Value)
		}
	}
	if msg.Len() > 0 {
		pretty, _ := finagle.MarshalJSONPretty()
		t.Errorf("%s: stats registry mismatch:\n%s\nregistry:\n%s", tag, msg.String(), pretty)
	}
}
