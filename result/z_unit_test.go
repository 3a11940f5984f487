// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package result_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/result"
	"github.com/zintix-labs/betlab/spec"
)

func scheme(complement string, rates ...string) *spec.SchemeSetting {
	sc := &spec.SchemeSetting{ComplementValue: decimal.Zero}
	for _, r := range rates {
		sc.RateTable = append(sc.RateTable, decimal.RequireFromString(r))
	}
	if complement != "" {
		sc.ComplementValue = decimal.RequireFromString(complement)
	}
	return sc
}

func testSchemes() result.Schemes {
	return result.Schemes{
		spec.Super: scheme("10", "4500", "1000", "500"),
		spec.Box:   scheme("", "750", "150"),
		spec.AB:    scheme("", "450"),
		spec.BC:    scheme("", "450"),
		spec.AC:    scheme("", "450"),
		spec.A:     scheme("", "45.5"),
		spec.B:     scheme("", "45.5"),
		spec.C:     scheme("", "45.5"),
	}
}

var draw = result.Result{
	Prizes:      []string{"123", "456", "789"},
	Complements: []string{"111", "222"},
}

func TestMatchSuper(t *testing.T) {
	entries := []bet.Entry{
		{Number: "123", Count: 2, Type: "LSK3SUPER"},
		{Number: "789", Count: 1, Type: "LSK3SUPER"},
		{Number: "222", Count: 3, Type: "LSK3SUPER"},
		{Number: "999", Count: 3, Type: "LSK3SUPER"},
	}
	got := result.MatchWinningEntries(entries, "LSK3", draw, testSchemes())
	if len(got) != 3 {
		t.Fatalf("expected 3 winners, got %d", len(got))
	}
	if got[0].Rank != 1 || !got[0].Prize.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("first prize: %s", got[0])
	}
	if got[1].Rank != 3 || !got[1].Prize.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("third prize: %s", got[1])
	}
	if !got[2].Complement || got[2].Rank != 0 || !got[2].Prize.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("complement: %s", got[2])
	}
}

func TestMatchBox(t *testing.T) {
	entries := []bet.Entry{
		{Number: "123", Count: 1, Type: "LSK3BOX"},
		{Number: "321", Count: 2, Type: "LSK3BOX"},
		{Number: "124", Count: 2, Type: "LSK3BOX"},
	}
	got := result.MatchWinningEntries(entries, "LSK3", draw, testSchemes())
	if len(got) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(got))
	}
	if got[0].Rank != 1 || !got[0].Prize.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("box exact: %s", got[0])
	}
	if got[1].Rank != 2 || !got[1].Prize.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("box permutation: %s", got[1])
	}
}

func TestMatchDigits(t *testing.T) {
	entries := []bet.Entry{
		{Number: "12", Count: 1, Type: "LSK3AB"},
		{Number: "23", Count: 1, Type: "LSK3BC"},
		{Number: "13", Count: 1, Type: "LSK3AC"},
		{Number: "21", Count: 1, Type: "LSK3AB"},
		{Number: "1", Count: 2, Type: "LSK3-A"},
		{Number: "2", Count: 1, Type: "LSK3-B"},
		{Number: "2", Count: 1, Type: "LSK3-C"},
	}
	got := result.MatchWinningEntries(entries, "LSK3", draw, testSchemes())
	if len(got) != 5 {
		t.Fatalf("expected 5 winners, got %d: %v", len(got), got)
	}
	want := []spec.Class{spec.AB, spec.BC, spec.AC, spec.A, spec.B}
	for i, c := range want {
		if got[i].Class != c {
			t.Fatalf("winner %d: got %s want %s", i, got[i].Class, c)
		}
	}
	if !got[3].Prize.Equal(decimal.RequireFromString("91")) {
		t.Fatalf("decimal prize: %s", got[3].Prize)
	}
	if !result.Total(got).Equal(decimal.RequireFromString("1486.5")) {
		t.Fatalf("total: %s", result.Total(got))
	}
}

func TestMatchSkipsForeignAndUnpriced(t *testing.T) {
	sc := testSchemes()
	delete(sc, spec.Box)
	entries := []bet.Entry{
		{Number: "123", Count: 1, Type: "D-1-SUPER"},
		{Number: "123", Count: 1, Type: "LSK3BOX"},
		{Number: "1x3", Count: 1, Type: "LSK3SUPER"},
		{Number: "1", Count: 1, Type: "LSK3A"},
	}
	if got := result.MatchWinningEntries(entries, "LSK3", draw, sc); len(got) != 0 {
		t.Fatalf("expected no winners, got %v", got)
	}
}

func TestMatchHyphenDrawCode(t *testing.T) {
	entries := []bet.Entry{{Number: "3", Count: 1, Type: "D-1-C"}}
	got := result.MatchWinningEntries(entries, "D-1-", draw, testSchemes())
	if len(got) != 1 || got[0].Class != spec.C {
		t.Fatalf("expected C winner, got %v", got)
	}
}

func TestResultValidate(t *testing.T) {
	if err := draw.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := (result.Result{}).Validate(); err != result.ErrNoPrize {
		t.Fatalf("expected ErrNoPrize, got %v", err)
	}
	err := result.Result{Prizes: []string{"12"}}.Validate()
	if err == nil || errs.LevelOf(err) != errs.Warn {
		t.Fatalf("expected warn, got %v", err)
	}
}
