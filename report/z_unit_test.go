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

package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/report"
	"github.com/zintix-labs/betlab/result"
	"github.com/zintix-labs/betlab/spec"
)

const drawYAML = `
draw_name: "lsk3 3pm"
draw_code: "LSK3"
times:
  - label: "3 PM"
    code: "15"
prices:
  SUPER: "10"
  BOX: "10"
  A: "2.5"
`

func setting(t *testing.T) *spec.DrawSetting {
	t.Helper()
	ds, err := spec.GetDrawSettingByYAML([]byte(drawYAML))
	if err != nil {
		t.Fatalf("setting: %v", err)
	}
	return ds
}

var entries = []bet.Entry{
	{Number: "123", Count: 2, Type: "LSK3SUPER"},
	{Number: "5", Count: 4, Type: "LSK3-A"},
	{Number: "321", Count: 6, Type: "LSK3SUPER"},
}

func TestSales(t *testing.T) {
	r := report.Sales(setting(t), entries)
	if len(r.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(r.Lines))
	}
	// 依種類名稱排序
	if r.Lines[0].Type != "LSK3-A" || r.Lines[1].Type != "LSK3SUPER" {
		t.Fatalf("unexpected order: %+v", r.Lines)
	}
	if r.Lines[1].Entries != 2 || r.Lines[1].Count != 8 || !r.Lines[1].Amount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("super line: %+v", r.Lines[1])
	}
	if !r.TotalAmount.Equal(decimal.NewFromInt(90)) || r.TotalCount != 12 || r.TotalEntries != 3 {
		t.Fatalf("totals: %s %d %d", r.TotalAmount, r.TotalCount, r.TotalEntries)
	}
	if r.CountMean != 4 || math.Abs(r.CountStd-2) > 1e-9 {
		t.Fatalf("mean/std: %f %f", r.CountMean, r.CountStd)
	}
}

func TestSalesMerge(t *testing.T) {
	ds := setting(t)
	a := report.NewSales(ds)
	a.Add(entries[:1])
	b := report.NewSales(ds)
	b.Add(entries[1:])
	a.Merge(b)
	a.Done()
	whole := report.Sales(ds, entries)
	if !a.TotalAmount.Equal(whole.TotalAmount) || a.CountStd != whole.CountStd || len(a.Lines) != len(whole.Lines) {
		t.Fatalf("merge mismatch: %+v vs %+v", a, whole)
	}
	// Done 之後不再累加
	a.Add(entries)
	if a.TotalEntries != 3 {
		t.Fatalf("report should be locked after Done")
	}
}

func TestSalesUnpricedType(t *testing.T) {
	r := report.Sales(setting(t), []bet.Entry{{Number: "12", Count: 3, Type: "LSK3AB"}})
	if !r.TotalAmount.IsZero() || r.TotalCount != 3 {
		t.Fatalf("unpriced: %+v", r)
	}
}

func TestWinning(t *testing.T) {
	ms := []result.MatchedEntry{
		{Entry: entries[0], Prize: decimal.NewFromInt(9000)},
		{Entry: entries[2], Prize: decimal.RequireFromString("0.5")},
	}
	r := report.Winning("LSK3", result.Result{Prizes: []string{"123"}}, ms)
	if r.Winners != 2 || len(r.Lines) != 1 || !r.TotalPrize.Equal(decimal.RequireFromString("9000.5")) {
		t.Fatalf("winning: %+v", r)
	}
	if !strings.Contains(r.Table(), "9,000.50") {
		t.Fatalf("table missing formatted prize:\n%s", r.Table())
	}
}

func TestRenders(t *testing.T) {
	r := report.Sales(setting(t), entries)

	var jb bytes.Buffer
	if err := r.WriteWith(&jb, report.RenderByName("json")); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if back["draw_code"] != "LSK3" || back["total_amount"] != "90" {
		t.Fatalf("json fields: %v", back)
	}

	var yb bytes.Buffer
	if err := r.WriteWith(&yb, report.RenderByName("yaml")); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yb.String(), "draw_code: LSK3") || !strings.Contains(yb.String(), "type: LSK3SUPER") {
		t.Fatalf("yaml output:\n%s", yb.String())
	}
	if report.RenderByName("xml") != nil {
		t.Fatalf("unknown render should be nil")
	}
}

func TestTable(t *testing.T) {
	tbl := report.Sales(setting(t), entries).Table()
	for _, want := range []string{"lsk3 3pm", "LSK3SUPER", "2 entries / 8 bets / 80.00", "Total Amount", "90.00"} {
		if !strings.Contains(tbl, want) {
			t.Fatalf("table missing %q:\n%s", want, tbl)
		}
	}
	lines := strings.Split(strings.TrimSpace(tbl), "\n")
	w := len(lines[0])
	for _, l := range lines {
		if len(l) != w {
			t.Fatalf("misaligned table:\n%s", tbl)
		}
	}
}
