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

package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/result"
)

// WinningLine 同一投注種類的中獎彙總
type WinningLine struct {
	Type    string          `json:"type"    yaml:"type"`
	Entries int             `json:"entries" yaml:"entries"`
	Count   int             `json:"count"   yaml:"count"`
	Prize   decimal.Decimal `json:"prize"   yaml:"prize"`
}

type WinningReport struct {
	DrawCode   string          `json:"draw_code"   yaml:"draw_code"`
	Result     result.Result   `json:"result"      yaml:"result"`
	Lines      []WinningLine   `json:"lines"       yaml:"lines"`
	Winners    int             `json:"winners"     yaml:"winners"`
	TotalPrize decimal.Decimal `json:"total_prize" yaml:"total_prize"`
}

// Winning 依投注種類彙總中獎結果
func Winning(drawCode string, r result.Result, ms []result.MatchedEntry) *WinningReport {
	rep := &WinningReport{DrawCode: drawCode, Result: r, Lines: make([]WinningLine, 0, 4), TotalPrize: decimal.Zero}
	index := make(map[string]int, 4)
	for _, m := range ms {
		i, ok := index[m.Entry.Type]
		if !ok {
			rep.Lines = append(rep.Lines, WinningLine{Type: m.Entry.Type, Prize: decimal.Zero})
			i = len(rep.Lines) - 1
			index[m.Entry.Type] = i
		}
		l := &rep.Lines[i]
		l.Entries++
		l.Count += m.Entry.Count
		l.Prize = l.Prize.Add(m.Prize)
		rep.TotalPrize = rep.TotalPrize.Add(m.Prize)
	}
	rep.Winners = len(ms)
	sort.Slice(rep.Lines, func(i, j int) bool { return rep.Lines[i].Type < rep.Lines[j].Type })
	return rep
}
