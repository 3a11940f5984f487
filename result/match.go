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

// Package result 依開獎結果比對投注並計算派彩。
//
// 伺服器與 CLI 共用同一個純函式 MatchWinningEntries，不持有狀態。
package result

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/spec"
)

// Result 為一期開獎結果：Prizes 依名次排列（Prizes[0] 為頭獎），Complements 為安慰獎號碼。
type Result struct {
	Prizes      []string `json:"prizes"      yaml:"prizes"`
	Complements []string `json:"complements" yaml:"complements"`
}

var ErrNoPrize = errs.NewWarn("result has no prize")

// Validate 檢查所有號碼皆為三位數字
func (r Result) Validate() error {
	if len(r.Prizes) == 0 {
		return ErrNoPrize
	}
	for i, p := range r.Prizes {
		if !isDigits(p, spec.MaxWidth) {
			return errs.Warnf("prize %d must be %d digits: %q", i+1, spec.MaxWidth, p)
		}
	}
	for _, p := range r.Complements {
		if !isDigits(p, spec.MaxWidth) {
			return errs.Warnf("complement must be %d digits: %q", spec.MaxWidth, p)
		}
	}
	return nil
}

// Schemes 為各類別的派彩方案
type Schemes map[spec.Class]*spec.SchemeSetting

// MatchedEntry 是一筆中獎投注
type MatchedEntry struct {
	Entry      bet.Entry       `json:"entry"`
	Class      spec.Class      `json:"class"`
	Rank       int             `json:"rank"` // 1-based；安慰獎為 0
	Complement bool            `json:"complement,omitempty"`
	Rate       decimal.Decimal `json:"rate"`
	Prize      decimal.Decimal `json:"prize"`
}

func (m MatchedEntry) String() string {
	return fmt.Sprintf("%s %s x%d rank=%d prize=%s", m.Entry.Type, m.Entry.Number, m.Entry.Count, m.Rank, m.Prize.String())
}

// 各類別比對頭獎的位數
var digitPos = map[spec.Class][]int{
	spec.AB: {0, 1},
	spec.BC: {1, 2},
	spec.AC: {0, 2},
	spec.A:  {0},
	spec.B:  {1},
	spec.C:  {2},
}

// MatchWinningEntries 回傳中獎的投注（保持輸入順序）。
//
// 不屬於 drawCode 的投注、沒有派彩方案的類別、派彩為 0 的名次都不列入。
// 頭獎不是三位數時，只比對 SUPER 的名次與安慰獎。
func MatchWinningEntries(entries []bet.Entry, drawCode string, r Result, schemes Schemes) []MatchedEntry {
	out := make([]MatchedEntry, 0)
	first := ""
	if len(r.Prizes) > 0 && isDigits(r.Prizes[0], spec.MaxWidth) {
		first = r.Prizes[0]
	}
	for _, e := range entries {
		c, ok := spec.ClassOf(drawCode, e.Type)
		if !ok {
			continue
		}
		sc := schemes[c]
		if sc == nil {
			continue
		}
		rank, comp := matchOne(c, e.Number, first, r)
		var rate decimal.Decimal
		switch {
		case comp:
			rate = sc.ComplementValue
		case rank > 0:
			rate = sc.Rate(rank)
		default:
			continue
		}
		if !rate.IsPositive() {
			continue
		}
		out = append(out, MatchedEntry{
			Entry:      e,
			Class:      c,
			Rank:       rank,
			Complement: comp,
			Rate:       rate,
			Prize:      rate.Mul(decimal.NewFromInt(int64(e.Count))),
		})
	}
	return out
}

// matchOne 回傳名次（0 表示未中）以及是否為安慰獎
func matchOne(c spec.Class, number, first string, r Result) (int, bool) {
	if !isDigits(number, c.Width()) {
		return 0, false
	}
	switch c {
	case spec.Super:
		for i, p := range r.Prizes {
			if p == number {
				return i + 1, false
			}
		}
		for _, p := range r.Complements {
			if p == number {
				return 0, true
			}
		}
		return 0, false
	case spec.Box:
		if first == "" {
			return 0, false
		}
		if number == first {
			return 1, false
		}
		if samePermutation(number, first) {
			return 2, false
		}
		return 0, false
	default:
		pos, ok := digitPos[c]
		if !ok || first == "" {
			return 0, false
		}
		for i, p := range pos {
			if number[i] != first[p] {
				return 0, false
			}
		}
		return 1, false
	}
}

func samePermutation(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var n [10]int
	for i := 0; i < len(a); i++ {
		n[a[i]-'0']++
		n[b[i]-'0']--
	}
	for _, v := range n {
		if v != 0 {
			return false
		}
	}
	return true
}

// Total 加總派彩
func Total(ms []MatchedEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range ms {
		sum = sum.Add(m.Prize)
	}
	return sum
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
