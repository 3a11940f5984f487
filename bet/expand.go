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

package bet

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/spec"
)

// ErrDrawCode 開獎代碼為空
var ErrDrawCode = errs.NewWarn("draw code is empty")

// Expand 展開一次選擇；任何必要欄位不合法時回傳 nil（靜默放棄）。
//
// 區間為空（例如 end < start）是合法結果，回傳空 slice。
func Expand(drawCode string, sel Selection) []Entry {
	out, err := Plan(drawCode, sel)
	if err != nil {
		return nil
	}
	return out
}

// Plan 與 Expand 相同，但會回傳放棄原因（*errs.E，等級 Warn）。
//
// 解析規則：
//   - 區間邊界：具體類別下無法解析即放棄；ALL 之下分別退回 0 與該位數最大值。
//     hundred / tripleOne 模式邊界留白表示不過濾。
//   - RangeCount：區間類模式必填，須為正整數。
//   - Count：留白視為 1，須為正整數。
//   - BoxCount：只用於單號模式的 BOX（含三位數 ALL 展開出的 BOX），留白或不合法時退回 Count。
func Plan(drawCode string, sel Selection) ([]Entry, error) {
	w := sel.DigitWidth
	if w < 1 || w > spec.MaxWidth {
		return nil, errs.With(ErrWidth, fmt.Sprintf("width=%d", w))
	}
	drawCode = strings.TrimSpace(drawCode)
	if drawCode == "" {
		return nil, ErrDrawCode
	}
	all := sel.Class == spec.All
	if !all && !sel.Class.ValidFor(w) {
		return nil, errs.With(ErrClass, fmt.Sprintf("class=%q width=%d", sel.Class, w))
	}
	if (sel.Mode == Hundred || sel.Mode == TripleOne) && w != 3 {
		return nil, errs.With(ErrMode, fmt.Sprintf("mode=%s width=%d", sel.Mode, w))
	}

	plan, err := classPlan(sel, all)
	if err != nil {
		return nil, err
	}
	numbers, err := numberSet(sel, all)
	if err != nil {
		return nil, err
	}

	size := len(numbers) * len(plan)
	if sel.Permute {
		size *= w
	}
	out := make([]Entry, 0, size)
	for _, n := range numbers {
		variants := []string{n}
		if sel.Permute {
			variants = Permutations(n)
		}
		for _, v := range variants {
			for _, cc := range plan {
				out = append(out, Entry{
					Number: v,
					Count:  cc.count,
					Type:   spec.TypeCode(drawCode, cc.class),
				})
			}
		}
	}
	return out, nil
}

type classCount struct {
	class spec.Class
	count int
}

// classPlan 決定每個號碼要產生哪些類別與各自的注數
func classPlan(sel Selection, all bool) ([]classCount, error) {
	var count int
	if sel.Mode.Ranged() {
		rc, ok := parseCount(sel.RangeCount, 0)
		if !ok {
			return nil, errs.With(ErrRangeCount, fmt.Sprintf("range_count=%q", sel.RangeCount))
		}
		count = rc
	} else {
		sc, ok := parseCount(sel.Count, 1)
		if !ok {
			return nil, errs.With(ErrCount, fmt.Sprintf("count=%q", sel.Count))
		}
		count = sc
	}

	if !all {
		cc := classCount{class: sel.Class, count: count}
		if sel.Class == spec.Box && !sel.Mode.Ranged() {
			if bc, ok := parseCount(sel.BoxCount, count); ok {
				cc.count = bc
			}
		}
		return []classCount{cc}, nil
	}

	classes := spec.ClassesFor(sel.DigitWidth)
	plan := make([]classCount, 0, len(classes))
	for _, c := range classes {
		cc := classCount{class: c, count: count}
		// 三位數 ALL：單號模式 BOX 用自己的欄位，區間模式與 SUPER 共用 RangeCount
		if c == spec.Box && !sel.Mode.Ranged() {
			if bc, ok := parseCount(sel.BoxCount, count); ok {
				cc.count = bc
			}
		}
		plan = append(plan, cc)
	}
	return plan, nil
}

// numberSet 依模式產生補零後的號碼集合
func numberSet(sel Selection, all bool) ([]string, error) {
	w := sel.DigitWidth
	top := maxFor(w)

	switch sel.Mode {
	case Single:
		n := strings.TrimSpace(sel.Number)
		if n == "" {
			return nil, ErrEmptyNumber
		}
		if len(n) != w || !isDigits(n) {
			return nil, errs.With(ErrNumber, fmt.Sprintf("number=%q width=%d", n, w))
		}
		return []string{n}, nil

	case Range:
		lo, loOK := parseInt(sel.RangeStart)
		hi, hiOK := parseInt(sel.RangeEnd)
		if !all && (!loOK || !hiOK) {
			return nil, errs.With(ErrBound, fmt.Sprintf("start=%q end=%q", sel.RangeStart, sel.RangeEnd))
		}
		if !loOK {
			lo = 0
		}
		if !hiOK {
			hi = top
		}
		lo = max(lo, 0)
		hi = min(hi, top)
		if hi < lo {
			return []string{}, nil
		}
		out := make([]string, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, pad(i, w))
		}
		return out, nil

	case Hundred, TripleOne:
		lo, hi := 0, top
		if s := strings.TrimSpace(sel.RangeStart); s != "" {
			v, ok := parseInt(s)
			if !ok && !all {
				return nil, errs.With(ErrBound, fmt.Sprintf("start=%q", s))
			}
			if ok {
				lo = v
			}
		}
		if s := strings.TrimSpace(sel.RangeEnd); s != "" {
			v, ok := parseInt(s)
			if !ok && !all {
				return nil, errs.With(ErrBound, fmt.Sprintf("end=%q", s))
			}
			if ok {
				hi = v
			}
		}
		out := make([]string, 0, 10)
		for _, v := range candidates(sel.Mode) {
			if v >= lo && v <= hi {
				out = append(out, pad(v, w))
			}
		}
		return out, nil
	}
	return nil, errs.With(ErrMode, fmt.Sprintf("mode=%d", sel.Mode))
}

// candidates 回傳 hundred / tripleOne 的固定候選集合
func candidates(m Mode) []int {
	out := make([]int, 0, 10)
	switch m {
	case Hundred:
		for v := 100; v <= 900; v += 100 {
			out = append(out, v)
		}
	case TripleOne:
		for i := 0; i <= 9; i++ {
			out = append(out, i*111)
		}
	}
	return out
}

func pad(v, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}
