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

// Package paste 把貼上（或 OCR）的自由文字逐行轉成投注。
//
// 每行依優先序比對四種寫法，第一個符合的勝出；都不符合的行直接略過。
package paste

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/spec"
)

// Pattern 標示一行是被哪一種寫法解析
type Pattern uint8

const (
	NoMatch  Pattern = iota
	ABC              // "abc 5 10"
	Letter           // "a 5 10"
	Compact          // "a5-10"
	Trailing         // "123 ... 10 ... 5"
)

var patternNames = map[Pattern]string{
	NoMatch:  "none",
	ABC:      "abc",
	Letter:   "letter",
	Compact:  "compact",
	Trailing: "trailing",
}

func (p Pattern) String() string {
	if s, ok := patternNames[p]; ok {
		return s
	}
	return "unknown"
}

// 會被換成空白的標點
const punctuation = ".,;:'\"!?()[]{}*#"

// 分隔符：空白、- = /
const sep = `[\s\-=/]+`

var (
	reABC      = regexp.MustCompile(`^abc` + `(?:` + sep + `)?` + `(\d+)` + sep + `(\d+)$`)
	reLetter   = regexp.MustCompile(`^([abc])` + sep + `(\d+)` + sep + `(\d+)$`)
	reCompact  = regexp.MustCompile(`^([abc])(\d+)` + sep + `(\d+)$`)
	reTrailing = regexp.MustCompile(`^(\d{3})(?:\D|$)`)
	reDigits   = regexp.MustCompile(`\d+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// LineResult 是單行的解析結果，供預覽與 CLI 診斷用
type LineResult struct {
	Line    int         `json:"line"` // 1-based
	Text    string      `json:"text"`
	Pattern Pattern     `json:"-"`
	Name    string      `json:"pattern"`
	Entries []bet.Entry `json:"entries"`
}

// Parse 解析整段文字，回傳依行序排列的投注。
func Parse(drawCode string, text string) []bet.Entry {
	lines := ParseLines(drawCode, text)
	out := make([]bet.Entry, 0, len(lines)*2)
	for _, l := range lines {
		out = append(out, l.Entries...)
	}
	return out
}

// ParseLines 解析整段文字並保留逐行結果；空白行不列出。
func ParseLines(drawCode string, text string) []LineResult {
	drawCode = strings.TrimSpace(drawCode)
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]LineResult, 0, len(raw))
	for i, line := range raw {
		norm := Normalize(line)
		if norm == "" {
			continue
		}
		p, es := parseLine(drawCode, norm)
		out = append(out, LineResult{
			Line:    i + 1,
			Text:    line,
			Pattern: p,
			Name:    p.String(),
			Entries: es,
		})
	}
	return out
}

// Normalize 轉小寫、標點換成空白、壓縮空白並去頭尾
func Normalize(line string) string {
	line = strings.ToLower(line)
	line = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, line)
	line = reSpaces.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

func parseLine(drawCode, line string) (Pattern, []bet.Entry) {
	if drawCode == "" {
		return NoMatch, nil
	}

	// 1) abc <n> <count>
	if m := reABC.FindStringSubmatch(line); m != nil {
		if len(m[1]) != 1 {
			return NoMatch, nil
		}
		count, ok := positive(m[2])
		if !ok {
			return ABC, nil
		}
		out := make([]bet.Entry, 0, 3)
		for _, c := range spec.ClassesFor(1) {
			out = append(out, bet.Entry{Number: m[1], Count: count, Type: spec.TypeCode(drawCode, c)})
		}
		return ABC, out
	}

	// 2) <a|b|c> <n> <count>
	if m := reLetter.FindStringSubmatch(line); m != nil {
		return Letter, letterEntry(drawCode, m[1], m[2], m[3])
	}

	// 3) <a|b|c><n><sep><count>
	if m := reCompact.FindStringSubmatch(line); m != nil {
		return Compact, letterEntry(drawCode, m[1], m[2], m[3])
	}

	// 4) 開頭三位數，之後任意位置出現的一或兩個數字
	if m := reTrailing.FindStringSubmatch(line); m != nil {
		number := m[1]
		rest := reDigits.FindAllString(line[len(number):], 2)
		if len(rest) == 0 {
			return NoMatch, nil
		}
		out := make([]bet.Entry, 0, 2)
		if c, ok := positive(rest[0]); ok {
			out = append(out, bet.Entry{Number: number, Count: c, Type: spec.TypeCode(drawCode, spec.Super)})
		}
		if len(rest) > 1 {
			if c, ok := positive(rest[1]); ok {
				out = append(out, bet.Entry{Number: number, Count: c, Type: spec.TypeCode(drawCode, spec.Box)})
			}
		}
		return Trailing, out
	}

	return NoMatch, nil
}

func letterEntry(drawCode, letter, number, count string) []bet.Entry {
	if len(number) != 1 {
		return nil
	}
	c, ok := positive(count)
	if !ok {
		return nil
	}
	class, _ := spec.ParseClass(letter)
	return []bet.Entry{{Number: number, Count: c, Type: spec.TypeCode(drawCode, class)}}
}

func positive(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
