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
	"strconv"
	"strings"

	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/spec"
)

// Mode 決定號碼集合的產生方式
type Mode uint8

const (
	Single    Mode = iota // 單一號碼
	Range                 // [start, end] 區間
	Hundred               // 100, 200, ... 900
	TripleOne             // 000, 111, ... 999
)

var modeNames = map[Mode]string{
	Single:    "single",
	Range:     "range",
	Hundred:   "hundred",
	TripleOne: "tripleOne",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Ranged 表示此模式使用區間注數（RangeCount）
func (m Mode) Ranged() bool {
	return m == Range || m == Hundred || m == TripleOne
}

// ParseMode 不分大小寫解析模式名稱；"tripleone"、"triple_one" 皆可。
func ParseMode(s string) (Mode, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "")
	switch key {
	case "", "single":
		return Single, true
	case "range":
		return Range, true
	case "hundred":
		return Hundred, true
	case "tripleone":
		return TripleOne, true
	}
	return Single, false
}

// Selection 是一次按鍵產生的輸入，用完即丟。
//
// 數值欄位都保留原始字串，解析規則見 Plan。
type Selection struct {
	DigitWidth int
	Mode       Mode
	Permute    bool
	Class      spec.Class

	Number     string
	Count      string
	BoxCount   string
	RangeStart string
	RangeEnd   string
	RangeCount string
}

// Focus 是成功加入後輸入焦點應回到的欄位
type Focus string

const (
	FocusNumber     Focus = "number"
	FocusRangeStart Focus = "range_start"
)

// FocusFor 回傳成功展開後應該聚焦的欄位
func FocusFor(sel Selection) Focus {
	if sel.Mode.Ranged() {
		return FocusRangeStart
	}
	return FocusNumber
}

// 放棄展開的原因
var (
	ErrWidth       = errs.NewWarn("digit width must be 1, 2 or 3")
	ErrClass       = errs.NewWarn("bet class is not valid for digit width")
	ErrMode        = errs.NewWarn("mode is not valid for digit width")
	ErrEmptyNumber = errs.NewWarn("number is empty")
	ErrNumber      = errs.NewWarn("number must match digit width")
	ErrCount       = errs.NewWarn("count must be a positive integer")
	ErrRangeCount  = errs.NewWarn("range count must be a positive integer")
	ErrBound       = errs.NewWarn("range bound must be an integer")
)

// maxFor 回傳某位數可表示的最大值（999 / 99 / 9）
func maxFor(width int) int {
	m := 1
	for i := 0; i < width; i++ {
		m *= 10
	}
	return m - 1
}

func parseInt(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseCount：空白給預設值；無法解析或 < 1 回傳 false。
func parseCount(raw string, def int) (int, bool) {
	if strings.TrimSpace(raw) == "" {
		return def, def >= 1
	}
	v, ok := parseInt(raw)
	if !ok || v < 1 {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
