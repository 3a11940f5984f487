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

package spec

import "strings"

// Class 是投注類別（bet-class）字尾，和開獎代碼（draw code）串接後成為完整的投注種類。
type Class string

const (
	Super Class = "SUPER"
	Box   Class = "BOX"
	AB    Class = "AB"
	BC    Class = "BC"
	AC    Class = "AC"
	A     Class = "A"
	B     Class = "B"
	C     Class = "C"

	// All 是元類別：展開成該位數所有合法類別。
	All Class = "ALL"
)

// MaxWidth 為支援的最大位數
const MaxWidth = 3

var classesByWidth = [MaxWidth + 1][]Class{
	1: {A, B, C},
	2: {AB, BC, AC},
	3: {Super, Box},
}

// ClassesFor 回傳某位數下 ALL 會展開的類別（固定順序）
func ClassesFor(width int) []Class {
	if width < 1 || width > MaxWidth {
		return nil
	}
	return append([]Class(nil), classesByWidth[width]...)
}

// Width 回傳類別對應的號碼位數；ALL 或未知類別回傳 0。
func (c Class) Width() int {
	switch c {
	case Super, Box:
		return 3
	case AB, BC, AC:
		return 2
	case A, B, C:
		return 1
	default:
		return 0
	}
}

// ValidFor 判斷類別是否可用於該位數
func (c Class) ValidFor(width int) bool {
	return c.Width() != 0 && c.Width() == width
}

// ParseClass 將使用者輸入（不分大小寫，允許 "-A" 這種字尾寫法）轉為 Class。
func ParseClass(s string) (Class, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "-")
	c := Class(s)
	if c == All || c.Width() != 0 {
		return c, true
	}
	return "", false
}

// Suffix 回傳類別在投注種類上的字尾；單碼類別使用 "-A" 形式。
func (c Class) Suffix() string {
	if c.Width() == 1 {
		return "-" + string(c)
	}
	return string(c)
}

// TypeCode 組合開獎代碼與類別字尾。
//
//	TypeCode("LSK3", Super) == "LSK3SUPER"
//	TypeCode("LSK3", A)     == "LSK3-A"
//	TypeCode("D-1-", A)     == "D-1-A"   // 代碼已以 '-' 結尾時不重複
func TypeCode(drawCode string, c Class) string {
	suffix := c.Suffix()
	if strings.HasSuffix(drawCode, "-") && strings.HasPrefix(suffix, "-") {
		suffix = suffix[1:]
	}
	return drawCode + suffix
}

// ClassOf 從完整投注種類反推類別；不屬於該開獎代碼時回傳 false。
func ClassOf(drawCode, typ string) (Class, bool) {
	if !strings.HasPrefix(typ, drawCode) {
		return "", false
	}
	rest := typ[len(drawCode):]
	rest = strings.TrimPrefix(rest, "-")
	c := Class(rest)
	if c.Width() == 0 {
		return "", false
	}
	if TypeCode(drawCode, c) != typ {
		return "", false
	}
	return c, true
}
