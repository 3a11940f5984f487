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

// Sheet 是一位代理在送單前的投注清單（最新的在最前面）。
//
// 清單只會被「整批前插」、「依索引刪除」或「依條件保留」，既有的 Entry 不會被原地修改。
// Sheet 本身不是 goroutine-safe；跨請求共用時由呼叫端加鎖（見 betlab.SheetRuntime）。
type Sheet struct {
	entries []Entry
}

func NewSheet() *Sheet {
	return &Sheet{}
}

// Add 展開選擇並把結果前插，回傳新增筆數；放棄時回傳 0 且清單不變。
func (s *Sheet) Add(drawCode string, sel Selection) int {
	return s.Prepend(Expand(drawCode, sel))
}

// Prepend 將一批 Entry 插在最前面，保持批次內的相對順序。
func (s *Sheet) Prepend(batch []Entry) int {
	if len(batch) == 0 {
		return 0
	}
	next := make([]Entry, 0, len(batch)+len(s.entries))
	next = append(next, batch...)
	next = append(next, s.entries...)
	s.entries = next
	return len(batch)
}

// Delete 刪除第 i 筆；索引不合法時回傳 false。
func (s *Sheet) Delete(i int) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	s.entries = next
	return true
}

// Keep 只保留 keep 回傳 true 的 Entry，回傳移除筆數
func (s *Sheet) Keep(keep func(Entry) bool) int {
	next := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if keep(e) {
			next = append(next, e)
		}
	}
	removed := len(s.entries) - len(next)
	s.entries = next
	return removed
}

// Clear 清空
func (s *Sheet) Clear() {
	s.entries = nil
}

// Entries 回傳清單副本
func (s *Sheet) Entries() []Entry {
	if len(s.entries) == 0 {
		return []Entry{}
	}
	return append([]Entry(nil), s.entries...)
}

func (s *Sheet) Len() int {
	return len(s.entries)
}

// Totals 回傳總注數與筆數
func (s *Sheet) Totals() (count int, entries int) {
	for _, e := range s.entries {
		count += e.Count
	}
	return count, len(s.entries)
}
