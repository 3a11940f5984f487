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

// Permutations 回傳 s 所有不重複的字元排列，依首次出現順序排列，第一個必為 s 本身。
//
//	Permutations("112") == []string{"112", "121", "211"}
func Permutations(s string) []string {
	if len(s) <= 1 {
		return []string{s}
	}
	out := make([]string, 0, 6)

	var walk func(prefix, rest []byte)
	walk = func(prefix, rest []byte) {
		if len(rest) == 0 {
			out = append(out, string(prefix))
			return
		}
		var used [256]bool // 同一層相同字元只展開一次
		for i := 0; i < len(rest); i++ {
			ch := rest[i]
			if used[ch] {
				continue
			}
			used[ch] = true

			next := make([]byte, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)

			p := make([]byte, len(prefix), len(prefix)+1)
			copy(p, prefix)
			walk(append(p, ch), next)
		}
	}
	walk(make([]byte, 0, len(s)), []byte(s))
	return out
}
