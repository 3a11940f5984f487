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

// Package bet 是投注展開引擎：把一次按鍵選擇（Selection）展開成逐筆的投注（Entry）。
//
// 引擎是純函數：沒有 I/O、沒有鎖、不會阻塞。輸入不合法時「靜默放棄」：
// Expand 回傳 nil，呼叫端的 Sheet 不會有任何改變。需要知道原因時改用 Plan。
package bet

// Entry 是送往後台的最小投注單位。
//   - Number：依位數補零後的號碼字串，長度恆等於位數。
//   - Count：注數，恆 >= 1。
//   - Type：開獎代碼 + 類別字尾（例如 "LSK3SUPER"、"LSK3-A"）。
type Entry struct {
	Number string `json:"number"`
	Count  int    `json:"count"`
	Type   string `json:"type"`
}
