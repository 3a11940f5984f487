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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/zintix-labs/betlab/errs"
)

// 特定 sentinel 對應的狀態碼（例如 409 / 404 / 502），優先於錯誤等級
var (
	mu        sync.RWMutex
	overrides []override
)

type override struct {
	target error
	status int
}

// Register 讓 errors.Is(err, target) 成立的錯誤回傳 status。
// 應在註冊路由時呼叫；先註冊者優先。
func Register(target error, status int) {
	mu.Lock()
	defer mu.Unlock()
	overrides = append(overrides, override{target: target, status: status})
}

// StatusCode 將錯誤映射成 HTTP status code。
//
// 規則（邊界層最小映射、可預期）：
//   - ctx timeout/cancel → 504/408（請求生命週期問題）
//   - Register 註冊過的 sentinel → 註冊的狀態碼
//   - errs.Warn         → 400（請求/參數問題）
//   - errs.Fatal        → 500（系統/不可恢復問題）
//
// 注意：本函數屬於 HTTP 邊界層，因此放在 server/*（而不是 core errs）。
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout // 408
	}

	mu.RLock()
	for _, o := range overrides {
		if errors.Is(err, o.target) {
			mu.RUnlock()
			return o.status
		}
	}
	mu.RUnlock()

	var e *errs.E
	if errors.As(err, &e) && e.ErrLv == errs.Warn {
		return http.StatusBadRequest // 400
	}
	return http.StatusInternalServerError
}

// Body 是錯誤回應的 JSON 格式
type Body struct {
	Error string `json:"error"`
	Level string `json:"level,omitempty"`
	Extra string `json:"extra,omitempty"`
}

// Errs 寫回 JSON 錯誤；5xx 不回傳內部細節。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	body := Body{Error: err.Error()}
	if e, ok := errs.AsErr(err); ok {
		body.Error = e.Message
		body.Level = errs.ErrLv(e.ErrLv)
		body.Extra = e.Extra
	}
	if status >= 500 && status != http.StatusBadGateway && status != http.StatusGatewayTimeout {
		body = Body{Error: http.StatusText(status), Level: body.Level}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Log 依狀態碼決定紀錄等級；4xx（除 408/409/429）視為使用者輸入問題不紀錄。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	if (status == 408) || (status == 409) || (status == 429) {
		log.Warn(msg, slog.Any("err", err))
	} else if (status >= 500) && (status < 600) {
		log.Error(msg, slog.Any("err", err))
	}
}
