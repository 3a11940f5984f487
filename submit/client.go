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

// Package submit 把投注清單 POST 到外部後端。
//
// 後端負責限額與單號；這裡不重試，回應 body 原樣交回呼叫端。
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zintix-labs/betlab/dto"
	"github.com/zintix-labs/betlab/errs"
)

const (
	defaultTimeout = 15 * time.Second
	maxResponse    = 1 << 20
)

var (
	ErrNoEndpoint = errs.NewFatal("submit endpoint is not configured")
	ErrRejected   = errs.NewWarn("backend rejected submission")
	ErrBackend    = errs.NewFatal("backend failed")
)

// Response 是後端回應（body 不解析）
type Response struct {
	Status int
	Body   []byte
}

// Submitter 抽象送單行為，方便測試替換
type Submitter interface {
	Submit(ctx context.Context, p dto.SubmitPayload) (*Response, error)
}

// Client 以 HTTP POST JSON 送單
type Client struct {
	endpoint   string
	header     http.Header
	httpClient *http.Client
}

// NewClient 建立送單 client；timeout <= 0 使用預設 15 秒。
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		header:     make(http.Header),
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
	}
}

// SetHeader 設定每次送單都會帶上的 header（例如後端要求的 token）
func (c *Client) SetHeader(key, value string) {
	c.header.Set(key, value)
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit 送出一次；2xx 視為成功，4xx 回傳 Warn，其他狀態回傳 Fatal。
func (c *Client) Submit(ctx context.Context, p dto.SubmitPayload) (*Response, error) {
	if c.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errs.Wrap(err, "marshal submit payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(err, "build submit request")
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 保留 context 錯誤，讓上層能判斷 timeout / cancel
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errs.Wrap(err, "submit request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, errs.Wrap(err, "read submit response")
	}
	out := &Response{Status: resp.StatusCode, Body: body}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return out, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return out, errs.With(ErrRejected, fmt.Sprintf("status=%d body=%s", resp.StatusCode, snippet(body)))
	default:
		return out, errs.With(ErrBackend, fmt.Sprintf("status=%d body=%s", resp.StatusCode, snippet(body)))
	}
}

func snippet(b []byte) string {
	const n = 200
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
