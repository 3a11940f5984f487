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

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/errs"
)

// DrawSetting 描述一個開獎（draw）：代碼、可售時段、各類別售價與派彩方案。
//
// 設定檔中的金額一律以字串書寫（"12.50"），由 init() 轉成 decimal，避免浮點誤差。
type DrawSetting struct {
	DrawName string                   `yaml:"draw_name" json:"draw_name"`
	DrawCode string                   `yaml:"draw_code" json:"draw_code"`
	Times    []TimeSlot               `yaml:"times"     json:"times"`
	Prices   map[Class]string         `yaml:"prices"    json:"prices"`
	Schemes  map[Class]*SchemeSetting `yaml:"schemes"   json:"schemes"`

	PriceTable map[Class]decimal.Decimal `yaml:"-" json:"-"`
}

// TimeSlot 開獎時段（例如 "1 PM" / "13"）
type TimeSlot struct {
	Label string `yaml:"label" json:"label"`
	Code  string `yaml:"code"  json:"code"`
}

func (ds *DrawSetting) init() error {
	ds.DrawName = strings.ToLower(strings.TrimSpace(ds.DrawName))
	ds.DrawCode = strings.TrimSpace(ds.DrawCode)

	ds.PriceTable = make(map[Class]decimal.Decimal, len(ds.Prices))
	for c, raw := range ds.Prices {
		if c.Width() == 0 {
			return errs.NewFatal(fmt.Sprintf("draw_code: %s err:unknown class in prices: %q", ds.DrawCode, c))
		}
		p, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return errs.WrapWithExtra(err, "invalid price", fmt.Sprintf("draw_code=%s class=%s", ds.DrawCode, c))
		}
		ds.PriceTable[c] = p
	}

	for c, sc := range ds.Schemes {
		if c.Width() == 0 {
			return errs.NewFatal(fmt.Sprintf("draw_code: %s err:unknown class in schemes: %q", ds.DrawCode, c))
		}
		if sc == nil {
			return errs.NewFatal(fmt.Sprintf("draw_code: %s err:empty scheme for %s", ds.DrawCode, c))
		}
		if err := sc.init(); err != nil {
			return errs.WrapWithExtra(err, "scheme initialized err", fmt.Sprintf("draw_code=%s class=%s", ds.DrawCode, c))
		}
	}
	return ds.valid()
}

func (ds *DrawSetting) valid() error {
	if ds.DrawName == "" {
		return errs.NewFatal("empty draw_name")
	}
	if ds.DrawCode == "" {
		return errs.NewFatal(fmt.Sprintf("draw_name: %s err:empty draw_code", ds.DrawName))
	}
	if strings.ContainsAny(ds.DrawCode, " \t\r\n") {
		return errs.NewFatal(fmt.Sprintf("draw_name: %s err:draw_code contains whitespace", ds.DrawName))
	}
	if len(ds.Times) == 0 {
		return errs.NewFatal(fmt.Sprintf("draw_name: %s err:empty times", ds.DrawName))
	}
	seen := make(map[string]struct{}, len(ds.Times))
	for _, t := range ds.Times {
		if strings.TrimSpace(t.Code) == "" {
			return errs.NewFatal(fmt.Sprintf("draw_name: %s err:empty time code", ds.DrawName))
		}
		if _, ok := seen[t.Code]; ok {
			return errs.NewFatal(fmt.Sprintf("draw_name: %s err:duplicate time code %s", ds.DrawName, t.Code))
		}
		seen[t.Code] = struct{}{}
	}
	for c, p := range ds.PriceTable {
		if !p.IsPositive() {
			return errs.NewFatal(fmt.Sprintf("draw_name: %s err:price of %s must > 0", ds.DrawName, c))
		}
	}
	return nil
}

// Price 回傳類別單價；未設定時為 0。
func (ds *DrawSetting) Price(c Class) decimal.Decimal {
	return ds.PriceTable[c]
}

// TimeByCode 依時段代碼查詢
func (ds *DrawSetting) TimeByCode(code string) (TimeSlot, bool) {
	for _, t := range ds.Times {
		if t.Code == code {
			return t, true
		}
	}
	return TimeSlot{}, false
}

// SchemeSetting 派彩方案：Rates[i] 是第 i+1 名（或第 i+1 級）的每注派彩，Complement 是安慰獎派彩。
type SchemeSetting struct {
	Rates      []string `yaml:"rates"      json:"rates"`
	Complement string   `yaml:"complement" json:"complement"`

	RateTable       []decimal.Decimal `yaml:"-" json:"-"`
	ComplementValue decimal.Decimal   `yaml:"-" json:"-"`
}

func (sc *SchemeSetting) init() error {
	if len(sc.Rates) == 0 {
		return errs.NewFatal("empty rates")
	}
	sc.RateTable = make([]decimal.Decimal, len(sc.Rates))
	for i, raw := range sc.Rates {
		r, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return errs.WrapWithExtra(err, "invalid rate", fmt.Sprintf("rank=%d", i+1))
		}
		if r.IsNegative() {
			return errs.NewFatal(fmt.Sprintf("rate of rank %d must >= 0", i+1))
		}
		sc.RateTable[i] = r
	}
	sc.ComplementValue = decimal.Zero
	if s := strings.TrimSpace(sc.Complement); s != "" {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return errs.Wrap(err, "invalid complement rate")
		}
		if v.IsNegative() {
			return errs.NewFatal("complement rate must >= 0")
		}
		sc.ComplementValue = v
	}
	return nil
}

// Rate 回傳第 rank 名（1-based）的派彩；超出範圍回傳 0。
func (sc *SchemeSetting) Rate(rank int) decimal.Decimal {
	if sc == nil || rank < 1 || rank > len(sc.RateTable) {
		return decimal.Zero
	}
	return sc.RateTable[rank-1]
}
