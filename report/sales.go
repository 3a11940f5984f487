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

// Package report 彙整投注與中獎結果，並提供 JSON / YAML / 終端表格輸出。
package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/spec"
	"gonum.org/v1/gonum/stat"
)

// SalesLine 同一投注種類的銷售彙總
type SalesLine struct {
	Type    string          `json:"type"    yaml:"type"`
	Entries int             `json:"entries" yaml:"entries"`
	Count   int             `json:"count"   yaml:"count"`
	Price   decimal.Decimal `json:"price"   yaml:"price"`
	Amount  decimal.Decimal `json:"amount"  yaml:"amount"`
}

// SalesReport 一個開獎的銷售報表
type SalesReport struct {
	DrawName     string          `json:"draw_name"     yaml:"draw_name"`
	DrawCode     string          `json:"draw_code"     yaml:"draw_code"`
	Lines        []SalesLine     `json:"lines"         yaml:"lines"`
	TotalEntries int             `json:"total_entries" yaml:"total_entries"`
	TotalCount   int             `json:"total_count"   yaml:"total_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"  yaml:"total_amount"`
	CountMean    float64         `json:"count_mean"    yaml:"count_mean"`
	CountStd     float64         `json:"count_std"     yaml:"count_std"`

	ds     *spec.DrawSetting
	index  map[string]int
	counts []float64
	isDone bool
}

// NewSales 建立空的銷售報表；ds 提供單價。
func NewSales(ds *spec.DrawSetting) *SalesReport {
	return &SalesReport{
		DrawName:    ds.DrawName,
		DrawCode:    ds.DrawCode,
		Lines:       make([]SalesLine, 0, 8),
		TotalAmount: decimal.Zero,
		ds:          ds,
		index:       make(map[string]int, 8),
	}
}

// Sales 一次性彙總
func Sales(ds *spec.DrawSetting, entries []bet.Entry) *SalesReport {
	r := NewSales(ds)
	r.Add(entries)
	r.Done()
	return r
}

// Add 累加投注；Done 之後呼叫無效。
func (r *SalesReport) Add(entries []bet.Entry) {
	if r.isDone {
		return
	}
	for _, e := range entries {
		i, ok := r.index[e.Type]
		if !ok {
			price := decimal.Zero
			if c, ok := spec.ClassOf(r.DrawCode, e.Type); ok {
				price = r.ds.Price(c)
			}
			r.Lines = append(r.Lines, SalesLine{Type: e.Type, Price: price, Amount: decimal.Zero})
			i = len(r.Lines) - 1
			r.index[e.Type] = i
		}
		l := &r.Lines[i]
		l.Entries++
		l.Count += e.Count
		l.Amount = l.Amount.Add(l.Price.Mul(decimal.NewFromInt(int64(e.Count))))
		r.counts = append(r.counts, float64(e.Count))
	}
}

// Merge 併入另一份尚未 Done 的報表（同一開獎）
func (r *SalesReport) Merge(o *SalesReport) {
	if r.isDone || o == nil {
		return
	}
	for _, ol := range o.Lines {
		i, ok := r.index[ol.Type]
		if !ok {
			r.Lines = append(r.Lines, SalesLine{Type: ol.Type, Price: ol.Price, Amount: decimal.Zero})
			i = len(r.Lines) - 1
			r.index[ol.Type] = i
		}
		l := &r.Lines[i]
		l.Entries += ol.Entries
		l.Count += ol.Count
		l.Amount = l.Amount.Add(ol.Amount)
	}
	r.counts = append(r.counts, o.counts...)
}

// Done 排序並計算總計與注數的平均、標準差，之後報表即鎖定。
func (r *SalesReport) Done() {
	if r.isDone {
		return
	}
	sort.Slice(r.Lines, func(i, j int) bool { return r.Lines[i].Type < r.Lines[j].Type })
	r.TotalEntries, r.TotalCount, r.TotalAmount = 0, 0, decimal.Zero
	for _, l := range r.Lines {
		r.TotalEntries += l.Entries
		r.TotalCount += l.Count
		r.TotalAmount = r.TotalAmount.Add(l.Amount)
	}
	switch len(r.counts) {
	case 0:
	case 1:
		r.CountMean = r.counts[0]
	default:
		r.CountMean, r.CountStd = stat.MeanStdDev(r.counts, nil)
	}
	r.isDone = true
}
