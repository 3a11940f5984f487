package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// StdOut 將銷售報表以表格印到標準輸出
func (r *SalesReport) StdOut() {
	r.Done()
	fmt.Fprint(os.Stdout, r.Table())
}

// Fprint 同 StdOut，但寫到指定的 writer
func (r *WinningReport) Fprint(w io.Writer) {
	fmt.Fprint(w, r.Table())
}

// Table 回傳銷售報表的文字表格
func (r *SalesReport) Table() string {
	r.Done()
	p := message.NewPrinter(lang)
	keys := make([]string, 0, len(r.Lines)+5)
	msg := make(map[string]string, len(r.Lines)+5)
	add := func(k, v string) {
		keys = append(keys, k)
		msg[k] = v
	}
	add("Draw Code", r.DrawCode)
	for _, l := range r.Lines {
		add(l.Type, p.Sprintf("%d entries / %d bets / %s", l.Entries, l.Count, money(p, l.Amount)))
	}
	add("Total Entries", p.Sprintf("%d", r.TotalEntries))
	add("Total Bets", p.Sprintf("%d", r.TotalCount))
	add("Total Amount", money(p, r.TotalAmount))
	add("Bets Mean/STD", p.Sprintf("%.2f / %.2f", r.CountMean, r.CountStd))
	return fmtTable(r.DrawName, keys, msg)
}

// Table 回傳中獎報表的文字表格
func (r *WinningReport) Table() string {
	p := message.NewPrinter(lang)
	keys := make([]string, 0, len(r.Lines)+4)
	msg := make(map[string]string, len(r.Lines)+4)
	add := func(k, v string) {
		keys = append(keys, k)
		msg[k] = v
	}
	add("Prizes", strings.Join(r.Result.Prizes, ", "))
	if len(r.Result.Complements) > 0 {
		add("Complements", strings.Join(r.Result.Complements, ", "))
	}
	for _, l := range r.Lines {
		add(l.Type, p.Sprintf("%d entries / %d bets / %s", l.Entries, l.Count, money(p, l.Prize)))
	}
	add("Winners", p.Sprintf("%d", r.Winners))
	add("Total Prize", money(p, r.TotalPrize))
	return fmtTable(r.DrawCode, keys, msg)
}

// money 以千分位輸出兩位小數
func money(p *message.Printer, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	frac := d.Sub(whole).StringFixed(2) // "0.xx"
	return sign + p.Sprintf("%d", whole.IntPart()) + frac[1:]
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := max((totalInner-titleW)/2, 0)
	right := max(totalInner-titleW-left, 0)

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) + " | " + msg[k] + blank(maxValLen-2-runewidth.StringWidth(msg[k])) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
