package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/tui/jsoncolor"
)

// formatMoney renders a USD amount with thousands separators and two
// decimals, sign first: -$1,234.50.
func formatMoney(n float64) string {
	s := humanize.FormatFloat("#,###.##", math.Abs(n))
	if n < 0 {
		return "-$" + s
	}
	return "$" + s
}

// formatNumber renders n with thousands separators and at most two decimals.
func formatNumber(n float64) string {
	s := humanize.FormatFloat("#,###.##", n)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// updatedAgo renders how long ago a details timestamp was, or "" when v is
// not a recognizable time.
func updatedAgo(v any, now time.Time) string {
	ts, ok := parseTimestamp(v)
	if !ok {
		return ""
	}
	mins := max(int(now.Sub(ts)/time.Minute), 0)
	switch mins {
	case 0:
		return "Updated just now"
	case 1:
		return "Updated 1 minute ago"
	default:
		return fmt.Sprintf("Updated %d minutes ago", mins)
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseTimestamp accepts RFC 3339 style strings and epoch milliseconds.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func entityIcon(kind transcript.EntityType) string {
	if icon := chipIcon(kind); icon != "" {
		return icon
	}
	return styles.IconOther
}

// detailRow is one labelled value in the lower half of the panel.
type detailRow struct {
	key   string
	value string
}

func detailRows(d transcript.MentionDetails) []detailRow {
	var rows []detailRow
	add := func(key, value string) {
		if value != "" {
			rows = append(rows, detailRow{key: key, value: value})
		}
	}

	add("Speaker", d.Speaker)
	add("Polarity", d.Sentiment.Polarity)
	add("Emotions", strings.Join(d.Sentiment.Emotions, ", "))
	add("Intensity", d.Sentiment.Intensity)
	add("Subjectivity", d.Sentiment.Subjectivity)
	return rows
}

// renderDetails builds the content of the details panel for the first mention
// of the selected entity. raw swaps the summary for the colorized details
// JSON.
func renderDetails(m transcript.Mention, width int, now time.Time, raw bool) string {
	width = max(width, 10)
	d := m.Details

	name := d.Name
	if name == "" {
		name = d.LookupString("title")
	}
	if name == "" {
		name = "—"
	}
	title := entityIcon(m.EntityType) + " " + styles.FooterTitleStyle.Render(name)
	if d.Ticker != "" {
		title += "  " + styles.TextMutedStyle.Render(d.Ticker)
	}

	lines := []string{title}

	var sub []string
	if sector := d.LookupString("sector", "industry", "category"); sector != "" {
		sub = append(sub, styles.TextStyle.Render(sector))
	}
	if v, ok := d.Lookup("updated_at", "last_updated", "updatedAt"); ok {
		if ago := updatedAgo(v, now); ago != "" {
			sub = append(sub, styles.TextMutedStyle.Render(ago))
		}
	}
	if len(sub) > 0 {
		lines = append(lines, strings.Join(sub, "   "))
	}

	if market := renderMarket(d); market != "" {
		lines = append(lines, market)
	}

	if raw {
		lines = append(lines, "", jsoncolor.Value(d))
		return strings.Join(lines, "\n")
	}

	if s := d.Sentiment.Score; s != nil {
		index := "Sentiment index " + styles.TextForegroundBoldStyle.Render(formatNumber(*s))
		if j := d.Sentiment.ScoreJustification; j != "" {
			index += styles.TextMutedStyle.Render(" (" + j + ")")
		}
		lines = append(lines, wordwrap.String(index, width))
	}
	if summary := d.Sentiment.Summary; summary != "" {
		lines = append(lines, styles.TextStyle.Render(wordwrap.String(summary, width)))
	}

	lines = append(lines, "")
	rows := detailRows(d)
	if len(rows) == 0 {
		lines = append(lines, styles.TextMutedStyle.Render("No details available."))
	}
	valueWidth := max(width-lipgloss.Width(styles.FooterKeyStyle.Render("")), 10)
	for _, r := range rows {
		value := wordwrap.String(r.value, valueWidth)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.FooterKeyStyle.Render(r.key),
			styles.TextForegroundBoldStyle.Render(value),
		))
	}

	return strings.Join(lines, "\n")
}

// renderMarket renders "price  ↑ change (pct%)". The arrow follows the change,
// or the percentage when only that is known.
func renderMarket(d transcript.MentionDetails) string {
	var parts []string
	if price, ok := d.LookupFloat("price", "current_price", "currentPrice"); ok {
		parts = append(parts, styles.TextForegroundBoldStyle.Render(formatMoney(price)))
	}

	change, hasChange := d.LookupFloat("change", "price_change", "delta")
	pct, hasPct := d.LookupFloat("change_percent", "price_change_percent", "percent")
	if hasChange || hasPct {
		up := change >= 0
		if !hasChange {
			up = pct >= 0
		}

		arrow, style := "↑", styles.TextSuccessStyle
		if !up {
			arrow, style = "↓", styles.TextErrorStyle
		}

		text := arrow
		if hasChange {
			text += " " + formatNumber(change)
		}
		if hasPct {
			text += " (" + formatNumber(pct) + "%)"
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, "  ")
}
