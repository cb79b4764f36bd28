package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"RetestSentinel/internal/model"
	"RetestSentinel/internal/recorder"
)

const dateLayout = "2006-01-02"

func directionIcon(d model.Direction) string {
	if d == model.Short {
		return "🔻"
	}
	return "🚀"
}

// FormatSignal formats a detected setup into a Telegram message.
func FormatSignal(sig *model.Signal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | 200MA retest\n\n", directionIcon(sig.Direction), sig.Direction, sig.Symbol))
	b.WriteString(fmt.Sprintf("Entry: %.2f\n", sig.Entry))
	b.WriteString(fmt.Sprintf("Stop: %.2f (risk %.2f)\n", sig.Stop, sig.Risk))
	b.WriteString(fmt.Sprintf("Target: %.2f (reward %.2f, %.1fR)\n\n", sig.Target, sig.Reward, sig.Reward/sig.Risk))

	b.WriteString(fmt.Sprintf("Breakout: %s (vol %.2fx)\n", sig.BreakoutDate.Format(dateLayout), sig.BreakoutVolumeRatio))
	b.WriteString(fmt.Sprintf("Retest: %s (vol %.2fx)\n", sig.RetestDate.Format(dateLayout), sig.RetestVolumeRatio))
	b.WriteString(fmt.Sprintf("Bounce: %s\n", sig.CurrentDate.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("Avg volume: %.0f", sig.AvgVolume))
	return b.String()
}

// FormatOrder formats a paper bracket order.
func FormatOrder(o *model.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📝 <b>Paper order</b> %s %d %s\n", o.Side, o.Shares, o.Symbol))
	b.WriteString(fmt.Sprintf("Limit: %.2f | Stop: %.2f | Take profit: %.2f\n", o.LimitPrice, o.StopPrice, o.TakeProfit))
	b.WriteString(fmt.Sprintf("Risk: $%.2f\n", o.RiskAmount))
	b.WriteString(fmt.Sprintf("ID: <code>%s</code>", o.ID))
	return b.String()
}

// FormatScanSummary formats the result of one universe scan.
func FormatScanSummary(run *recorder.ScanRun, signals []*model.Signal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔎 <b>Scan complete</b> | %s\n\n", run.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Symbols: %d | scanned: %d | skipped: %d\n", run.Symbols, run.Scanned, run.Skipped))
	b.WriteString(fmt.Sprintf("Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Second)))

	if len(run.Outcomes) > 0 {
		keys := make([]string, 0, len(run.Outcomes))
		for k := range run.Outcomes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%d", k, run.Outcomes[k])
		}
		b.WriteString(fmt.Sprintf("Outcomes: %s\n", strings.Join(parts, ", ")))
	}

	if len(signals) == 0 {
		b.WriteString("\nNo signals.")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n<b>Signals (%d):</b>\n", len(signals)))
	for _, s := range signals {
		b.WriteString(fmt.Sprintf("  %s %s @ %.2f stop %.2f target %.2f\n", s.Direction, s.Symbol, s.Entry, s.Stop, s.Target))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPositions lists open paper positions.
func FormatPositions(positions []model.Position) string {
	if len(positions) == 0 {
		return "📦 No open positions."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📦 <b>Open positions (%d)</b>\n\n", len(positions)))
	for _, p := range positions {
		b.WriteString(fmt.Sprintf("%s %s x%d @ %.2f | stop %.2f | target %.2f | since %s\n",
			p.Direction, p.Symbol, p.Shares, p.Entry, p.Stop, p.Target, p.OpenedAt.Format(dateLayout)))
	}
	return strings.TrimRight(b.String(), "\n")
}
