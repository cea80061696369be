package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// WatcherUpStat returns a stat panel showing whether the watcher target is up.
func WatcherUpStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Watcher Up").
		Description("Scrape target status (1 = up, 0 = down)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`up{job="fleawatch"}`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - process_start_time_seconds{job="fleawatch"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// DedupStoreStat returns a stat panel showing how many listing IDs are
// tracked as already notified.
func DedupStoreStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Tracked Listings").
		Description("Listing IDs remembered as already notified").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`fleawatch_dedup_store_size{job="fleawatch"}`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// DailyMessagesGauge returns a gauge panel showing Telegram messages sent in
// the last 24 hours as a percentage of the daily limit.
func DailyMessagesGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf(`increase(fleawatch_notifications_total{job="fleawatch"}[24h]) / %d * 100`, TelegramDailyLimit)
	return gauge.NewPanelBuilder().
		Title("Daily Messages %").
		Description("Messages sent in the last 24h as percentage of the daily limit").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}
