// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/fleawatch/fleawatch/tools/dashgen/panels"
)

// BuildOverview constructs the Fleawatch Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Fleawatch Overview").
		Uid("fleawatch-overview").
		Tags([]string{"fleawatch"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.WatcherUpStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.DedupStoreStat()).
		WithPanel(panels.DailyMessagesGauge()))

	// Row 2: Scan.
	b.WithRow(dashboard.NewRowBuilder("Scan").
		WithPanel(panels.ListingsEvaluatedRate()).
		WithPanel(panels.MatchesRate()).
		WithPanel(panels.CycleDuration()))

	// Row 3: Source.
	b.WithRow(dashboard.NewRowBuilder("Source").
		WithPanel(panels.SourceRequestsRate()).
		WithPanel(panels.FetchErrorsRate()))

	// Row 4: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotifyFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
