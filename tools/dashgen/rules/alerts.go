package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// fleawatch operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "fleawatch-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "fleawatch-alerts",
					Rules: []Rule{
						{
							Alert: "FleawatchDown",
							Expr:  `absent(up{job="fleawatch"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Fleawatch is down",
								"description": "The fleawatch job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "FleawatchScanStalled",
							Expr:  `increase(fleawatch_source_requests_total[15m]) == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Scan loop has stopped polling",
								"description": "No feed requests have been made in the last 15 minutes; the scan loop appears stalled.",
							},
						},
						{
							Alert: "FleawatchFetchErrors",
							Expr:  `fleawatch:fetch_errors:rate5m > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Listings feed fetch errors detected",
								"description": "Scan cycles have been skipped due to fetch failures for more than 10 minutes.",
							},
						},
						{
							Alert: "FleawatchNotifyFailures",
							Expr:  `increase(fleawatch_notify_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more Telegram messages have failed to send.",
							},
						},
						{
							Alert: "FleawatchDailyQuotaNear",
							Expr:  `increase(fleawatch_notifications_total[24h]) > 400`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Daily message quota is above 80%",
								"description": "More than 400 messages have been sent in the last 24 hours (default limit is 500).",
							},
						},
						{
							Alert: "FleawatchDedupStoreLarge",
							Expr:  `fleawatch_dedup_store_size > 50000`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Seen-listings store is unusually large",
								"description": "The in-memory dedup store holds more than 50000 listing IDs; memory use may need attention.",
							},
						},
					},
				},
			},
		},
	}
}
