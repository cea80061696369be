package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "fleawatch-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "fleawatch-recording",
					Rules: []Rule{
						{
							Record: "fleawatch:listings_evaluated:rate5m",
							Expr:   `rate(fleawatch_listings_evaluated_total[5m])`,
						},
						{
							Record: "fleawatch:matches:rate5m",
							Expr:   `rate(fleawatch_matches_total[5m])`,
						},
						{
							Record: "fleawatch:source_requests:rate5m",
							Expr:   `rate(fleawatch_source_requests_total[5m])`,
						},
						{
							Record: "fleawatch:fetch_errors:rate5m",
							Expr:   `rate(fleawatch_fetch_errors_total[5m])`,
						},
						{
							Record: "fleawatch:notifications:rate5m",
							Expr:   `rate(fleawatch_notifications_total[5m])`,
						},
						{
							Record: "fleawatch:notify_failures:rate5m",
							Expr:   `rate(fleawatch_notify_failures_total[5m])`,
						},
					},
				},
			},
		},
	}
}
