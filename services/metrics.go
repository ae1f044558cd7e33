package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var githubRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portfolio_github_requests_total",
	Help: "Requests made to the GitHub API, by response status",
}, []string{"status"})

var githubCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portfolio_github_cache_hits_total",
	Help: "Repository listings served from the in-memory cache",
})

var notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portfolio_notifications_total",
	Help: "Outbound notifications, by channel and result",
}, []string{"channel", "result"})
