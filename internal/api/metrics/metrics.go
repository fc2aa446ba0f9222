// Package metrics defines all custom Prometheus metrics for the job board
// API. It is the single source of truth for metric names, labels, and help
// strings; request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// RegistrationsTotal counts account registrations.
// Label:
//   - role: "jobSeeker", "employer", or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// JobsCreatedTotal counts job postings created.
// Label:
//   - type: the employment type reported by the employer (e.g. "full-time")
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by employment type.",
	},
	[]string{"type"},
)

// ApplicationsSubmittedTotal counts submitted applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of job applications submitted.",
	},
)

// ApplicationStatusChangesTotal counts employer status decisions.
// Label:
//   - status: the new application status (e.g. "REVIEWED", "HIRED")
var ApplicationStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_changes_total",
		Help:      "Total number of application status updates, by new status.",
	},
	[]string{"status"},
)

// UploadsTotal counts stored file uploads.
// Label:
//   - kind: "resume" or "logo"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files stored, by kind.",
	},
	[]string{"kind"},
)
