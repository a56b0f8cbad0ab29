// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs every
// registered check concurrently under a shared timeout and answers 503 if
// any fails:
//
//	mux.Get("/health/live", health.LivenessHandler())
//	mux.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"db": db.Healthcheck(conn),
//	}, health.WithTimeout(2*time.Second)))
//
// Both handlers answer plain text by default and JSON when the request
// sends Accept: application/json or ?format=json.
//
// Run executes the same checks outside HTTP, for example from a CLI.
package health
