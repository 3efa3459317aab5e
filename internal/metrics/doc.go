// Package metrics records calculation outcomes in a private Prometheus
// registry and renders it in the text exposition format.
package metrics
