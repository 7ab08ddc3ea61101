package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	RentalsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentals_opened_total",
			Help: "Rentals opened per tenant",
		},
		[]string{"tenant"},
	)

	RentalsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentals_closed_total",
			Help: "Rentals finished per tenant",
		},
		[]string{"tenant"},
	)

	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Spreadsheet import rows by tenant and outcome",
		},
		[]string{"tenant", "outcome"},
	)

	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Spreadsheet exports generated by report kind",
		},
		[]string{"kind"},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(RentalsOpened)
	prometheus.MustRegister(RentalsClosed)
	prometheus.MustRegister(ImportRows)
	prometheus.MustRegister(Exports)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
