package http

import (
	"github.com/go-account-api/internal/infrastructure/dynamo"
	"github.com/go-account-api/internal/infrastructure/smtp"
	"github.com/go-account-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo      *dynamo.AccountRepo
	VerificationRepo *dynamo.VerificationRepo
	ResetRepo        *dynamo.PasswordResetRepo
	Mailer           smtp.Mailer
	Collector        *metrics.Collector
	Gatherer         prometheus.Gatherer
}
