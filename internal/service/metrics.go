package service

import "github.com/prometheus/client_golang/prometheus"

var loginAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "account_login_attempts_total", Help: "Login attempts by outcome"},
	[]string{"result"},
)

func init() { prometheus.MustRegister(loginAttempts) }
