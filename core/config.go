package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config rwapool config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Oracle   Oracle    `json:"oracle"`
	Token    Token     `json:"token"`
	Backstop Backstop  `json:"backstop"`
	Admins   []string  `json:"admins"`
}

// App app config
type App struct {
	// Genesis unix time of block zero
	Genesis int64 `json:"genesis" valid:"required"`
	// SecondsPerBlock ledger cadence
	SecondsPerBlock int64 `json:"seconds_per_block"`
	Location        string `json:"location"`
	Port            int    `json:"port"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point" valid:"required"`
	// CacheSeconds best-effort quote cache; staleness is enforced
	// separately against the 24h bound
	CacheSeconds int64 `json:"cache_seconds"`
}

// Token token contract gateway config
type Token struct {
	EndPoint string `json:"end_point"`
}

// Backstop backstop defaults used at pool initialization
type Backstop struct {
	Threshold string `json:"threshold"`
	TakeRate  int64  `json:"take_rate"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}
