package router

import (
	"sort"

	"github.com/gin-gonic/gin"

	"account-api/internal/transport/http/ez"
)

// Module is a group of actions mounted under one prefix.
type Module interface {
	Prefix() string
	Mount(e ez.EZ)
}

// Optional: lower values mount first; default 100.
type prioritizer interface{ Priority() int }

func priority(m Module) int {
	if p, ok := m.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}

func mountAll(g *gin.RouterGroup, authn gin.HandlerFunc, mods ...Module) {
	sorted := append([]Module(nil), mods...)
	sort.SliceStable(sorted, func(i, j int) bool { return priority(sorted[i]) < priority(sorted[j]) })
	for _, m := range sorted {
		m.Mount(ez.New(g.Group(m.Prefix()), authn))
	}
}
