package web

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"crmshop/store"
)

// stage is one Server-Timing entry, e.g. query;dur=0.4.
type stage struct {
	name string
	ms   float64
}

func serverTiming(stages ...stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = fmt.Sprintf("%s;dur=%.1f", s.name, s.ms)
	}
	return strings.Join(parts, ", ")
}

func setServerTiming(c echo.Context, stages ...stage) {
	c.Response().Header().Set("Server-Timing", serverTiming(stages...))
}

// timedJSON serializes v by hand so the ser stage can be measured, then
// writes the body with a conn/query/ser Server-Timing header. extra stages
// (the orders verify step) land between conn and query.
func timedJSON(c echo.Context, status int, v any, tm store.Timing, extra ...stage) error {
	t := time.Now()
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	serMS := msSince(t)

	stages := append([]stage{{"conn", tm.ConnMS}}, extra...)
	stages = append(stages, stage{"query", tm.QueryMS}, stage{"ser", serMS})
	setServerTiming(c, stages...)
	return c.JSONBlob(status, body)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
