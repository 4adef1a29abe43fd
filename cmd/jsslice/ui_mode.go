package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting of check; same vocabulary as --color.
type uiMode string

func readUIMode(value string) (uiMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		v = "auto"
	}
	switch v {
	case "auto", "on", "off":
		return uiMode(v), nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: в auto прогресс рисуем только на терминале и без --quiet.
func (m uiMode) shouldUseTUI() bool {
	if m == "on" || m == "off" {
		return m == "on"
	}
	return !current.quiet && isTerminal(os.Stdout)
}
