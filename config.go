package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/suaib92/tempmailr/tempmail"
)

func mustParseConfig() (tempmail.Config, string) {
	cfg := tempmail.Config{
		UpstreamURL:         parseStringVarWithDefault("UPSTREAM_URL", ""),
		FallbackDomains:     parseSliceVar("FALLBACK_DOMAINS"),
		AllowedOrigins:      parseSliceVar("CORS_ALLOWED_ORIGINS"),
		UpstreamMinInterval: time.Duration(mustParseIntVarWithDefault("UPSTREAM_MIN_INTERVAL_MS", 0)) * time.Millisecond,
		Developing:          parseBoolVarWithDefault("DEVELOPING", false),
	}

	addr := parseStringVarWithDefault("LISTEN_ADDR", ":8080")

	return cfg, addr
}

func parseStringVar(key string) string {
	return os.Getenv(key)
}

func parseStringVarWithDefault(key, def string) string {
	v := parseStringVar(key)
	if v == "" {
		return def
	}
	return v
}

func parseSliceVar(key string) (v []string) {
	val := parseStringVar(key)
	if val == "" {
		return nil
	}

	for _, s := range strings.Split(val, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			v = append(v, s)
		}
	}

	return
}

func parseBoolVarWithDefault(key string, def bool) bool {
	val := parseStringVar(key)
	if val == "" {
		return def
	}

	v, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return v
}

func mustParseIntVarWithDefault(key string, def int) int {
	val := parseStringVar(key)
	if val == "" {
		return def
	}

	v, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("Env var %v must be an integer, got %q", key, val)
	}
	return v
}
