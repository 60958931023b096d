package warehouse

import (
	"fmt"
	"strconv"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"
)

// snowflakeDSN accepts either a gosnowflake DSN or the key/value connection
// string of the Snowflake .NET connector and returns a gosnowflake DSN.
func snowflakeDSN(raw string) (string, error) {
	if !isKeyValueDSN(raw) {
		if _, err := sf.ParseDSN(raw); err != nil {
			return "", fmt.Errorf("parse snowflake dsn: %w", err)
		}
		return raw, nil
	}

	cfg, err := parseKeyValueDSN(raw)
	if err != nil {
		return "", err
	}
	dsn, err := sf.DSN(cfg)
	if err != nil {
		return "", fmt.Errorf("build snowflake dsn: %w", err)
	}
	return dsn, nil
}

func isKeyValueDSN(raw string) bool {
	first := raw
	if i := strings.Index(raw, ";"); i >= 0 {
		first = raw[:i]
	}
	key, _, ok := strings.Cut(first, "=")
	if !ok {
		return false
	}
	_, known := keyValueFields[strings.ToLower(strings.TrimSpace(key))]
	return known
}

var keyValueFields = map[string]func(cfg *sf.Config, value string) error{
	"account":   func(cfg *sf.Config, v string) error { cfg.Account = v; return nil },
	"host":      func(cfg *sf.Config, v string) error { cfg.Host = v; return nil },
	"user":      func(cfg *sf.Config, v string) error { cfg.User = v; return nil },
	"password":  func(cfg *sf.Config, v string) error { cfg.Password = v; return nil },
	"db":        func(cfg *sf.Config, v string) error { cfg.Database = v; return nil },
	"database":  func(cfg *sf.Config, v string) error { cfg.Database = v; return nil },
	"schema":    func(cfg *sf.Config, v string) error { cfg.Schema = v; return nil },
	"warehouse": func(cfg *sf.Config, v string) error { cfg.Warehouse = v; return nil },
	"role":      func(cfg *sf.Config, v string) error { cfg.Role = v; return nil },
	"region":    func(cfg *sf.Config, v string) error { cfg.Region = v; return nil },
	"scheme":    func(cfg *sf.Config, v string) error { cfg.Protocol = v; return nil },
	"port": func(cfg *sf.Config, v string) error {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid port %q", v)
		}
		cfg.Port = port
		return nil
	},
}

func parseKeyValueDSN(raw string) (*sf.Config, error) {
	cfg := &sf.Config{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed connection string segment %q", part)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		set, known := keyValueFields[key]
		if !known {
			return nil, fmt.Errorf("unknown connection string key %q", key)
		}
		if err := set(cfg, value); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
