package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var configSchema string

// DefaultEnvMapping maps environment variables to dotted config paths.
var DefaultEnvMapping = map[string]string{
	"ASSISTANT_LOG_LEVEL":     "application.log_level",
	"ASSISTANT_LOG_FORMAT":    "logging.format",
	"ASSISTANT_POLL_INTERVAL": "session.poll_interval",
	"ASSISTANT_TIMEOUT":       "window.timeout",
	"ASSISTANT_ON_TOP":        "window.on_top",
}

// Load reads the YAML config at path on top of Default, applies environment
// overrides and validates the result against the config schema.
// An empty path loads the defaults plus overrides.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, DefaultEnvMapping)
}

// LoadWithEnv is Load with a custom environment mapping; nil disables overrides.
func LoadWithEnv(path string, envMapping map[string]string) (*Config, error) {
	doc := make(map[string]interface{})
	if path != "" {
		yb, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(yb, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
		if doc == nil {
			doc = make(map[string]interface{})
		}
	}

	applyEnvOverrides(doc, envMapping)

	if err := ValidateSchema(configSchema, doc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	merged, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(merged, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ValidateSchema validates a YAML decoded document against a JSON schema.
func ValidateSchema(schema string, doc interface{}) error {
	jsonCompatible, err := toJSONCompatible(doc)
	if err != nil {
		return fmt.Errorf("convert yaml->json compatible: %w", err)
	}
	jb, err := json.Marshal(jsonCompatible)
	if err != nil {
		return fmt.Errorf("marshal to json: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(jb),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for _, e := range result.Errors() {
			sb.WriteString("\n- ")
			sb.WriteString(e.String())
		}
		return fmt.Errorf("validation failed:%s", sb.String())
	}
	return nil
}

// applyEnvOverrides reads environment variables per mapping and sets dotted-paths in cfg.
func applyEnvOverrides(cfg map[string]interface{}, mapping map[string]string) {
	for env, path := range mapping {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			setNestedField(cfg, path, coerce(v))
		}
	}
}

// coerce turns integer and boolean looking strings into numbers and booleans
// so they validate against the schema.
func coerce(s string) interface{} {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// setNestedField sets value at dotted path (e.g. "window.timeout") creating maps as needed.
func setNestedField(m map[string]interface{}, dotted string, value interface{}) {
	parts := strings.Split(dotted, ".")
	last := len(parts) - 1
	cur := m
	for i, p := range parts {
		if i == last {
			cur[p] = value
			return
		}
		next, exists := cur[p]
		if !exists {
			nm := make(map[string]interface{})
			cur[p] = nm
			cur = nm
			continue
		}
		switch typed := next.(type) {
		case map[string]interface{}:
			cur = typed
		default:
			// overwrite non-map with map to set deeper values
			nm := make(map[string]interface{})
			cur[p] = nm
			cur = nm
		}
	}
}

// toJSONCompatible converts yaml-parsed structures (with map[interface{}]interface{}) into map[string]interface{} recursively.
func toJSONCompatible(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, vv := range val {
			conv, err := toJSONCompatible(vv)
			if err != nil {
				return nil, err
			}
			m[fmt.Sprintf("%v", k)] = conv
		}
		return m, nil
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, vv := range val {
			conv, err := toJSONCompatible(vv)
			if err != nil {
				return nil, err
			}
			m[k] = conv
		}
		return m, nil
	case []interface{}:
		arr := make([]interface{}, len(val))
		for i, vv := range val {
			conv, err := toJSONCompatible(vv)
			if err != nil {
				return nil, err
			}
			arr[i] = conv
		}
		return arr, nil
	default:
		return val, nil
	}
}
