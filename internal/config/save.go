package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/micromd/internal/log"
)

// Render returns cfg as YAML, as printed by `micromd config show`.
func Render(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(renderable(cfg)); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// yaml.v3 writes time.Duration as nanoseconds; show it the way it is written.
type renderedCache struct {
	TTL             string `yaml:"ttl"`
	CleanupInterval string `yaml:"cleanup_interval"`
}

type renderedWatch struct {
	Debounce string `yaml:"debounce"`
}

type rendered struct {
	Parse   ParseOptions   `yaml:"parse"`
	Compile CompileOptions `yaml:"compile"`
	Log     LogConfig      `yaml:"log"`
	Tracing TracingConfig  `yaml:"tracing"`
	Cache   renderedCache  `yaml:"cache"`
	Watch   renderedWatch  `yaml:"watch"`
}

func renderable(cfg Config) rendered {
	return rendered{
		Parse:   cfg.Parse,
		Compile: cfg.Compile,
		Log:     cfg.Log,
		Tracing: cfg.Tracing,
		Cache: renderedCache{
			TTL:             cfg.Cache.TTL.String(),
			CleanupInterval: cfg.Cache.CleanupInterval.String(),
		},
		Watch: renderedWatch{Debounce: cfg.Watch.Debounce.String()},
	}
}

// Set writes value at the dotted key (for example
// "parse.constructs.label_end") into the config file at configPath. Comments
// and unrelated keys are kept. A missing file starts from the default
// template. The result must still validate or nothing is written.
func Set(configPath, key, value string) error {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("%w: malformed key %q", ErrInvalidOption, key)
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- user supplied config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte(DefaultConfigTemplate())
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	node := doc.Content[0]
	for _, segment := range segments[:len(segments)-1] {
		node = childMapping(node, segment)
		if node == nil {
			return fmt.Errorf("%w: %q is not a section", ErrInvalidOption, segment)
		}
	}
	setScalar(node, segments[len(segments)-1], value)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := checkRendered(buf.Bytes()); err != nil {
		return err
	}

	log.Debug(log.CatConfig, "Setting config value", "path", configPath, "key", key, "value", value)
	return writeAtomic(configPath, buf.Bytes())
}

// childMapping returns the mapping under key, creating it when missing. It
// returns nil when key holds something other than a mapping.
func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == key {
			child := parent.Content[i+1]
			if child.Kind != yaml.MappingNode {
				return nil
			}
			return child
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func setScalar(parent *yaml.Node, key, value string) {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == key {
			old := parent.Content[i+1]
			parent.Content[i+1] = &yaml.Node{
				Kind:        yaml.ScalarNode,
				Value:       value,
				LineComment: old.LineComment,
			}
			return
		}
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// checkRendered decodes data over the defaults and validates the result.
func checkRendered(data []byte) error {
	cfg := Defaults()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	return Validate(cfg)
}

func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".micromd.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
