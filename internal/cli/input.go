package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"gopkg.in/yaml.v3"
)

// readRecordFile decodes one record from a YAML or JSON file.
func readRecordFile(path string) (playerstats.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	var out map[string]any
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode record file %s: %w", path, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return playerstats.Input(out), nil
}

// readRecordsFile decodes a list of records. A file holding a single mapping yields one record.
func readRecordsFile(path string) ([]playerstats.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("decode records file %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	doc := node.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		var item map[string]any
		if err := doc.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return []playerstats.Input{item}, nil
	case yaml.SequenceNode:
		var items []map[string]any
		if err := doc.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		out := make([]playerstats.Input, 0, len(items))
		for _, item := range items {
			out = append(out, playerstats.Input(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("records file %s must hold a mapping or a list of mappings", path)
	}
}

// parseAssignments turns key=value pairs into a map. Values follow YAML scalar typing,
// so 10 is an int, true a bool and anything else a string.
func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", pair)
		}
		out[key] = scalarValue(value)
	}
	return out, nil
}

func scalarValue(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var out any
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return raw
	}
	switch out.(type) {
	case map[string]any, []any:
		return raw
	}
	return out
}

// buildInput merges a record file with --set assignments. Assignments win.
func buildInput(file string, sets []string) (playerstats.Input, error) {
	input := playerstats.Input{}
	if strings.TrimSpace(file) != "" {
		fromFile, err := readRecordFile(file)
		if err != nil {
			return nil, err
		}
		input = fromFile
	}

	assigned, err := parseAssignments(sets)
	if err != nil {
		return nil, err
	}
	for key, value := range assigned {
		input[key] = value
	}
	return input, nil
}
