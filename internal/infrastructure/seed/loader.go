// Package seed reads plaintext vault records for import.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/securevault/vault-system/internal/core/ports"
)

var ErrEmptyFile = errors.New("seed file holds no records")

type fileRecord struct {
	AccountID    string    `yaml:"account_id"`
	CustomerName string    `yaml:"customer_name"`
	Data         yaml.Node `yaml:"data"`
}

// LoadFile reads a YAML seed file from disk.
func LoadFile(path string) ([]ports.ImportInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML list of records. The data mapping of each record keeps
// the key order written in the file.
func Load(r io.Reader) ([]ports.ImportInput, error) {
	var raw []fileRecord
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyFile
	}

	out := make([]ports.ImportInput, 0, len(raw))
	for i, rec := range raw {
		if rec.AccountID == "" || rec.CustomerName == "" {
			return nil, fmt.Errorf("record %d: account_id and customer_name are required", i)
		}
		if rec.Data.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d (%s): data must be a mapping", i, rec.AccountID)
		}
		data, err := convertMapping(&rec.Data)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.AccountID, err)
		}
		out = append(out, ports.ImportInput{
			AccountID:    rec.AccountID,
			CustomerName: rec.CustomerName,
			Data:         data,
		})
	}
	return out, nil
}

func convertMapping(n *yaml.Node) (*orderedmap.OrderedMap, error) {
	obj := orderedmap.New()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		val, err := convert(v)
		if err != nil {
			return nil, err
		}
		obj.Set(k.Value, val)
	}
	return obj, nil
}

func convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return convert(n.Alias)
	case yaml.MappingNode:
		return convertMapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := convert(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}
