package store

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileSource reads a dataset from a YAML file on every Load
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	return ParseDataset(data)
}

// ParseDataset decodes a YAML dataset. Records without an id get a random one.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	for i := range ds.Technicians {
		if ds.Technicians[i].ID == "" {
			ds.Technicians[i].ID = uuid.New().String()
		}
	}
	for i := range ds.Appointments {
		if ds.Appointments[i].ID == "" {
			ds.Appointments[i].ID = uuid.New().String()
		}
	}
	for i := range ds.EmailQueue {
		if ds.EmailQueue[i].ID == "" {
			ds.EmailQueue[i].ID = uuid.New().String()
		}
	}

	return &ds, nil
}
