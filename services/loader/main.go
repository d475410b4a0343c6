package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/sb25/REST-Web-Services-interaction/models/constants/strand"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest/structs"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
)

type (
	// FileLoader reads pending allele records, with their products, from
	// a YAML or JSON file holding a list of records.
	FileLoader struct {
		Path string
	}
)

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (fl *FileLoader) LoadPendingAlleles(ctx context.Context) ([]structs.AlleleImportRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fl.Path)
	if err != nil {
		return nil, err
	}

	records, err := ParseRecords(data, filepath.Ext(fl.Path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fl.Path, err)
	}
	return records, nil
}

// ParseRecords decodes a list of allele records. ext selects the format;
// anything but .json is read as YAML, which also covers plain JSON.
func ParseRecords(data []byte, ext string) ([]structs.AlleleImportRecord, error) {
	var raw interface{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	if raw == nil {
		return []structs.AlleleImportRecord{}, nil
	}
	if _, isList := raw.([]interface{}); !isList {
		return nil, fmt.Errorf("expected a list of allele records")
	}

	var records []structs.AlleleImportRecord
	if err := targrep.DecodeValue(raw, &records); err != nil {
		return nil, err
	}

	for i := range records {
		if s := strand.CastToStrand(records[i].Strand); s != strand.Undefined {
			records[i].Strand = string(s)
		}
	}
	return records, nil
}
