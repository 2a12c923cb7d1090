package service

import (
	"encoding/json"
	"os"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/internal/model"
)

// ModelLoader reads pre-extracted raw entity models produced by external
// language adapters. The document is the JSON form of model.RawModel:
//
//	{
//	  "classes": [
//	    {
//	      "name": "Manager",
//	      "bases": ["Employee"],
//	      "fields": [{"name": "reports", "type": "Employee"}],
//	      "methods": [
//	        {
//	          "name": "notify",
//	          "field_accesses": [{"field": "reports"}],
//	          "calls": [{"receiver": "Mailer", "method": "send"}]
//	        }
//	      ]
//	    }
//	  ]
//	}
//
// This keeps the core's boundary at the abstract model: any front end that
// can emit this document can feed the analyzer, whatever its source language.
type ModelLoader struct{}

// NewModelLoader creates a new raw model loader
func NewModelLoader() *ModelLoader {
	return &ModelLoader{}
}

// LoadFile reads and decodes one raw model document
func (l *ModelLoader) LoadFile(path string) ([]model.RawClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return l.Load(data)
}

// Load decodes a raw model document
func (l *ModelLoader) Load(data []byte) ([]model.RawClass, error) {
	var raw model.RawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewParseError("raw model document", err)
	}
	return raw.Classes, nil
}
