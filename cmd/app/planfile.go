package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/atvirokodosprendimai/cabinetry/internal/application"
	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/planning"
	"gopkg.in/yaml.v3"
)

// planFile is the offline input for the plan command. JSON documents are
// accepted as well since they are valid YAML.
type planFile struct {
	Modules   []json.RawMessage `json:"modules"`
	Standards []domain.Standard `json:"standards"`
}

type planInput struct {
	Modules   []domain.Module
	Standards []domain.Standard
}

// yamlToJSON decodes YAML into generic values and re-encodes them as JSON
// so the json tags on domain types stay the single field mapping.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if doc == nil {
		return nil, errors.New("input is empty")
	}
	return json.Marshal(doc)
}

// parsePlanInput decodes a plan document. Each module starts from the base
// template so a file only needs the fields that differ.
func parsePlanInput(data []byte) (planInput, error) {
	raw, err := yamlToJSON(data)
	if err != nil {
		return planInput{}, err
	}
	var file planFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return planInput{}, fmt.Errorf("decode input: %w", err)
	}

	in := planInput{Standards: file.Standards, Modules: make([]domain.Module, 0, len(file.Modules))}
	for i, item := range file.Modules {
		m := planning.DefaultModule()
		if err := json.Unmarshal(item, &m); err != nil {
			return planInput{}, fmt.Errorf("decode module %d: %w", i+1, err)
		}
		m.PositionIndex = i
		in.Modules = append(in.Modules, m)
	}
	return in, nil
}

func loadPlanInput(path string) (planInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planInput{}, err
	}
	return parsePlanInput(data)
}

// loadModuleFile reads a single module document for modules update.
func loadModuleFile(path string, base domain.Module) (domain.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Module{}, err
	}
	raw, err := yamlToJSON(data)
	if err != nil {
		return domain.Module{}, err
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return domain.Module{}, fmt.Errorf("decode module: %w", err)
	}
	return base, nil
}

// computePlan runs the engine without a server or database.
func computePlan(ctx context.Context, in planInput) (domain.Outputs, error) {
	return application.NewPlanService(nil, nil).Compute(ctx, in.Modules, in.Standards)
}
