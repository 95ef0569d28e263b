// Package loader parses declarative blueprint files into construct trees.
// A blueprint is a CUE document describing an app: its stages, stacks,
// resources, and explicit dependencies.
package loader

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"

	serrors "github.com/synthkit/cli/internal/errors"
)

// EnvSpec is an optional account/region pair on an app, stage, or stack.
type EnvSpec struct {
	Account string `json:"account"`
	Region  string `json:"region"`
}

// ResourceSpec declares one resource in a stack's resource graph.
type ResourceSpec struct {
	LogicalID  string
	Type       string
	Properties map[string]any
}

// StackSpec declares a deployment unit.
type StackSpec struct {
	Name      string
	Env       EnvSpec
	DependsOn []string
	Resources []ResourceSpec
}

// StageSpec declares an isolation stage and the stacks beneath it.
type StageSpec struct {
	Name   string
	Env    EnvSpec
	Stacks []StackSpec
}

// Blueprint is the parsed form of a blueprint document. Field order in the
// CUE source is preserved so synthesis output stays deterministic.
type Blueprint struct {
	Name   string
	Env    EnvSpec
	Stages []StageSpec
	Stacks []StackSpec
}

// LoadBlueprint reads and parses a blueprint file.
func LoadBlueprint(cueCtx *cue.Context, path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serrors.NewNotFoundError(
				fmt.Sprintf("blueprint file %s does not exist", path), path,
				"pass the blueprint path as the first argument")
		}
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	return ParseBlueprint(cueCtx, data, path)
}

// ParseBlueprint compiles blueprint source and extracts the app description.
func ParseBlueprint(cueCtx *cue.Context, data []byte, filename string) (*Blueprint, error) {
	v := cueCtx.CompileBytes(data, cue.Filename(filename))
	if v.Err() != nil {
		return nil, fmt.Errorf("compiling blueprint %s: %w", filename, v.Err())
	}

	appVal := v.LookupPath(cue.ParsePath("app"))
	if !appVal.Exists() {
		return nil, fmt.Errorf("blueprint %s has no top-level \"app\" field", filename)
	}

	bp := &Blueprint{}
	if nameVal := appVal.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, fmt.Errorf("blueprint app.name: %w", err)
		}
		bp.Name = name
	}
	env, err := parseEnv(appVal)
	if err != nil {
		return nil, err
	}
	bp.Env = env

	if stagesVal := appVal.LookupPath(cue.ParsePath("stages")); stagesVal.Exists() {
		iter, err := stagesVal.Fields()
		if err != nil {
			return nil, fmt.Errorf("blueprint stages: %w", err)
		}
		for iter.Next() {
			stage, err := parseStage(iter.Selector().Unquoted(), iter.Value())
			if err != nil {
				return nil, err
			}
			bp.Stages = append(bp.Stages, stage)
		}
	}

	stacks, err := parseStacks(appVal)
	if err != nil {
		return nil, err
	}
	bp.Stacks = stacks

	return bp, nil
}

func parseStage(name string, v cue.Value) (StageSpec, error) {
	env, err := parseEnv(v)
	if err != nil {
		return StageSpec{}, fmt.Errorf("stage %q: %w", name, err)
	}
	stacks, err := parseStacks(v)
	if err != nil {
		return StageSpec{}, fmt.Errorf("stage %q: %w", name, err)
	}
	return StageSpec{Name: name, Env: env, Stacks: stacks}, nil
}

func parseStacks(v cue.Value) ([]StackSpec, error) {
	stacksVal := v.LookupPath(cue.ParsePath("stacks"))
	if !stacksVal.Exists() {
		return nil, nil
	}
	iter, err := stacksVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("stacks: %w", err)
	}

	var stacks []StackSpec
	for iter.Next() {
		stack, err := parseStack(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stack)
	}
	return stacks, nil
}

func parseStack(name string, v cue.Value) (StackSpec, error) {
	env, err := parseEnv(v)
	if err != nil {
		return StackSpec{}, fmt.Errorf("stack %q: %w", name, err)
	}

	spec := StackSpec{Name: name, Env: env}

	if depsVal := v.LookupPath(cue.ParsePath("dependsOn")); depsVal.Exists() {
		if err := depsVal.Decode(&spec.DependsOn); err != nil {
			return StackSpec{}, fmt.Errorf("stack %q dependsOn: %w", name, err)
		}
	}

	if resVal := v.LookupPath(cue.ParsePath("resources")); resVal.Exists() {
		iter, err := resVal.Fields()
		if err != nil {
			return StackSpec{}, fmt.Errorf("stack %q resources: %w", name, err)
		}
		for iter.Next() {
			res, err := parseResource(iter.Selector().Unquoted(), iter.Value())
			if err != nil {
				return StackSpec{}, fmt.Errorf("stack %q: %w", name, err)
			}
			spec.Resources = append(spec.Resources, res)
		}
	}

	return spec, nil
}

func parseResource(logicalID string, v cue.Value) (ResourceSpec, error) {
	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return ResourceSpec{}, fmt.Errorf("resource %q has no type", logicalID)
	}
	typ, err := typeVal.String()
	if err != nil {
		return ResourceSpec{}, fmt.Errorf("resource %q type: %w", logicalID, err)
	}

	spec := ResourceSpec{LogicalID: logicalID, Type: typ}
	if propsVal := v.LookupPath(cue.ParsePath("properties")); propsVal.Exists() {
		if err := propsVal.Decode(&spec.Properties); err != nil {
			return ResourceSpec{}, fmt.Errorf("resource %q properties: %w", logicalID, err)
		}
	}
	return spec, nil
}

func parseEnv(v cue.Value) (EnvSpec, error) {
	var env EnvSpec
	if accVal := v.LookupPath(cue.ParsePath("account")); accVal.Exists() {
		acc, err := accVal.String()
		if err != nil {
			return env, fmt.Errorf("account: %w", err)
		}
		env.Account = acc
	}
	if regVal := v.LookupPath(cue.ParsePath("region")); regVal.Exists() {
		reg, err := regVal.String()
		if err != nil {
			return env, fmt.Errorf("region: %w", err)
		}
		env.Region = reg
	}
	return env, nil
}
