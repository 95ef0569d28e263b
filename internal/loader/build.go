package loader

import (
	"fmt"

	"github.com/synthkit/cli/internal/core"
)

// Build constructs the app tree described by a blueprint. defaultEnv, when
// non-nil, overrides the blueprint's own app-level environment and becomes
// the process-wide fallback for stacks that inherit nothing else.
func Build(bp *Blueprint, defaultEnv *core.Environment) (*core.App, error) {
	if defaultEnv == nil {
		defaultEnv = bp.Env.environment()
	}
	app := core.NewApp(core.AppProps{DefaultEnv: defaultEnv})

	for _, stageSpec := range bp.Stages {
		stage, err := core.NewStage(app, stageSpec.Name, core.StageProps{
			Env: core.Environment{Account: stageSpec.Env.Account, Region: stageSpec.Env.Region},
		})
		if err != nil {
			return nil, err
		}
		if err := buildStacks(stage, stageSpec.Stacks); err != nil {
			return nil, err
		}
	}

	if err := buildStacks(app, bp.Stacks); err != nil {
		return nil, err
	}
	return app, nil
}

// buildStacks creates sibling stacks under scope and wires their declared
// dependencies. dependsOn names resolve among siblings only, so every edge
// stays inside one isolation boundary by construction.
func buildStacks(scope core.Construct, specs []StackSpec) error {
	built := make(map[string]*core.Stack, len(specs))
	for _, spec := range specs {
		stack, err := core.NewStack(scope, spec.Name, core.StackProps{Env: spec.Env.environment()})
		if err != nil {
			return err
		}
		for _, res := range spec.Resources {
			if _, err := stack.AddResource(res.LogicalID, res.Type, res.Properties); err != nil {
				return err
			}
		}
		built[spec.Name] = stack
	}

	for _, spec := range specs {
		for _, dep := range spec.DependsOn {
			target, ok := built[dep]
			if !ok {
				return fmt.Errorf("stack %q depends on %q, which is not declared in the same scope", spec.Name, dep)
			}
			if err := built[spec.Name].AddDependency(target, fmt.Sprintf("declared dependsOn %s", dep)); err != nil {
				return err
			}
		}
	}
	return nil
}

// environment converts an env spec to a core environment, or nil when the
// spec sets neither field.
func (e EnvSpec) environment() *core.Environment {
	if e.Account == "" && e.Region == "" {
		return nil
	}
	return &core.Environment{Account: e.Account, Region: e.Region}
}
