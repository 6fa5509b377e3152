package util

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// InitCELProgram compiles a CEL expression against the given
// environment options and returns the evaluable program.
func InitCELProgram(expression string, options ...cel.EnvOption) (*cel.Program, error) {
	env, err := cel.NewEnv(options...)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling filter: %w", issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building filter program: %w", err)
	}
	return &program, nil
}
