package core

// Unresolved environment markers. A field keeps its marker when neither the
// stack, an enclosing stage, nor the app default supplies a concrete value.
const (
	UnresolvedAccount = "unknown-account"
	UnresolvedRegion  = "unknown-region"
)

// Environment is the resolved deployment target of a stack: an account and
// a region, each possibly still unresolved.
type Environment struct {
	Account string `json:"account"`
	Region  string `json:"region"`
}

// IsResolved reports whether both fields carry concrete values.
func (e Environment) IsResolved() bool {
	return e.Account != UnresolvedAccount && e.Region != UnresolvedRegion
}

// String returns "account/region" for logs and artifacts.
func (e Environment) String() string {
	return e.Account + "/" + e.Region
}

// resolveEnvironment computes a stack's environment once, at construction.
// Account and region resolve independently: the explicit value wins, then
// the nearest enclosing stage's value, then the app-wide default, then the
// unresolved marker.
func resolveEnvironment(n *Node, explicit *Environment) Environment {
	env := Environment{Account: UnresolvedAccount, Region: UnresolvedRegion}

	if app, ok := n.Root().(*App); ok && app.defaultEnv != nil {
		if app.defaultEnv.Account != "" {
			env.Account = app.defaultEnv.Account
		}
		if app.defaultEnv.Region != "" {
			env.Region = app.defaultEnv.Region
		}
	}

	// Nearest stage wins over the app default; walk outermost-first so the
	// innermost enclosing stage applies last.
	for _, stage := range enclosingStages(n) {
		if stage.env.Account != "" {
			env.Account = stage.env.Account
		}
		if stage.env.Region != "" {
			env.Region = stage.env.Region
		}
	}

	if explicit != nil {
		if explicit.Account != "" {
			env.Account = explicit.Account
		}
		if explicit.Region != "" {
			env.Region = explicit.Region
		}
	}

	return env
}

// enclosingStages returns the stages on the ancestor chain, outermost first.
func enclosingStages(n *Node) []*Stage {
	var stages []*Stage
	for cur := n.parent; cur != nil; cur = cur.parent {
		if s, ok := cur.host.(*Stage); ok {
			stages = append(stages, s)
		}
	}
	for i, j := 0, len(stages)-1; i < j; i, j = i+1, j-1 {
		stages[i], stages[j] = stages[j], stages[i]
	}
	return stages
}

// RequireResolved returns an UnresolvedEnvironmentError when the stack's
// environment still carries an unresolved account or region. Consumers that
// deploy to concrete targets call this as a policy gate.
func RequireResolved(s *Stack) error {
	env := s.Environment()
	if env.Account == UnresolvedAccount {
		return &UnresolvedEnvironmentError{Path: s.Node().Path(), Field: "account"}
	}
	if env.Region == UnresolvedRegion {
		return &UnresolvedEnvironmentError{Path: s.Node().Path(), Field: "region"}
	}
	return nil
}
