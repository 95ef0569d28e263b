package core

// AppProps configures the root application.
type AppProps struct {
	// DefaultEnv is the process-wide environment fallback. Fields left empty
	// resolve to the unresolved markers.
	DefaultEnv *Environment
}

// App is the root of a construct tree: the top-level container for stacks
// and stages and the default synthesis entry point.
type App struct {
	node       *Node
	defaultEnv *Environment
}

// NewApp creates an empty root application.
func NewApp(props AppProps) *App {
	app := &App{defaultEnv: props.DefaultEnv}
	// The root carries an empty id and no scope; attach cannot fail here.
	n, _ := attach(nil, "", app, KindApp)
	app.node = n
	return app
}

// Node returns the tree node backing this construct.
func (a *App) Node() *Node { return a.node }
