// Package action is the semantic action registry: a map from action-name
// string to handler, with two disjoint dispatch modes (pre-shift and
// post-reduce) and the reserved "Create AST node <Rule> using <N>"
// template. Keeping the registry string-keyed is deliberate — it is the
// contract with the LL table; this package only precompiles the one
// regular pattern it needs to recognize once per distinct name, the same
// one-time-compile-then-cache idiom vartan uses for its Go-template
// sources in driver/template.go's GenParser (parse once at construction,
// reuse after).
package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

// Mode selects which of the two dispatch tables Resolve consults.
type Mode int

const (
	// PreShift runs before a possibly-shifting row.
	PreShift Mode = iota
	// PostReduce runs when the driver pops its call stack, or accepts.
	PostReduce
)

// Handler is a semantic action body. It reports false to abort the parse
// with a "semantic-soft" error and may return a non-nil error to describe
// why.
type Handler func() (bool, error)

// Warner receives a diagnostic for an unrecognized action name that is
// neither ignored, registered, nor template-shaped: such names emit a
// warning and the parse succeeds anyway.
type Warner func(name string)

var templatePattern = regexp.MustCompile(`^Create AST node (\S+) using (\d+)$`)

type templateEntry struct {
	rule string
	n    int
}

// Registry is the action-name → handler map with its two dispatch tables.
type Registry struct {
	ignored map[string]bool

	preShift   map[string]Handler
	postReduce map[string]Handler

	stack *ast.Stack
	warn  Warner

	templateCache map[string]templateEntry
}

// New returns an empty Registry operating over stack. warn, if non-nil, is
// called for every unrecognized action name (ignored names and recognized
// templates never call it).
func New(stack *ast.Stack, warn Warner) *Registry {
	if warn == nil {
		warn = func(string) {}
	}
	return &Registry{
		ignored:       map[string]bool{},
		preShift:      map[string]Handler{},
		postReduce:    map[string]Handler{},
		stack:         stack,
		warn:          warn,
		templateCache: map[string]templateEntry{},
	}
}

// Ignore marks name as a no-op action in both dispatch modes.
func (r *Registry) Ignore(name string) {
	r.ignored[name] = true
}

// RegisterPreShift installs h as the pre-shift handler for name.
func (r *Registry) RegisterPreShift(name string, h Handler) {
	r.preShift[name] = h
}

// RegisterPostReduce installs h as the post-reduce handler for name.
func (r *Registry) RegisterPostReduce(name string, h Handler) {
	r.postReduce[name] = h
}

// ResolvePreShift dispatches name in pre-shift mode. Unknown non-template
// names emit a warning and succeed (permissive).
func (r *Registry) ResolvePreShift(name string) (bool, error) {
	if name == "" || r.ignored[name] {
		return true, nil
	}
	if h, ok := r.preShift[name]; ok {
		return h()
	}
	r.warn(name)
	return true, nil
}

// ResolvePostReduce dispatches name in post-reduce mode. Unknown names
// trigger the "Create AST node <Rule> using <N>" template if name matches
// it; otherwise they emit a warning and succeed.
func (r *Registry) ResolvePostReduce(name string) (bool, error) {
	if name == "" || r.ignored[name] {
		return true, nil
	}
	if h, ok := r.postReduce[name]; ok {
		return h()
	}
	if entry, ok := r.matchTemplate(name); ok {
		return r.applyTemplate(entry)
	}
	r.warn(name)
	return true, nil
}

func (r *Registry) matchTemplate(name string) (templateEntry, bool) {
	if entry, ok := r.templateCache[name]; ok {
		return entry, true
	}
	m := templatePattern.FindStringSubmatch(name)
	if m == nil {
		return templateEntry{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 0 {
		return templateEntry{}, false
	}
	entry := templateEntry{rule: m[1], n: n}
	r.templateCache[name] = entry
	return entry, true
}

// applyTemplate reduces the top n stack entries into a node named
// entry.rule, then synthesizes and dispatches the follow-up "Synthesis"
// action name.
func (r *Registry) applyTemplate(entry templateEntry) (bool, error) {
	node, err := r.stack.Reduce(entry.rule, entry.n)
	if err != nil {
		return false, fmt.Errorf("apply template %q: %w", entry.rule, err)
	}

	synth := synthesisName(node)
	ok, err := r.ResolvePostReduce(synth)
	if !ok || err != nil {
		return ok, err
	}
	return true, nil
}

// synthesisName builds the follow-up action name: "Synthesis" if the
// reduced node has <=1 non-empty child, else
// "Synthesis <child1.name> <child2.name> …" listing exactly the children
// whose lexeme is non-empty or whose children are non-empty.
func synthesisName(node *ast.Node) string {
	var names []string
	for _, c := range node.Children {
		if c.Lexeme != "" || len(c.Children) > 0 {
			names = append(names, c.Name)
		}
	}
	if len(names) <= 1 {
		return "Synthesis"
	}
	return "Synthesis " + strings.Join(names, " ")
}
