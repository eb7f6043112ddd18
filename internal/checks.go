package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// Check issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// CheckIssue is one finding from the startup configuration checks.
type CheckIssue struct {
	Severity string
	Code     string
	Message  string
}

func (i CheckIssue) String() string {
	return fmt.Sprintf("%s [%s]: %s", i.Severity, i.Code, i.Message)
}

// RunChecks inspects the assembled registry before any request is served.
// Errors are configuration bugs that would fail every matching request
// (dependency cycles); warnings flag parameters that look unresolvable from
// what is statically known.
func RunChecks(reg *Registry) []CheckIssue {
	var issues []CheckIssue
	issues = append(issues, checkStaticCycles(reg)...)
	issues = append(issues, checkUnresolvableParams(reg)...)
	return issues
}

// checkStaticCycles walks the dependency graph: an edge exists from
// dependency A to dependency B when one of A's parameters names B. Context
// data could satisfy the parameter first at runtime, but a declared cycle
// among registered names fails whenever it is exercised, so it is reported
// as an error.
func checkStaticCycles(reg *Registry) []CheckIssue {
	const (
		white = iota
		grey
		black
	)

	color := make(map[string]int, len(reg.deps))
	var issues []CheckIssue

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		color[name] = grey
		path = append(path, name)

		for _, p := range reg.deps[name].params {
			next := p.Name
			if !reg.HasDependency(next) {
				continue
			}
			switch color[next] {
			case white:
				visit(next, path)
			case grey:
				cycle := append(cycleSuffix(path, next), next)
				issues = append(issues, CheckIssue{
					Severity: SeverityError,
					Code:     "loom.E001",
					Message:  fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> ")),
				})
			}
		}

		color[name] = black
	}

	for _, name := range reg.depOrder {
		if color[name] == white {
			visit(name, nil)
		}
	}

	return issues
}

func cycleSuffix(path []string, from string) []string {
	for i, n := range path {
		if n == from {
			return append([]string(nil), path[i:]...)
		}
	}
	return append([]string(nil), path...)
}

var routeParamRe = regexp.MustCompile(`\{([^}]+)\}`)

// routeParamNames extracts the parameter names from a chi route pattern,
// dropping regex constraints: "/blog/{slug}" and "/post/{id:[0-9]+}" yield
// ["slug"] and ["id"].
func routeParamNames(pattern string) []string {
	var names []string
	for _, m := range routeParamRe.FindAllStringSubmatch(pattern, -1) {
		name, _, _ := strings.Cut(m[1], ":")
		if name != "" && name != "*" {
			names = append(names, name)
		}
	}
	return names
}

// checkUnresolvableParams flags required parameters of page callables that
// no statically-known source can serve: not request-typed, not a route
// parameter, not the page form, not a dependency, and not a key any
// in-scope keyed context function or default provides. Unkeyed functions
// may still satisfy them at runtime, so these are warnings.
func checkUnresolvableParams(reg *Registry) []CheckIssue {
	var issues []CheckIssue

	for _, page := range reg.pages {
		known := make(map[string]bool)
		for _, name := range routeParamNames(page.pattern) {
			known[name] = true
		}
		for name := range reg.deps {
			known[name] = true
		}
		for key := range page.defaults {
			known[key] = true
		}
		for _, l := range reg.layoutChain(page.pattern) {
			direct := l.directParent(page.pattern)
			for _, f := range l.funcs {
				if f.key != "" && (f.inherit || direct) {
					known[f.key] = true
				}
			}
		}
		for _, f := range page.funcs {
			if f.key != "" {
				known[f.key] = true
			}
		}

		calls := make([]*Callable, 0, len(page.funcs)+1)
		for _, f := range page.funcs {
			calls = append(calls, f.call)
		}
		if page.view != nil {
			calls = append(calls, page.view)
		}

		for _, call := range calls {
			for _, p := range call.params {
				if p.HasDefault || known[p.Name] {
					continue
				}
				if p.Type == httpRequestType || p.Type == contextIfaceType {
					continue
				}
				if page.formFactory != nil && p.Name == "form" {
					continue
				}
				issues = append(issues, CheckIssue{
					Severity: SeverityWarning,
					Code:     "loom.W001",
					Message: fmt.Sprintf("page %s: parameter %q of %s has no statically known source",
						page.pattern, p.Name, call.name),
				})
			}
		}
	}

	return issues
}
