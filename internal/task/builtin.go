package task

// Builtin returns the default catalog: the local verification pipeline for a
// uv-managed Python service. A crank.yaml pipeline file replaces this
// catalog entirely when present.
func Builtin() *Registry {
	r := NewRegistry()
	for _, t := range builtinTargets() {
		// Names are compile-time constants here; registration cannot fail.
		_ = r.Register(t)
	}
	return r
}

func builtinTargets() []*Target {
	uv := func(args ...string) Command {
		return Command{Exec: "uv", Args: args}
	}
	return []*Target{
		{
			Name:     "install",
			Desc:     "Install production dependencies",
			Commands: []Command{uv("sync", "--frozen", "--no-dev")},
			Phony:    true,
		},
		{
			Name: "dev-install",
			Desc: "Install all dependencies and git hooks",
			Commands: []Command{
				uv("sync", "--frozen"),
				uv("run", "pre-commit", "install"),
			},
			Phony: true,
		},
		{
			Name: "format",
			Desc: "Format code, applying fixes",
			Commands: []Command{
				uv("run", "ruff", "format", "."),
				uv("run", "ruff", "check", "--fix", "."),
			},
			Phony: true,
		},
		{
			Name: "lint",
			Desc: "Run linter checks without modifying files",
			Commands: []Command{
				uv("run", "ruff", "format", "--check", "."),
				uv("run", "ruff", "check", "."),
			},
			Phony: true,
		},
		{
			Name:     "type-check",
			Desc:     "Run static type checker",
			Commands: []Command{uv("run", "mypy", "src")},
			Phony:    true,
		},
		{
			Name:     "security",
			Desc:     "Run static security scanner",
			Commands: []Command{uv("run", "bandit", "-c", "pyproject.toml", "-r", "src")},
			Phony:    true,
		},
		{
			Name:     "test",
			Desc:     "Run the full test suite",
			Commands: []Command{uv("run", "pytest")},
			Phony:    true,
		},
		{
			Name:     "test-unit",
			Desc:     "Run unit tests",
			Commands: []Command{uv("run", "pytest", "-m", "unit")},
			Phony:    true,
		},
		{
			Name:     "test-integration",
			Desc:     "Run integration tests",
			Commands: []Command{uv("run", "pytest", "-m", "integration")},
			Phony:    true,
		},
		{
			Name:     "test-e2e",
			Desc:     "Run end-to-end tests",
			Commands: []Command{uv("run", "pytest", "-m", "e2e")},
			Phony:    true,
		},
		{
			Name:     "test-background",
			Desc:     "Run background-task tests",
			Commands: []Command{uv("run", "pytest", "-m", "background")},
			Phony:    true,
		},
		{
			Name: "test-cov",
			Desc: "Run tests with coverage reports",
			Commands: []Command{
				uv("run", "pytest", "--cov=src", "--cov-report=term-missing", "--cov-report=html"),
			},
			Phony: true,
		},
		{
			Name:     "docker-build",
			Desc:     "Build the container image",
			Commands: []Command{{Exec: "docker", Args: []string{"build", "-t", "agent-server", "."}}},
			Phony:    true,
		},
		{
			Name: "docker-test",
			Desc: "Run e2e tests against a containerized auth service",
			Commands: []Command{
				{Exec: "docker", Args: []string{"compose", "up", "-d", "--wait", "keycloak"}},
				uv("run", "pytest", "-m", "e2e"),
			},
			// Teardown is unconditional: it runs whether or not the tests passed.
			Cleanup: []Command{
				{Exec: "docker", Args: []string{"compose", "down", "-v"}},
			},
			Phony: true,
		},
		{
			Name:  "ci-check",
			Desc:  "Run the full local verification pipeline",
			Deps:  []string{"format", "lint", "type-check", "security", "test"},
			Phony: true,
		},
		{
			Name: "clean",
			Desc: "Remove caches and build artifacts",
			Commands: []Command{
				// rm -rf succeeds when the paths are already absent.
				{Exec: "rm", Args: []string{
					"-rf",
					".pytest_cache",
					".mypy_cache",
					".ruff_cache",
					".coverage",
					"htmlcov",
					"dist",
				}},
				{Exec: "find", Args: []string{".", "-type", "d", "-name", "__pycache__", "-exec", "rm", "-rf", "{}", "+"}},
			},
			Phony: true,
		},
	}
}
