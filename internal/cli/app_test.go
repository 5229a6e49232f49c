package cli

import (
	"bytes"
	"strings"
	"testing"

	"task-hunter/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Directory:    t.TempDir(),
		DatabaseName: "test.db",
		Editor:       "true",
	}
}

// run executes a single CLI invocation against a fresh command tree, the way
// a shell would, and returns what was printed.
func run(t *testing.T, cfg *config.Config, in string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(cfg, &out, strings.NewReader(in))
	root.cmd.SetArgs(args)
	root.cmd.SetOut(&out)
	root.cmd.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestApp_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "should accept a lowercase y", input: "y\n", expected: true},
		{name: "should accept an uppercase Y", input: "Y\n", expected: true},
		{name: "should reject n", input: "n\n", expected: false},
		{name: "should reject a full yes", input: "yes\n", expected: false},
		{name: "should reject an empty answer", input: "\n", expected: false},
		{name: "should reject closed input", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			app := NewApp(newTestConfig(t), &out, strings.NewReader(tt.input))

			assert.Equal(t, tt.expected, app.confirm("Sure? [yN]"))
			assert.Contains(t, out.String(), "Sure? [yN]")
		})
	}
}

func TestApp_SilentMode(t *testing.T) {
	t.Run("should suppress informational output", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Silent = true
		var out bytes.Buffer
		app := NewApp(cfg, &out, strings.NewReader(""))

		app.printf("hello %s\n", "world")
		app.println("more output")

		assert.Empty(t, out.String())
	})

	t.Run("should still show confirmation prompts", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Silent = true
		var out bytes.Buffer
		app := NewApp(cfg, &out, strings.NewReader("y\n"))

		app.confirm("Sure? [yN]")

		assert.Contains(t, out.String(), "Sure? [yN]")
	})
}

func TestCLI_Lifecycle(t *testing.T) {
	t.Run("should track a task from init through finish", func(t *testing.T) {
		cfg := newTestConfig(t)

		out, err := run(t, cfg, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "THunter initialized successfully!")

		out, err = run(t, cfg, "", "create", "write", "the", "report", "-e", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "NAME: write the report")
		assert.Contains(t, out, "ESTIMATE: 2")
		assert.Contains(t, out, "STATUS: TODO")

		out, err = run(t, cfg, "", "workon", "write")
		require.NoError(t, err)
		assert.Contains(t, out, "write the report")

		out, err = run(t, cfg, "", "stop")
		require.NoError(t, err)
		assert.Contains(t, out, "Stopped working on")

		out, err = run(t, cfg, "", "finish", "write")
		require.NoError(t, err)
		assert.Contains(t, out, "Finished")

		out, err = run(t, cfg, "", "ls", "--finished")
		require.NoError(t, err)
		assert.Contains(t, out, "write the report")
		assert.Contains(t, out, "Finished")
	})

	t.Run("should report a missing database", func(t *testing.T) {
		cfg := newTestConfig(t)

		_, err := run(t, cfg, "", "ls")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "thunter init")
	})

	t.Run("should keep the prompt on silent rm", func(t *testing.T) {
		cfg := newTestConfig(t)
		_, err := run(t, cfg, "", "init")
		require.NoError(t, err)
		_, err = run(t, cfg, "", "create", "doomed", "task")
		require.NoError(t, err)

		out, err := run(t, cfg, "n\n", "-s", "rm", "doomed")
		require.NoError(t, err)
		assert.Contains(t, out, "Are you sure")

		// The silent flag sticks to the shared config; clear it the way a
		// fresh process would start.
		cfg.Silent = false
		out, err = run(t, cfg, "", "rm", "doomed", "--force")
		require.NoError(t, err)
		assert.Contains(t, out, "Removed")
	})

	t.Run("should refuse re-initialization without confirmation", func(t *testing.T) {
		cfg := newTestConfig(t)
		_, err := run(t, cfg, "", "init")
		require.NoError(t, err)
		_, err = run(t, cfg, "", "create", "precious", "task")
		require.NoError(t, err)

		out, err := run(t, cfg, "n\n", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Aborting re-initialization")

		out, err = run(t, cfg, "", "ls", "-a")
		require.NoError(t, err)
		assert.Contains(t, out, "precious task")
	})
}
