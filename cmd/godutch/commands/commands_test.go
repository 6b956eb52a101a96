package commands

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs godutch commands against a store in a temp dir.
type cli struct {
	t *testing.T
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("GODUTCH_STORAGE_DRIVER", "file")
	t.Setenv("GODUTCH_STORAGE_DIR", t.TempDir())
	t.Setenv("GODUTCH_AUTH_DERIVATION", "sha256")
	t.Setenv("GODUTCH_AUTH_DEVICE_ID", "test-device")
	t.Setenv("GODUTCH_LOG_LEVEL", "error")
	return &cli{t: t}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "godutch %s\n%s", strings.Join(args, " "), out)
	return out
}

var (
	idPattern   = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)
	codePattern = regexp.MustCompile(`Created group ([A-Z0-9]{5})`)
)

func (c *cli) register(password string) string {
	c.t.Helper()
	out := c.mustRun("register", "-p", password)
	m := idPattern.FindStringSubmatch(out)
	require.Len(c.t, m, 2, "no id in %q", out)
	return m[1]
}

func TestCLI_GroupFlow(t *testing.T) {
	c := newCLI(t)
	alice := c.register("alice")
	bob := c.register("bob")

	out := c.mustRun("group", "create", "-p", "alice")
	m := codePattern.FindStringSubmatch(out)
	require.Len(t, m, 2, "no code in %q", out)
	code := m[1]

	out = c.mustRun("group", "join", strings.ToLower(code), "-p", "bob")
	assert.Contains(t, out, "2 members")

	out = c.mustRun("expense", "add", code, "90", "--with", bob[len(bob)-8:], "--desc", "Groceries", "-p", "alice")
	assert.Contains(t, out, "₹90.00 split 2 ways: ₹45.00 each")

	out = c.mustRun("expense", "list", code, "-p", "bob")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, alice[len(alice)-8:])

	out = c.mustRun("balances", code, "-p", "bob")
	assert.Contains(t, out, "-₹45.00")
	assert.Contains(t, out, "You -> "+alice[len(alice)-8:]+": ₹45.00")

	out = c.mustRun("group", "list", "-p", "bob")
	assert.Equal(t, code+"\n", out)

	_, err := c.run("group", "delete", code, "-p", "bob")
	assert.Error(t, err)

	c.mustRun("group", "delete", code, "-p", "alice")
	out = c.mustRun("group", "list", "-p", "alice")
	assert.Contains(t, out, "not in any group")
}

func TestCLI_AuthErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("login", "-p", "nobody")
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = c.run("login")
	assert.ErrorIs(t, err, errNoPassword)

	c.register("alice")
	_, err = c.run("register", "-p", "alice")
	assert.ErrorContains(t, err, "already registered")

	out := c.mustRun("login", "-p", "alice")
	assert.Contains(t, out, "Logged in as")
}

func TestCLI_NonMember(t *testing.T) {
	c := newCLI(t)
	c.register("alice")
	c.register("eve")

	out := c.mustRun("group", "create", "-p", "alice")
	code := codePattern.FindStringSubmatch(out)[1]

	_, err := c.run("balances", code, "-p", "eve")
	assert.ErrorContains(t, err, "not a member")

	_, err = c.run("group", "join", "ZZZZZ", "-p", "eve")
	assert.ErrorContains(t, err, "group not found")
}
