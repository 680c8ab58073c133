package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand(t *testing.T) {
	cmd := newRulesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.RunE(cmd, nil))

	listing := out.String()
	assert.Contains(t, listing, "no-window-prefix")
	assert.Contains(t, listing, "no-eval")
	assert.Contains(t, listing, "recommended")
}
