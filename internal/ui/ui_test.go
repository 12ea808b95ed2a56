package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("mono")
	assert.Equal(t, "mono", Current().Name)
	assert.Equal(t, "[x]", Current().BoxChecked)
	assert.Equal(t, "notty", Current().Markdown)

	SetTheme("NEON")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("unknown")
	assert.Equal(t, "classic", Current().Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░]   0%", ProgressBar(0, 0, 4))
	assert.Equal(t, "[██░░]  50%", ProgressBar(1, 2, 4))
	assert.Equal(t, "[████] 100%", ProgressBar(3, 3, 4))
}

func TestPanelAndStatus(t *testing.T) {
	var b bytes.Buffer
	Panel(&b, []string{"one", "two"})
	OK(&b, "saved")
	Fail(&b, "broken")
	out := b.String()
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "✔ saved")
	assert.Contains(t, out, "✖ broken")
}
