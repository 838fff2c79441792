package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTraceMail(t *testing.T) {
	body, err := RenderTraceMail(TraceMail{
		ProductName: "Turmeric powder",
		LotNumber:   "L-01",
		BatchCode:   "TMR-20240501-ABCDEF",
		Message:     "<script>x</script>",
		TraceURL:    "https://trace.example.com/trace/TMR-20240501-ABCDEF",
	})
	require.NoError(t, err)

	assert.Contains(t, body, `href="https://trace.example.com/trace/TMR-20240501-ABCDEF"`)
	assert.Contains(t, body, "(lot L-01)")
	assert.NotContains(t, body, "<script>")
}

func TestSendMailWithoutHost(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	assert.ErrorIs(t, SendMail("a@example.com", "s", "b"), ErrNotConfigured)
}
