package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	assert.NotNil(t, tmpl.Lookup("dashboard.html"))
	assert.NotNil(t, tmpl.Lookup("not_found.html"))
}

func TestTemplates_NotFoundEscapes(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "not_found.html", map[string]string{"Message": "<b>Export</b>"}))
	assert.Contains(t, buf.String(), "&lt;b&gt;Export&lt;/b&gt;")
}

func TestStatic_HasStylesheet(t *testing.T) {
	_, err := fs.Stat(Static(), "dashboard.css")
	assert.NoError(t, err)
}
