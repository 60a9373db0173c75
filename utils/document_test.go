package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResumeTextPlain(t *testing.T) {
	text, err := ExtractResumeText([]byte("Jane Doe\nGo developer"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractResumeTextUnknownExtensionTreatedAsText(t *testing.T) {
	text, err := ExtractResumeText([]byte("plain content"), "resume")
	require.NoError(t, err)
	assert.Equal(t, "plain content", text)
}

func TestExtractResumeTextLegacyDoc(t *testing.T) {
	_, err := ExtractResumeText([]byte("binary blob"), "resume.doc")
	assert.Error(t, err)
}

func TestExtractResumeTextCorruptPDF(t *testing.T) {
	_, err := ExtractResumeText([]byte("not a pdf"), "resume.pdf")
	assert.Error(t, err)
}

func TestExtractResumeTextCorruptDocx(t *testing.T) {
	_, err := ExtractResumeText([]byte("not a zip archive"), "resume.docx")
	assert.Error(t, err)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("resume.txt"))
	assert.True(t, IsSupportedFormat("resume.PDF"))
	assert.True(t, IsSupportedFormat("resume.docx"))
	assert.True(t, IsSupportedFormat("resume.md"))
	assert.True(t, IsSupportedFormat("resume"))
	assert.False(t, IsSupportedFormat("resume.doc"))
	assert.False(t, IsSupportedFormat("resume.png"))
}
