package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/pkg/mailer"
)

func Test_EmailJob_Recipient(t *testing.T) {
	assert.Equal(t, "a@b.c", mailer.EmailJob{To: " a@b.c "}.Recipient())
	assert.Equal(t, "d@e.f", mailer.EmailJob{Data: map[string]any{"Email": "d@e.f"}}.Recipient())
	assert.Equal(t, "a@b.c", mailer.EmailJob{To: "a@b.c", Data: map[string]any{"Email": "d@e.f"}}.Recipient())
	assert.Empty(t, mailer.EmailJob{}.Recipient())
}

func Test_EmailJob_Content(t *testing.T) {
	subject, text, html, err := mailer.EmailJob{Subject: "Oi", HTML: "<p>oi</p>"}.Content()
	require.NoError(t, err)
	assert.Equal(t, "Oi", subject)
	assert.Empty(t, text)
	assert.Equal(t, "<p>oi</p>", html)

	_, _, _, err = mailer.EmailJob{Subject: "Oi"}.Content()
	assert.ErrorIs(t, err, mailer.ErrNoContent)
}
