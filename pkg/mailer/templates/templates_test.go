package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/pkg/mailer/templates"
)

func Test_Render_LoanCreated(t *testing.T) {
	brand := templates.Brand{AppName: "Biblioteca Central", SupportURL: "https://biblioteca.dev/ajuda"}
	data := templates.NewLoanCreatedData(brand, "Bruno", "bruno@biblioteca.dev", 12, "Dom Casmurro",
		templates.WithAuthor("Machado de Assis"),
		templates.LoanDates(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)),
	)

	subject, text, html, err := templates.Render(templates.LoanCreated, data)

	require.NoError(t, err)
	assert.Equal(t, `Biblioteca Central: empréstimo de "Dom Casmurro" confirmado`, subject)
	assert.Contains(t, text, "Olá Bruno")
	assert.Contains(t, text, "#12")
	assert.Contains(t, text, "Dom Casmurro (Machado de Assis)")
	assert.Contains(t, text, "Devolver até: 29/06/2025 (14 dias)")
	assert.Contains(t, text, "https://biblioteca.dev/ajuda")
	assert.Contains(t, html, "<strong>29/06/2025</strong>")
	assert.Equal(t, float64(14), data["DaysToDue"])
}

func Test_Render_Defaults(t *testing.T) {
	data := templates.NewLoanCreatedData(templates.Brand{}, "", "x@y.z", 1, "<Livro>")

	subject, text, html, err := templates.Render(templates.LoanCreated, data)

	require.NoError(t, err)
	assert.Contains(t, subject, "Biblioteca:")
	assert.Contains(t, text, "Olá leitor")
	assert.Contains(t, html, "&lt;Livro&gt;")
}

func Test_Render_UnknownTemplate(t *testing.T) {
	_, _, _, err := templates.Render("missing", nil)

	assert.Error(t, err)
}
