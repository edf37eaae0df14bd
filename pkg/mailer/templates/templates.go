package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names. Each name has <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
const (
	LoanCreated = "loan_created"
)

// EmailData holds the fields available to every template.
type EmailData struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Type  string `json:"Type"`

	AppName    string `json:"AppName"`
	LogoURL    string `json:"LogoURL"`
	SupportURL string `json:"SupportURL"`

	LoanID      int64  `json:"LoanID"`
	BookTitle   string `json:"BookTitle"`
	BookAuthor  string `json:"BookAuthor"`
	LoanDate    string `json:"LoanDate"`
	DueDate     string `json:"DueDate"`
	DaysToDue   int    `json:"DaysToDue"`
	GeneratedAt string `json:"GeneratedAt"`
}

// ToMap flattens d into the map carried by mailer.EmailJob. Numbers come back as float64.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// fallback returns def when value is nil, blank or the zero value: {{ .Name | default "leitor" }}
func fallback(def any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return def
	}
	return value
}

// days spells out a day count: "hoje", "1 dia", "14 dias".
func days(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		n = int64(x)
	default:
		return ""
	}
	switch n {
	case 0:
		return "hoje"
	case 1, -1:
		return fmt.Sprintf("%d dia", n)
	default:
		return fmt.Sprintf("%d dias", n)
	}
}

var funcs = map[string]any{
	"now":     func() time.Time { return time.Now().UTC() },
	"upper":   strings.ToUpper,
	"default": fallback,
	"days":    days,
}

// Both sets are parsed once from FS; a broken template fails at startup.
var (
	textSet = texttpl.Must(texttpl.New("").Funcs(funcs).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("").Funcs(funcs).ParseFS(FS, "*.html.tmpl"))
)

func execute(file string, html bool, data any) (string, error) {
	var (
		buf   bytes.Buffer
		err   error
		found bool
	)
	if html {
		if found = htmlSet.Lookup(file) != nil; found {
			err = htmlSet.ExecuteTemplate(&buf, file, data)
		}
	} else {
		if found = textSet.Lookup(file) != nil; found {
			err = textSet.ExecuteTemplate(&buf, file, data)
		}
	}
	if !found {
		return "", fmt.Errorf("template %q not found", file)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}
	return buf.String(), nil
}

// Render produces subject, plain text and html bodies for the template name.
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = execute(name+".subject.tmpl", false, data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(name+".text.tmpl", false, data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(name+".html.tmpl", true, data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
