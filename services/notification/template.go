package notification

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

type TemplateName string

const (
	DepositCredited     TemplateName = "deposit-credited.html"
	WithdrawalRequested TemplateName = "withdrawal-requested.html"
	WithdrawalCompleted TemplateName = "withdrawal-completed.html"
	WithdrawalFailed    TemplateName = "withdrawal-failed.html"
	ConversionCompleted TemplateName = "conversion-completed.html"
)

var subjects = map[TemplateName]string{
	DepositCredited:     "Your wallet has been funded",
	WithdrawalRequested: "Withdrawal request received",
	WithdrawalCompleted: "Withdrawal successful",
	WithdrawalFailed:    "Withdrawal failed",
	ConversionCompleted: "Currency conversion completed",
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// MoneyData is the template data shared by every ledger email.
type MoneyData struct {
	Name      string
	Amount    string
	Currency  string
	Fee       string
	Reference string
	Extra     string
}

// Render returns the subject and HTML body for name.
func Render(name TemplateName, data any) (string, string, error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", name)
	}

	var body strings.Builder
	if err := templates.ExecuteTemplate(&body, string(name), data); err != nil {
		return "", "", fmt.Errorf("error executing template: %v", err)
	}

	return subject, body.String(), nil
}
