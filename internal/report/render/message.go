package render

import (
	"fmt"
	"net/url"
	"strings"
)

// Message is the pre-filled text handed to an SMS or email composer.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SummaryMessage embeds locator when the upload returned one; otherwise it
// falls back to a local completion notice.
func SummaryMessage(title string, grandTotal int, locator string) Message {
	var b strings.Builder
	b.WriteString("Inventory Summary:\n")
	fmt.Fprintf(&b, "Total Units: %d\n", grandTotal)

	locator = strings.TrimSpace(locator)
	if locator != "" {
		fmt.Fprintf(&b, "Full report: %s", locator)
	} else {
		b.WriteString("Inventory complete. The full report was generated on this device.")
	}

	return Message{
		Subject: TitleOrDefault(title),
		Body:    b.String(),
	}
}

// EncodeComponent escapes s for use inside a URI query value, with spaces as %20.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SMSURI builds the composer link for the native SMS app.
func SMSURI(number string, msg Message) string {
	return fmt.Sprintf("sms:%s?body=%s", strings.TrimSpace(number), EncodeComponent(msg.Body))
}

// MailtoURI builds the composer link for the native mail app.
func MailtoURI(to string, msg Message) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		EncodeComponent(strings.TrimSpace(to)),
		EncodeComponent(msg.Subject),
		EncodeComponent(msg.Body),
	)
}
