package channel

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	"github.com/smallbiznis/shiftcount/internal/providers/email"
	"github.com/smallbiznis/shiftcount/internal/providers/surface"
	"github.com/smallbiznis/shiftcount/internal/report/render"
)

// SMS opens the native SMS composer with the summary text. The number is
// read from the shift config at send time so edits apply without a restart.
type SMS struct {
	shift    *config.ShiftConfigHolder
	launcher surface.Launcher
}

func NewSMS(shift *config.ShiftConfigHolder, launcher surface.Launcher) *SMS {
	return &SMS{shift: shift, launcher: launcher}
}

func (c *SMS) Name() string        { return NameSMS }
func (c *SMS) Kind() delivery.Kind { return delivery.KindMessage }

func (c *SMS) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	return c.launcher.Launch(ctx, render.SMSURI(c.shift.Get().SMSNumber, d.Message))
}

// Mailto opens the native mail composer with the summary text.
type Mailto struct {
	shift    *config.ShiftConfigHolder
	launcher surface.Launcher
}

func NewMailto(shift *config.ShiftConfigHolder, launcher surface.Launcher) *Mailto {
	return &Mailto{shift: shift, launcher: launcher}
}

func (c *Mailto) Name() string        { return NameMailto }
func (c *Mailto) Kind() delivery.Kind { return delivery.KindMessage }

func (c *Mailto) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	return c.launcher.Launch(ctx, render.MailtoURI(c.shift.Get().EmailTo, d.Message))
}

var emailBodyTemplate = template.Must(template.New("email").Parse(
	`<html><body>{{range .Lines}}<p>{{.}}</p>{{end}}</body></html>`,
))

// Email sends the summary through the configured mail provider.
type Email struct {
	shift    *config.ShiftConfigHolder
	provider email.Provider
}

func NewEmail(shift *config.ShiftConfigHolder, provider email.Provider) *Email {
	return &Email{shift: shift, provider: provider}
}

func (c *Email) Name() string        { return NameEmail }
func (c *Email) Kind() delivery.Kind { return delivery.KindMessage }

func (c *Email) Deliver(ctx context.Context, d *delivery.Dispatch) error {
	var body bytes.Buffer
	err := emailBodyTemplate.Execute(&body, struct{ Lines []string }{
		Lines: strings.Split(d.Message.Body, "\n"),
	})
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	return c.provider.Send(ctx, recipients(c.shift.Get().EmailTo), d.Message.Subject, body.String())
}

func recipients(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
