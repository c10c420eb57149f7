// Package channel implements the report delivery channels and builds the
// ordered list named by DELIVERY_CHANNELS.
package channel

import (
	"errors"
	"fmt"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	"github.com/smallbiznis/shiftcount/internal/providers/email"
	"github.com/smallbiznis/shiftcount/internal/providers/pdf"
	"github.com/smallbiznis/shiftcount/internal/providers/surface"
	"github.com/smallbiznis/shiftcount/internal/report/render"
	"github.com/smallbiznis/shiftcount/pkg/httpclient"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	NameUpload   = "upload"
	NameDocument = "document"
	NamePDF      = "pdf"
	NameCSV      = "csv"
	NameSMS      = "sms"
	NameMailto   = "mailto"
	NameEmail    = "email"
)

var ErrMessageBeforeRemote = errors.New("message_channel_before_remote")

var Module = fx.Module("delivery.channel",
	fx.Provide(
		render.NewHTMLRenderer,
		Build,
	),
)

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Shift    *config.ShiftConfigHolder
	Renderer *render.HTMLRenderer
	Printer  surface.Printer
	Exporter surface.Exporter
	Launcher surface.Launcher
	PDF      pdf.Provider
	Email    email.Provider
}

// Build returns the configured channels in configuration order.
func Build(p Params) (delivery.Channels, error) {
	names := p.Config.Delivery.Channels
	if len(names) == 0 {
		names = config.DefaultChannels
	}

	seen := make(map[string]bool, len(names))
	channels := make(delivery.Channels, 0, len(names))
	firstMessage := ""
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		var ch delivery.Channel
		switch name {
		case NameUpload:
			ch = NewUpload(p.Config.Delivery.ReportURL, httpclient.New(p.Config.Delivery.Timeout))
		case NameDocument:
			ch = NewDocument(p.Renderer, p.Printer)
		case NamePDF:
			ch = NewPDF(p.PDF, p.Exporter)
		case NameCSV:
			ch = NewCSV(p.Exporter)
		case NameSMS:
			ch = NewSMS(p.Shift, p.Launcher)
		case NameMailto:
			ch = NewMailto(p.Shift, p.Launcher)
		case NameEmail:
			ch = NewEmail(p.Shift, p.Email)
		default:
			return nil, fmt.Errorf("unknown delivery channel %q", name)
		}
		// The message is composed once, before the first message channel,
		// so a remote locator must already be known by then.
		switch ch.Kind() {
		case delivery.KindMessage:
			if firstMessage == "" {
				firstMessage = name
			}
		case delivery.KindRemote:
			if firstMessage != "" {
				return nil, fmt.Errorf("%w: %q runs after %q", ErrMessageBeforeRemote, name, firstMessage)
			}
		}
		channels = append(channels, ch)
	}

	p.Log.Named("delivery.channel").Info("delivery channels configured", zap.Strings("channels", names))
	return channels, nil
}
