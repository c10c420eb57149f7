package providers

import (
	"github.com/smallbiznis/shiftcount/internal/providers/email"
	"github.com/smallbiznis/shiftcount/internal/providers/pdf"
	"github.com/smallbiznis/shiftcount/internal/providers/surface"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
	surface.Module,
)
