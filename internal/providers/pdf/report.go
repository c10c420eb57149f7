package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/shiftcount/internal/report/render"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReport(ctx context.Context, input render.RenderInput) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(15,
		text.NewCol(12, render.TitleOrDefault(input.Title), props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	if !input.GeneratedAt.IsZero() {
		m.AddRow(8,
			text.NewCol(12, "Generated "+input.GeneratedAt.Format("2006-01-02 15:04"), props.Text{Size: 9}),
		)
	}

	header := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center}
	m.AddRow(10,
		text.NewCol(4, "Item", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Left}),
		text.NewCol(2, "Singles", header),
		text.NewCol(2, "Cases", header),
		text.NewCol(2, "Pack", header),
		text.NewCol(2, "Total Units", header),
	)

	cell := props.Text{Size: 10, Align: align.Center}
	for _, row := range input.Report.Rows {
		m.AddRow(8,
			text.NewCol(4, row.Name, props.Text{Size: 10, Align: align.Left}),
			text.NewCol(2, fmt.Sprintf("%d", row.Singles), cell),
			text.NewCol(2, fmt.Sprintf("%d", row.Cases), cell),
			text.NewCol(2, fmt.Sprintf("%d", row.Pack), cell),
			text.NewCol(2, fmt.Sprintf("%d", row.Total), props.Text{Size: 10, Align: align.Center, Style: fontstyle.Bold}),
		)
	}

	m.AddRow(12,
		text.NewCol(4, "Grand Total", props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}),
		col.New(6),
		text.NewCol(2, fmt.Sprintf("%d", input.Report.GrandTotal), props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   3,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
