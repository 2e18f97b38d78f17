package builder

import (
	"go.uber.org/fx"

	"github.com/speedisha/speedisha/internal/builder/render"
	"github.com/speedisha/speedisha/internal/builder/service"
	"github.com/speedisha/speedisha/internal/providers/docx"
	"github.com/speedisha/speedisha/internal/providers/pdf"
)

var Module = fx.Module("builder",
	fx.Provide(render.NewHTMLRenderer),
	fx.Provide(pdf.NewExporter),
	fx.Provide(docx.NewExporter),
	fx.Provide(service.NewService),
)
