package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const styles = `
      body { font-family: system-ui, sans-serif; margin: 0; background: #fafafa; color: #222; }
      .shell { max-width: 760px; margin: 0 auto; padding: 24px; }
      .hero { text-align: center; }
      .hero h1 { margin-bottom: 4px; }
      .host h1 { color: #ff4b4b; }
      .audience h1 { color: #1e90ff; }
      .panel { background: #fff; border-radius: 12px; padding: 16px 20px; margin: 16px 0; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
      form { display: grid; gap: 8px; }
      input, button { font-size: 16px; padding: 8px 10px; }
      button.primary { background: #ff4b4b; color: #fff; border: 0; border-radius: 8px; }
      button.secondary { background: #1e90ff; color: #fff; border: 0; border-radius: 8px; }
      .result { min-height: 1.4em; margin-top: 8px; }
      .error { color: #c92a2a; }
      .warning { color: #e67700; }
      .timer { font-size: 32px; text-align: center; font-variant-numeric: tabular-nums; }
      table { width: 100%; border-collapse: collapse; }
      td, th { text-align: left; padding: 4px 6px; border-bottom: 1px solid #eee; }
      img.chart { max-width: 100%; }
`

// page wraps body in the shared document shell. title is escaped, body is
// written as is.
func page(ctx context.Context, w io.Writer, title, class string, body templ.Component) error {
	if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+templ.EscapeString(title)+`</title>
    <style>`+styles+`</style>
  </head>
  <body class="`+templ.EscapeString(class)+`">
    <main class="shell">
`); err != nil {
		return err
	}
	if err := body.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, `
    </main>
  </body>
</html>`)
	return err
}

func attr(value string) string {
	return templ.EscapeString(value)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ModePicker is shown when the mode query parameter is neither host nor
// audience.
func ModePicker() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(ctx, w, "QuizItUp", "", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `      <section class="panel">
        <p class="warning">Please choose a mode: host or audience.</p>
        <p><a href="/?mode=host">Host a question</a> or <a href="/collect?mode=host">open data collection</a>.</p>
      </section>`)
			return err
		}))
	})
}
