package fileserver

import (
	"bytes"
	"html/template"

	"concurrent-fileserver/fileserver/domain"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width,initial-scale=1"/>
    <title>Index of {{.Path}}</title>
    <style>
      body { margin: 0; padding: 2rem; font-family: system-ui, sans-serif; background: #0b1020; color: #e7ecf3; }
      .wrap { max-width: 960px; margin: 0 auto; }
      h1 { font-size: 1.2rem; color: #9fb0c3; }
      table { width: 100%; border-collapse: collapse; }
      th, td { padding: .75rem .9rem; border-bottom: 1px solid rgba(255,255,255,.08); }
      thead th { text-align: left; color: #9fb0c3; }
      td.num, th.num { text-align: right; width: 140px; }
      a { color: #5aa9ff; text-decoration: none; font-weight: 600; word-break: break-all; }
    </style>
  </head>
  <body>
    <div class="wrap">
      <h1>Index of <code>{{.Path}}</code></h1>
      <table>
        <thead>
          <tr><th>File / Directory</th><th class="num">Hits</th></tr>
        </thead>
        <tbody>
{{- if .Parent}}
          <tr><td><a href="{{.Parent}}">⬆ Parent directory</a></td><td class='num'>–</td></tr>
{{- end}}
{{- range .Entries}}
          <tr><td><a href="{{.Href}}">{{.Name}}</a></td><td class='num'>{{.Hits}}</td></tr>
{{- else}}
          <tr><td>(empty)</td><td class='num'>0</td></tr>
{{- end}}
        </tbody>
      </table>
    </div>
  </body>
</html>
`))

type listingView struct {
	Path    string
	Parent  string
	Entries []domain.ListingEntry
}

func renderListing(res domain.Resource) ([]byte, error) {
	var buf bytes.Buffer
	err := listingTemplate.Execute(&buf, listingView{
		Path:    string(res.Key),
		Parent:  res.Parent,
		Entries: res.Entries,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
