package notify

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Catalog run {{.StartedAt.Format "2006-01-02 15:04"}}</h2>
  <p>{{.Records}} records, {{.Eligible}} eligible. Took {{.Took}}.</p>
  <p>Cache: {{.Fetch.Checked}} checked, {{.Fetch.Hits}} hits, {{.Fetch.Fetched}} fetched, {{.Fetch.Failed}} failed.</p>
  {{if .CategoryRows}}
  <h3>Categories</h3>
  <table>
    {{range .CategoryRows}}<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>{{end}}
  </table>
  {{end}}
  {{if .CuratedRows}}
  <h3>Curated sections</h3>
  <table>
    {{range .CuratedRows}}<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>{{end}}
  </table>
  {{end}}
  <h3>Regions</h3>
  <ul>
    {{range .Regions}}<li>{{.Region}}: {{if .OK}}{{.Cards}} cards{{else}}<strong>skipped</strong> ({{.Err}}){{end}}</li>{{end}}
  </ul>
  {{if not .DocumentChanged}}<p>The page was already up to date.</p>{{end}}
  <p style="color: #888;">Page digest {{.DocumentDigest}}</p>
</body>
</html>
`
