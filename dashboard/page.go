package dashboard

import (
	"html/template"
	"io"
)

// Title is shown in the page header and the browser tab.
const Title = "Company Intelligence Dashboard"

type pageData struct {
	Title     string
	Companies []*SidebarEntry
	View      View
	URL       string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
</head>
<body>
<div class="container-fluid p-4">
  <h1 class="text-primary text-center mb-4">{{.Title}}</h1>
  <div class="card mb-4"><div class="card-body">
    <form method="post" action="/companies" class="input-group">
      <input id="company-url" name="url" type="url" class="form-control me-2" value="{{.URL}}"
             placeholder="Enter company URL (e.g., https://www.company.com)...">
      <button id="add-company-btn" type="submit" class="btn btn-primary ms-2">Add Company</button>
    </form>
    <div id="error-message" class="text-danger mt-2">{{.View.Error}}</div>
  </div></div>
  <div class="row">
    <div class="col-3">
      <div class="card">
        <div class="card-header">Tracked Companies</div>
        <div id="company-list" class="card-body">
        {{- range .Companies}}
          <div class="card mb-3"><div class="card-body">
            <h5 class="mb-1"><a href="/?company={{.Key}}">{{.Name}}</a></h5>
            <p class="small text-muted">{{.Summary}}</p>
          </div></div>
        {{- end}}
        </div>
      </div>
    </div>
    <div class="col-9">
      <div id="company-header" class="mb-4">
      {{- with .View.Header}}
        <div class="card"><div class="card-body"><div class="d-flex align-items-center">
          {{if .LogoSrc}}<img src="{{.LogoSrc}}" alt="" style="height: 50px; width: auto">{{end}}
          <div class="ms-3">
            <h2 class="mb-0">{{.Name}}</h2>
            <p class="text-muted">{{.Description}}</p>
          </div>
        </div></div></div>
      {{- end}}
      </div>
      {{- with .View.Tabs}}
      <div class="card">
        <div class="card-header">
          <ul class="nav nav-tabs card-header-tabs" role="tablist">
            <li class="nav-item"><a class="nav-link active" href="#tab-overview">Overview</a></li>
            <li class="nav-item"><a class="nav-link" href="#tab-financial">Financial</a></li>
            <li class="nav-item"><a class="nav-link" href="#tab-market">Market</a></li>
          </ul>
        </div>
        <div id="tab-content" class="card-body">
          <section id="tab-overview">
            <h3>Company Information</h3>
            <p>{{range .Overview}}<strong>{{.Label}}: </strong>{{.Value}}<br>{{end}}</p>
          </section>
          <section id="tab-financial">
            {{if .Financial}}<h5>Stock Information</h5>
            <p>{{range .Financial}}<strong>{{.Label}}: </strong>{{.Value}}<br>{{end}}</p>
            {{else}}<p class="text-muted">No stock information found.</p>{{end}}
          </section>
          <section id="tab-market">
            {{if .Market}}<p>{{range .Market}}<strong>{{.Label}}: </strong>{{.Value}}<br>{{end}}</p>
            {{else}}<p class="text-muted">No listing found.</p>{{end}}
          </section>
        </div>
      </div>
      {{- end}}
    </div>
  </div>
</div>
</body>
</html>
`))

func renderPage(w io.Writer, data pageData) error {
	data.Title = Title
	return pageTmpl.Execute(w, data)
}
