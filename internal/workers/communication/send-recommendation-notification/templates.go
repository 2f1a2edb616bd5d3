// internal/workers/communication/send-recommendation-notification/templates.go
package sendrecommendationnotification

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	"text/template"
)

const subjectText = `Your career recommendations are ready`

const bodyText = `Hello {{if .StudentName}}{{.StudentName}}{{else}}there{{end}},

Based on your mean grade of {{.MeanGrade}}, these careers match you best:
{{range $i, $c := .Careers}}
{{inc $i}}. {{$c.Title}} ({{$c.Match}}% match){{end}}
{{if .Strengths}}
Your strongest subject areas: {{join .Strengths}}.{{end}}

Reference: {{.RunID}}
`

const bodyHTML = `<p>Hello {{if .StudentName}}{{.StudentName}}{{else}}there{{end}},</p>
<p>Based on your mean grade of <strong>{{.MeanGrade}}</strong>, these careers match you best:</p>
<ol>{{range .Careers}}<li>{{.Title}} ({{.Match}}% match)</li>{{end}}</ol>
{{if .Strengths}}<p>Your strongest subject areas: {{join .Strengths}}.</p>{{end}}
<p><small>Reference: {{.RunID}}</small></p>`

const smsText = `{{if .StudentName}}{{.StudentName}}, y{{else}}Y{{end}}our top career matches: {{range $i, $c := .Careers}}{{if $i}}, {{end}}{{$c.Title}} {{$c.Match}}%{{end}}. Ref {{.RunID}}`

type messageCareer struct {
	Title string
	Match int
}

type messageData struct {
	RunID       string
	StudentName string
	MeanGrade   string
	Strengths   []string
	Careers     []messageCareer
}

type rendered struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

var funcs = map[string]interface{}{
	"inc": func(i int) int { return i + 1 },
	"join": func(s []string) string { return strings.Join(s, ", ") },
}

var (
	textTmpl = template.Must(template.New("body").Funcs(funcs).Parse(bodyText))
	smsTmpl  = template.Must(template.New("sms").Parse(smsText))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(bodyHTML))
)

func render(data messageData) (*rendered, error) {
	var text, html, sms bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return nil, err
	}
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return nil, err
	}
	if err := smsTmpl.Execute(&sms, data); err != nil {
		return nil, err
	}
	return &rendered{
		Subject: subjectText,
		Text:    text.String(),
		HTML:    html.String(),
		SMS:     sms.String(),
	}, nil
}
