package service

import (
	"bytes"
	"html/template"
	"time"

	"go-booking-api/modules/notification/dto"
)

const timeLayout = "Monday, January 2, 2006 at 15:04 MST"

var funcs = template.FuncMap{
	"when": func(t time.Time) string { return t.UTC().Format(timeLayout) },
}

var guestConfirmationTmpl = template.Must(template.New("guest").Funcs(funcs).Parse(`<h1>Your meeting is confirmed</h1>
<p>Hi{{if .GuestName}} {{.GuestName}}{{end}},</p>
<p>Your meeting <strong>{{.Title}}</strong> with {{.HostName}} is booked.</p>
<p><strong>Start:</strong> {{when .StartTime}}<br>
<strong>End:</strong> {{when .EndTime}}</p>
{{if .Notes}}<p><strong>Your notes:</strong> {{.Notes}}</p>{{end}}
<p>A calendar invitation is attached.</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">{{.AppURL}}</a></p>{{end}}`))

var hostConfirmationTmpl = template.Must(template.New("host").Funcs(funcs).Parse(`<h1>New booking</h1>
<p><strong>{{.GuestEmail}}</strong>{{if .GuestName}} ({{.GuestName}}){{end}} booked <strong>{{.Title}}</strong>.</p>
<p><strong>Start:</strong> {{when .StartTime}}<br>
<strong>End:</strong> {{when .EndTime}}</p>
{{if .Notes}}<p><strong>Notes:</strong> {{.Notes}}</p>{{end}}
{{if .AppURL}}<p><a href="{{.AppURL}}/dashboard">Open dashboard</a></p>{{end}}`))

var guestCancellationTmpl = template.Must(template.New("cancel").Funcs(funcs).Parse(`<h1>Your meeting was cancelled</h1>
<p>{{.HostName}} cancelled <strong>{{.Title}}</strong> scheduled for {{when .StartTime}}.</p>
{{if .AppURL}}<p>You can pick another time at <a href="{{.AppURL}}">{{.AppURL}}</a>.</p>{{end}}`))

type templateData struct {
	*dto.BookingNotification
	AppURL string
}

func render(tmpl *template.Template, n *dto.BookingNotification, appURL string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{BookingNotification: n, AppURL: appURL}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
