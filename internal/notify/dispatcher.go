package notify

import (
	"context"
	"html/template"
	"strings"

	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

// mailSender delivers one rendered mail to one address.
type mailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// broadcastTemplate is rendered once per notification, never per
// recipient, so every recipient receives the identical document.
var broadcastTemplate = template.Must(template.New("broadcast").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2 style="color:#1a1a2e">{{.Title}}</h2>
<p style="font-size:15px;line-height:1.6">{{.Message}}</p>
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="max-width:100%;border-radius:6px"/>{{end}}
{{if .MainLink}}<p><a href="{{.MainLink}}" style="display:inline-block;padding:10px 24px;background:#1a73e8;color:#ffffff;text-decoration:none;border-radius:4px">Learn More</a></p>{{end}}
{{if .Links}}<ul style="padding-left:18px">{{range .Links}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>{{end}}
<hr style="border:none;border-top:1px solid #e0e0e0"/>
<p style="color:#888888;font-size:12px">This is an automated mail. Please do not reply.</p>
</div>`))

type broadcastMailData struct {
	Title    string
	Message  string
	ImageURL string
	MainLink string
	Links    []broadcastMailLink
}

type broadcastMailLink struct {
	Label string
	URL   string
}

// Dispatcher renders broadcast mails and hands them to the mail transport.
type Dispatcher struct {
	sender mailSender
}

// NewDispatcher constructs the dispatcher.
func NewDispatcher(sender mailSender) (*Dispatcher, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	return &Dispatcher{sender: sender}, nil
}

// Render produces the single HTML document for a broadcast. The output
// depends only on the notification row.
func (d *Dispatcher) Render(n *models.Notification) string {
	data := broadcastMailData{
		Title:    n.Title,
		Message:  n.Message,
		ImageURL: n.Image.URL,
	}
	if n.MainLink != nil {
		data.MainLink = *n.MainLink
	}
	for _, link := range n.AnchorLinks {
		data.Links = append(data.Links, broadcastMailLink{Label: link.Label, URL: link.URL})
	}

	var buf strings.Builder
	if err := broadcastTemplate.Execute(&buf, data); err != nil {
		// the template is static and the data plain strings, execution
		// cannot fail outside programmer error
		return ""
	}
	return buf.String()
}

// Send delivers one rendered mail to one recipient.
func (d *Dispatcher) Send(ctx context.Context, address, subject, html string) error {
	return d.sender.Send(ctx, address, subject, html)
}
