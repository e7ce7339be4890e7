package mailer

import (
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"
	"time"
)

type Receipt struct {
	CustomerName string
	CourseTitle  string
	Amount       int64 // minor units
	Currency     string
	PurchasedAt  time.Time
	CourseURL    string
}

func (r Receipt) FormattedAmount() string {
	return fmt.Sprintf("%s %d.%02d", strings.ToUpper(r.Currency), r.Amount/100, r.Amount%100)
}

func (r Receipt) FormattedDate() string {
	return r.PurchasedAt.UTC().Format("January 2, 2006")
}

const receiptText = `Hi {{.CustomerName}},

Thanks for your purchase.

Course: {{.CourseTitle}}
Amount: {{.FormattedAmount}}
Date:   {{.FormattedDate}}

Start learning: {{.CourseURL}}
`

const receiptHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <p>Hi {{.CustomerName}},</p>
  <p>Thanks for your purchase.</p>
  <table cellpadding="4">
    <tr><td><strong>Course</strong></td><td>{{.CourseTitle}}</td></tr>
    <tr><td><strong>Amount</strong></td><td>{{.FormattedAmount}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.FormattedDate}}</td></tr>
  </table>
  <p><a href="{{.CourseURL}}">Start learning</a></p>
</body>
</html>
`

var (
	receiptTextTmpl = texttemplate.Must(texttemplate.New("receipt.txt").Parse(receiptText))
	receiptHTMLTmpl = htmltemplate.Must(htmltemplate.New("receipt.html").Parse(receiptHTML))
)

func ReceiptMessage(to mail.Address, r Receipt) (Message, error) {
	if r.CustomerName == "" {
		r.CustomerName = "there"
	}

	var text, html strings.Builder
	if err := receiptTextTmpl.Execute(&text, r); err != nil {
		return Message{}, fmt.Errorf("rendering receipt text: %w", err)
	}
	if err := receiptHTMLTmpl.Execute(&html, r); err != nil {
		return Message{}, fmt.Errorf("rendering receipt html: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Your receipt for " + r.CourseTitle,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
