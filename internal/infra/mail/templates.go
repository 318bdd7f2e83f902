package mail

import (
	"bytes"
	"html/template"
)

const leadNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>Novo pedido de cotação</h3>
  <table>
  {{range .Fields}}<tr><td><strong>{{.Label}}:</strong></td><td>{{.Value}}</td></tr>
  {{end}}</table>
  <p><strong>Recebido em:</strong> {{.CreatedAt}}</p>
  <p><strong>ID:</strong> {{.LeadID}}</p>
</body>
</html>`

const customerConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Olá {{.Name}},</p>
  <p>Recebemos seu pedido de cotação e nossa equipe vai retornar em breve.</p>
  <p><strong>Protocolo: {{.LeadID}}</strong></p>
  <ul>
  {{range .Fields}}<li>{{.Label}}: {{.Value}}</li>
  {{end}}</ul>
  <p>Obrigado.</p>
</body>
</html>`

var (
	leadNotificationTmpl     = template.Must(template.New("lead_notification").Parse(leadNotificationTemplate))
	customerConfirmationTmpl = template.Must(template.New("customer_confirmation").Parse(customerConfirmationTemplate))
)

func render(t *template.Template, data leadEmailData) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
