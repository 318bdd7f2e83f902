package mail

import "github.com/xavierca1/ligue-leads/internal/entity"

type leadEmailData struct {
	LeadID    string
	CreatedAt string
	Fields    []leadField
	Name      string
}

type leadField struct {
	Label string
	Value string
}

var fieldLabels = []struct{ key, label string }{
	{"name", "Nome"},
	{"company", "Empresa"},
	{"email", "Email"},
	{"phone", "Telefone"},
	{"brand", "Marca"},
	{"requirement", "Necessidade"},
	{"quantity", "Quantidade"},
	{"city", "Cidade"},
	{"timeline", "Prazo"},
	{"message", "Mensagem"},
	{"formSource", "Formulário"},
	{"path", "Página"},
}

func newLeadEmailData(lead *entity.Lead) leadEmailData {
	data := leadEmailData{
		LeadID:    lead.ID,
		CreatedAt: lead.CreatedAt.Format("02/01/2006 15:04"),
		Name:      lead.Field("name"),
	}
	for _, f := range fieldLabels {
		if v := lead.Field(f.key); v != "" {
			data.Fields = append(data.Fields, leadField{Label: f.label, Value: v})
		}
	}
	if data.Name == "" {
		data.Name = "cliente"
	}
	return data
}
