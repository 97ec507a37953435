package email

// Message - письмо в том виде, в каком его принимает провайдер
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

type OutcomeStatus string

const (
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome - результат одной попытки отправки; ошибка здесь не пробрасывается вызывающему
type Outcome struct {
	Status    OutcomeStatus
	Provider  string
	MessageID string
	Err       error
}

func (o Outcome) Sent() bool {
	return o.Status == OutcomeSent
}
